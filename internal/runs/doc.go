// Package runs turns a single run directory into a model.RunRecord.
//
// A run directory is expected to look like:
//
//	<run>/
//	  logs/
//	    train.log
//	    train-resumed.log
//
// Only the most recently modified log file is parsed. A run without a log
// directory, without log files, or whose newest log has no training blocks
// has no usable data; Processor.Process reports that as a nil record and a
// nil error. Read failures are returned as errors.
package runs
