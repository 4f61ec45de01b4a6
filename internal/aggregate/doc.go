// Package aggregate collects the run records of every run directory under a
// root directory into a single model.Report and writes it to disk.
//
// Runs are processed one at a time in directory listing order, and their
// records keep that order in the report. Progress messages for each run are
// written to a configurable io.Writer so the CLI can show them on stdout.
package aggregate
