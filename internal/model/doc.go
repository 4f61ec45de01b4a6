// Package model defines the data structures shared by the extraction,
// aggregation and report packages.
//
// This package contains the following main types:
//   - TrainingMetric: one training-metrics block extracted from a log
//   - EvaluationResult: one evaluation block extracted from a log
//   - ConfigMap: the hyperparameter snapshot of a run
//   - RunRecord: everything extracted for a single run directory
//   - Report: the aggregate over all runs, serialized as data.json
//
// The JSON field names of these types are read by the dashboard that renders
// the report, so they must not change.
package model
