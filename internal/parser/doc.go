// Package parser extracts metrics from the raw text of training log files.
//
// Three independent scans run over the full text of a log:
//   - ParseTrainingMetrics finds four-line "Training Metrics" blocks
//   - ParseEvaluationResults finds two-line "Evaluation Results" blocks
//   - ExtractConfig finds the first "key: value" line for each known hyperparameter
//
// Every scan is a single regular expression pass over the whole text rather
// than a line-by-line state machine: blocks are self-contained, may repeat and
// may appear in any order. Matches whose numbers do not parse are dropped
// silently; a text without any match yields an empty result, never an error.
package parser
