// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - JSONWriter: the data.json artifact consumed by the dashboard
//   - MarkdownWriter: a human-readable summary of all runs
//   - SimpleWriter: the plain text tally printed after generation
//
// Report data structures live in the model package; this package only
// renders them. Writers implement the Writer interface, and WriteFile puts any
// writer's output on disk atomically.
package report
