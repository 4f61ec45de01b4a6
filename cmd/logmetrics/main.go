// Package main provides the entry point for the logmetrics CLI.
//
// logmetrics scans a directory of training runs, extracts training metrics,
// evaluation results, and configuration values from the newest log file of
// each run, and writes them as a single JSON report for plotting.
//
// Usage:
//
//	logmetrics generate
//	logmetrics generate --runs-dir runs --output plots/data.json
//
// See --help for all available options.
package main

// main is the entry point for logmetrics.
func main() {
	Execute()
}
