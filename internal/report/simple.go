package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/logmetrics/internal/model"
)

// SimpleWriter outputs the plain text tally shown after a report is generated.
//
//	✓ Generated plots/data.json with 2 runs
//	✓ Total training metrics: 1,250
//	✓ Total evaluation results: 25
type SimpleWriter struct {
	baseWriter

	// destination is the path the report was written to, if any.
	destination string

	// verbose adds one line per run.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithDestination names the file the report was written to.
func WithDestination(path string) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.destination = path
	}
}

// WithVerbose enables one line of statistics per run.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the tally for report.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	runs := fmt.Sprintf("%s runs", formatCount(report.Summary.TotalRuns))
	if report.Summary.TotalRuns == 1 {
		runs = "1 run"
	}

	if w.destination != "" {
		fmt.Fprintf(&sb, "\n✓ Generated %s with %s\n", w.destination, runs)
	} else {
		fmt.Fprintf(&sb, "\n✓ Report contains %s\n", runs)
	}
	fmt.Fprintf(&sb, "✓ Total training metrics: %s\n", formatCount(report.TotalTrainingMetrics()))
	fmt.Fprintf(&sb, "✓ Total evaluation results: %s\n", formatCount(report.TotalEvaluationResults()))

	if w.verbose {
		for i := range report.Runs {
			w.writeRun(&sb, &report.Runs[i])
		}
	}

	return io.WriteString(w.output, sb.String())
}

// writeRun writes the statistics line of a single run.
func (w *SimpleWriter) writeRun(sb *strings.Builder, run *model.RunRecord) {
	fmt.Fprintf(sb, "  %s (%s): %s training, %s evaluation, last step %s",
		run.RunName,
		run.LogFile,
		formatCount(len(run.TrainingMetrics)),
		formatCount(len(run.EvaluationResults)),
		formatCount(run.LastStep()),
	)
	if loss, ok := run.FinalLoss(); ok {
		fmt.Fprintf(sb, ", final loss %s", formatFloat(loss))
	}
	sb.WriteString("\n")
}
