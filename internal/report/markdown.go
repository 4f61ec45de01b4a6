package report

import (
	"io"
	"slices"

	"github.com/nao1215/logmetrics/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// The output is a GitHub flavored overview of all runs with a mermaid chart,
// meant for pull requests and experiment notes.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Training Runs Report")
	md.PlainText("")

	if len(report.Runs) == 0 {
		md.Note("No valid runs found.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	w.writeOverview(md, report)
	w.writePieChart(md, report)
	w.writeConfig(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeOverview writes one table row per run.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, report *model.Report) {
	md.H2("Overview")
	md.PlainText("")

	rows := make([][]string, len(report.Runs))
	for i := range report.Runs {
		run := &report.Runs[i]
		finalLoss := "-"
		if loss, ok := run.FinalLoss(); ok {
			finalLoss = formatFloat(loss)
		}
		bestPaloma := "-"
		if paloma, ok := run.BestPaloma(); ok {
			bestPaloma = formatFloat(paloma)
		}
		rows[i] = []string{
			"`" + run.RunName + "`",
			run.LogFile,
			formatCount(len(run.TrainingMetrics)),
			formatCount(len(run.EvaluationResults)),
			formatCount(run.LastStep()),
			finalLoss,
			bestPaloma,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Run", "Log File", "Training Metrics", "Evaluation Results", "Last Step", "Final Loss", "Best Paloma"},
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainTextf("**%s** runs, **%s** training metrics, **%s** evaluation results.",
		formatCount(report.Summary.TotalRuns),
		formatCount(report.TotalTrainingMetrics()),
		formatCount(report.TotalEvaluationResults()),
	)
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of training records per run.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Training Metrics per Run"),
		piechart.WithShowData(true),
	)

	for i := range report.Runs {
		run := &report.Runs[i]
		chart.LabelAndIntValue(run.RunName, uint64(len(run.TrainingMetrics)))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeConfig writes the configuration snapshot of every run.
func (w *MarkdownWriter) writeConfig(md *markdown.Markdown, report *model.Report) {
	md.H2("Configuration")
	md.PlainText("")

	for i := range report.Runs {
		run := &report.Runs[i]
		md.H3(run.RunName)
		md.PlainText("")

		if len(run.Config) == 0 {
			md.PlainText("No configuration values found.")
			md.PlainText("")
			continue
		}

		keys := make([]string, 0, len(run.Config))
		for key := range run.Config {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		rows := make([][]string, len(keys))
		for j, key := range keys {
			rows[j] = []string{"`" + key + "`", run.Config[key].String()}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Key", "Value"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by logmetrics*")
}
