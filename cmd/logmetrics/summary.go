package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/logmetrics/internal/report"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [data.json]",
		Short: "Render a generated report as Markdown",
		Long: `Summary reads a report written by 'logmetrics generate' and renders it
as GitHub Flavored Markdown with an overview table, a chart of training
metrics per run, and the configuration of each run.

Without an argument, the configured output path is read.

Examples:
  # Print a summary of plots/data.json
  logmetrics summary

  # Write the summary of another report to a file
  logmetrics summary out/data.json -o out/summary.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSummaryCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Write the summary to the specified file path instead of stdout")

	return cmd
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	input := cfg.OutputFile
	if len(args) > 0 {
		input = args[0]
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	rep, err := report.ReadJSONFile(input)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err := report.NewMarkdownWriter(cmd.OutOrStdout()).Write(rep)
		return err
	}

	if _, err := report.WriteFile(outputPath, rep, report.MarkdownFile); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created summary: %s\n", outputPath)
	return nil
}
