package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/logmetrics/internal/aggregate"
	"github.com/nao1215/logmetrics/internal/config"
	"github.com/nao1215/logmetrics/internal/database"
	"github.com/nao1215/logmetrics/internal/model"
	"github.com/nao1215/logmetrics/internal/report"
	"github.com/nao1215/logmetrics/internal/runs"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the metrics report from run logs",
		Long: `Generate scans every run directory under the runs directory, parses
the newest log file in its logs directory, and writes all runs with
training metrics to a JSON report.

Runs without training metrics are skipped. When no run has training
metrics, no report is written.

Examples:
  # Read runs/ and write plots/data.json
  logmetrics generate

  # Use other locations
  logmetrics generate --runs-dir experiments --output out/data.json

  # Also write a Markdown summary
  logmetrics generate --markdown plots/summary.md`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().String("runs-dir", config.DefaultRunsDir,
		"Directory containing one subdirectory per run")
	cmd.Flags().StringP("output", "o", config.DefaultOutputFile,
		"Output file path for the JSON report (creates directories if needed)")
	cmd.Flags().StringP("markdown", "m", "",
		"Also write a Markdown summary to the specified file path")
	cmd.Flags().Bool("no-history", false,
		"Do not record the report in the history database")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildGenerateConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runGenerate(ctx, cfg, cmd.OutOrStdout(), logger)
}

// buildGenerateConfig loads the config file and applies explicitly set flags.
func buildGenerateConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("runs-dir") {
		if cfg.RunsDir, err = flags.GetString("runs-dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.OutputFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("markdown") {
		if cfg.MarkdownSummary, err = flags.GetString("markdown"); err != nil {
			return nil, err
		}
	}
	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveHistory = false
	}

	return cfg, nil
}

// runGenerate builds the report and writes every configured output.
func runGenerate(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	logger.Info("starting generation",
		"runsDir", cfg.RunsDir,
		"output", cfg.OutputFile,
		"logDir", cfg.LogDir,
		"logExtension", cfg.LogExtension,
		"saveHistory", cfg.SaveHistory,
	)

	processor := runs.NewProcessor(
		runs.WithLogDir(cfg.LogDir),
		runs.WithLogExtension(cfg.LogExtension),
		runs.WithLogger(logger),
	)
	aggregator := aggregate.New(
		aggregate.WithProcessor(processor),
		aggregate.WithProgress(out),
		aggregate.WithLogger(logger),
	)

	rep, err := aggregator.Generate(ctx, cfg.RunsDir, cfg.OutputFile)
	if err != nil {
		return err
	}
	if rep == nil {
		return nil
	}

	tally := report.NewSimpleWriter(out,
		report.WithDestination(cfg.OutputFile),
		report.WithVerbose(cfg.Verbose),
	)
	if _, err := tally.Write(rep); err != nil {
		return err
	}

	if cfg.MarkdownSummary != "" {
		if _, err := report.WriteFile(cfg.MarkdownSummary, rep, report.MarkdownFile); err != nil {
			return fmt.Errorf("failed to write markdown summary: %w", err)
		}
		fmt.Fprintf(out, "✓ Markdown summary: %s\n", cfg.MarkdownSummary)
	}

	if cfg.SaveHistory {
		if err := saveHistory(ctx, cfg, rep, logger); err != nil {
			logger.Error("failed to save report history", "error", err)
		}
	}

	return nil
}

// saveHistory records rep in the history database.
func saveHistory(ctx context.Context, cfg *config.Config, rep *model.Report, logger *slog.Logger) error {
	db, err := database.Open(cfg.DatabaseDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveReport(ctx, cfg.RunsDir, cfg.OutputFile, rep)
	if err != nil {
		return err
	}

	logger.Info("report saved to history", "id", id, "db", db.Path())
	return nil
}
