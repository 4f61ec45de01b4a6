package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/logmetrics/internal/database"
	"github.com/nao1215/logmetrics/internal/report"
)

// defaultHistoryLimit is the number of reports listed by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated reports",
		Long: `History lists the reports recorded by 'logmetrics generate', newest first.

Each entry shows when the report was generated, how many runs it holds,
and a SHA3-256 fingerprint of its JSON. Identical fingerprints mean the
report did not change between generations.

Examples:
  # List the latest reports
  logmetrics history

  # Print a stored report as JSON
  logmetrics history --show 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("show", "s", 0,
		"Print the stored report with the given ID as JSON")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of reports to list (0 lists all)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dbDir := cfg.DatabaseDir()

	// Listing an empty history must not create the database.
	if _, err := os.Stat(filepath.Join(dbDir, database.FileName)); os.IsNotExist(err) {
		if showID != 0 {
			return fmt.Errorf("report %d not found", showID)
		}
		fmt.Fprintln(out, "No reports found in the history.")
		fmt.Fprintln(out, "\nUse 'logmetrics generate' to create one.")
		return nil
	}

	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if showID != 0 {
		return showReport(ctx, db, showID, out)
	}
	return listReports(ctx, db, limit, out)
}

// showReport prints the stored report with the given ID.
func showReport(ctx context.Context, db *database.HistoryDB, id int64, out io.Writer) error {
	rep, err := db.GetReportByID(ctx, id)
	if err != nil {
		return err
	}
	if rep == nil {
		return fmt.Errorf("report %d not found", id)
	}

	_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).Write(rep)
	return err
}

// listReports prints the metadata of stored reports.
func listReports(ctx context.Context, db *database.HistoryDB, limit int, out io.Writer) error {
	reports, err := db.ListReports(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	if len(reports) == 0 {
		fmt.Fprintln(out, "No reports found in the history.")
		fmt.Fprintln(out, "\nUse 'logmetrics generate' to create one.")
		return nil
	}

	fmt.Fprintf(out, "Report history (%d reports):\n\n", len(reports))
	fmt.Fprintf(out, "  %-6s  %-20s  %-5s  %-12s  %s\n", "ID", "Date", "Runs", "Fingerprint", "Output")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 72))

	for _, meta := range reports {
		fmt.Fprintf(out, "  %-6d  %-20s  %-5d  %-12s  %s\n",
			meta.ID,
			meta.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			meta.TotalRuns,
			shortFingerprint(meta.Fingerprint),
			meta.OutputPath,
		)
	}

	fmt.Fprintln(out, "\nUse 'logmetrics history --show <id>' to print a stored report.")
	return nil
}

// shortFingerprint abbreviates a fingerprint for display.
func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
