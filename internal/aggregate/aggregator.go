package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/logmetrics/internal/model"
	"github.com/nao1215/logmetrics/internal/report"
	"github.com/nao1215/logmetrics/internal/runs"
)

// RunProcessor builds the record of a single run directory.
// It returns a nil record when the run has no usable data.
type RunProcessor interface {
	Process(ctx context.Context, runDir string) (*model.RunRecord, error)
}

// Aggregator walks a runs directory and builds the report.
type Aggregator struct {
	// processor extracts the record of each run directory.
	processor RunProcessor

	// progress receives the per-run console messages.
	progress io.Writer

	// logger is used for diagnostic logging.
	logger *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithProcessor sets the run processor. The default is runs.NewProcessor().
func WithProcessor(p RunProcessor) Option {
	return func(a *Aggregator) {
		a.processor = p
	}
}

// WithProgress sets the destination of progress messages.
// By default progress messages are discarded.
func WithProgress(w io.Writer) Option {
	return func(a *Aggregator) {
		a.progress = w
	}
}

// WithLogger sets a custom logger for the aggregator.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// New creates an Aggregator with the given options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.processor == nil {
		a.processor = runs.NewProcessor(runs.WithLogger(a.logger))
	}
	if a.progress == nil {
		a.progress = io.Discard
	}

	return a
}

// Collect builds the report for every run directory directly under runsDir.
// It returns a nil report and a nil error when runsDir does not exist or
// no run has usable data. Read errors of any run abort the collection.
func (a *Aggregator) Collect(ctx context.Context, runsDir string) (*model.Report, error) {
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.printf("Runs directory %s not found!\n", runsDir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var records []model.RunRecord
	for _, entry := range entries {
		runDir := filepath.Join(runsDir, entry.Name())
		if !isDir(runDir, entry) {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		a.printf("Processing run: %s\n", entry.Name())

		record, err := a.processor.Process(ctx, runDir)
		if err != nil {
			a.logger.Error("failed to process run", "run", entry.Name(), "error", err)
			return nil, fmt.Errorf("failed to process run %s: %w", entry.Name(), err)
		}
		if record == nil {
			a.printf("  ✗ No valid data found\n")
			continue
		}

		a.printf("  ✓ Found %d training metrics\n", len(record.TrainingMetrics))
		a.printf("  ✓ Found %d evaluation results\n", len(record.EvaluationResults))
		records = append(records, *record)
	}

	if len(records) == 0 {
		a.printf("No valid runs found!\n")
		return nil, nil
	}

	return model.NewReport(records), nil
}

// Generate collects the report for runsDir and writes it as JSON to outputFile.
// When no valid run is found, nothing is written and the returned report is nil.
func (a *Aggregator) Generate(ctx context.Context, runsDir, outputFile string) (*model.Report, error) {
	rep, err := a.Collect(ctx, runsDir)
	if err != nil || rep == nil {
		return nil, err
	}

	n, err := report.WriteFile(outputFile, rep, report.JSONFile)
	if err != nil {
		return nil, err
	}

	a.logger.Info("report written",
		"path", outputFile,
		"bytes", n,
		"runs", rep.Summary.TotalRuns,
	)
	return rep, nil
}

// printf writes a progress message.
func (a *Aggregator) printf(format string, args ...any) {
	fmt.Fprintf(a.progress, format, args...)
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
