package runs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/logmetrics/internal/model"
	"github.com/nao1215/logmetrics/internal/parser"
)

// Default layout of a run directory.
const (
	// DefaultLogDir is the subdirectory of a run that holds its log files.
	DefaultLogDir = "logs"

	// DefaultLogExtension is the extension of log files.
	DefaultLogExtension = ".log"
)

// Processor extracts a RunRecord from a run directory.
type Processor struct {
	// logDir is the name of the log subdirectory inside a run directory.
	logDir string

	// extension is the file extension of log files, including the dot.
	extension string

	// logger is used for diagnostic logging.
	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogDir sets the name of the log subdirectory. Empty values are ignored.
func WithLogDir(name string) Option {
	return func(p *Processor) {
		if name != "" {
			p.logDir = name
		}
	}
}

// WithLogExtension sets the log file extension. Empty values are ignored.
func WithLogExtension(ext string) Option {
	return func(p *Processor) {
		if ext != "" {
			p.extension = ext
		}
	}
}

// WithLogger sets a custom logger for the processor.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor creates a Processor with the given options.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		logDir:    DefaultLogDir,
		extension: DefaultLogExtension,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Process builds the RunRecord for runDir.
// It returns (nil, nil) when the run has no usable data.
func (p *Processor) Process(ctx context.Context, runDir string) (*model.RunRecord, error) {
	runName := filepath.Base(runDir)
	logDir := filepath.Join(runDir, p.logDir)

	files, err := p.listLogFiles(logDir)
	if err != nil {
		return nil, err
	}
	latest, ok := SelectLatest(files)
	if !ok {
		p.logger.Debug("no log files", "run", runName, "dir", logDir)
		return nil, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	logPath := filepath.Join(logDir, latest.Name)
	text, err := readText(logPath)
	if err != nil {
		return nil, err
	}

	training := parser.ParseTrainingMetrics(text)
	if len(training) == 0 {
		p.logger.Debug("no training metrics in log", "run", runName, "file", latest.Name)
		return nil, nil
	}

	record := &model.RunRecord{
		RunName:           runName,
		LogFile:           latest.Name,
		TrainingMetrics:   training,
		EvaluationResults: parser.ParseEvaluationResults(text),
		Config:            parser.ExtractConfig(text),
	}

	p.logger.Debug("run processed",
		"run", runName,
		"file", latest.Name,
		"training_metrics", len(record.TrainingMetrics),
		"evaluation_results", len(record.EvaluationResults),
		"config_keys", len(record.Config),
	)

	return record, nil
}

// listLogFiles returns the regular files in logDir that carry the log extension.
// A missing or non-directory logDir yields no files.
func (p *Processor) listLogFiles(logDir string) ([]LogFile, error) {
	info, err := os.Stat(logDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat log directory %s: %w", logDir, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read log directory %s: %w", logDir, err)
	}

	var files []LogFile
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), p.extension) {
			continue
		}
		// Stat follows symlinks so a linked log file counts as a regular file.
		fi, err := os.Stat(filepath.Join(logDir, entry.Name()))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// dangling symlink
				continue
			}
			return nil, fmt.Errorf("failed to stat log file %s: %w", entry.Name(), err)
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, LogFile{Name: entry.Name(), ModTime: fi.ModTime()})
	}
	return files, nil
}

// readText reads the whole file at path as UTF-8 text.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the runs directory listing
	if err != nil {
		return "", fmt.Errorf("failed to read log file %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, path)
	}
	return string(data), nil
}
