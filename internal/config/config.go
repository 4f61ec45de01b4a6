package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultRunsDir is the directory holding one subdirectory per run.
	DefaultRunsDir = "runs"

	// DefaultOutputFile is where the JSON report is written.
	DefaultOutputFile = "plots/data.json"

	// DefaultLogDir is the log subdirectory inside each run directory.
	DefaultLogDir = "logs"

	// DefaultLogExtension is the extension of recognized log files.
	DefaultLogExtension = ".log"

	// AppName is the application name used for XDG directory paths.
	AppName = "logmetrics"
)

// Config holds all configuration options for logmetrics.
// It is populated from defaults, then the config file, then CLI flags.
type Config struct {
	// RunsDir is the root directory scanned for runs.
	RunsDir string

	// OutputFile is the path of the JSON report.
	OutputFile string

	// LogDir is the name of the log subdirectory inside each run.
	LogDir string

	// LogExtension is the extension of log files, including the dot.
	LogExtension string

	// Verbose enables debug logging and per-run statistics.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .logmetrics is searched for in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveHistory records every generated report in the history database.
	SaveHistory bool

	// MarkdownSummary is an optional path for a Markdown summary written
	// next to the JSON report. Empty disables the summary.
	MarkdownSummary string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		RunsDir:      DefaultRunsDir,
		OutputFile:   DefaultOutputFile,
		LogDir:       DefaultLogDir,
		LogExtension: DefaultLogExtension,
		SaveHistory:  true,
	}
}

// XDGDataDir returns the XDG data directory for logmetrics.
// On Linux: ~/.local/share/logmetrics
// On macOS: ~/Library/Application Support/logmetrics
// On Windows: %LOCALAPPDATA%\logmetrics
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DatabaseDir returns DBDir, or the XDG data directory when it is unset.
func (c *Config) DatabaseDir() string {
	if c.DBDir != "" {
		return c.DBDir
	}
	return XDGDataDir()
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.RunsDir == "" {
		return ErrEmptyRunsDir
	}
	if c.OutputFile == "" {
		return ErrEmptyOutputFile
	}
	if c.LogDir == "" || c.LogDir == "." || c.LogDir == ".." ||
		strings.ContainsAny(c.LogDir, `/\`) {
		return ErrInvalidLogDir
	}
	if len(c.LogExtension) < 2 || !strings.HasPrefix(c.LogExtension, ".") {
		return ErrInvalidLogExtension
	}
	if c.MarkdownSummary != "" &&
		filepath.Clean(c.MarkdownSummary) == filepath.Clean(c.OutputFile) {
		return ErrConflictingOutputs
	}
	return nil
}
