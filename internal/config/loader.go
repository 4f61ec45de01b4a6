package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".logmetrics"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .logmetrics configuration file.
// Unset fields leave the corresponding Config value untouched.
type File struct {
	// RunsDir overrides the runs directory.
	RunsDir string `yaml:"runs_dir,omitempty"`

	// Output overrides the JSON report path.
	Output string `yaml:"output,omitempty"`

	// LogDir overrides the log subdirectory name.
	LogDir string `yaml:"log_dir,omitempty"`

	// LogExtension overrides the log file extension.
	LogExtension string `yaml:"log_extension,omitempty"`

	// History enables or disables the report history database.
	History *bool `yaml:"history,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"db_dir,omitempty"`

	// MarkdownSummary sets a path for the Markdown summary.
	MarkdownSummary string `yaml:"markdown_summary,omitempty"`
}

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cf, nil
}

// Apply copies the values set in the file into cfg.
func (cf *File) Apply(cfg *Config) {
	if cf.RunsDir != "" {
		cfg.RunsDir = cf.RunsDir
	}
	if cf.Output != "" {
		cfg.OutputFile = cf.Output
	}
	if cf.LogDir != "" {
		cfg.LogDir = cf.LogDir
	}
	if cf.LogExtension != "" {
		cfg.LogExtension = cf.LogExtension
	}
	if cf.History != nil {
		cfg.SaveHistory = *cf.History
	}
	if cf.DBDir != "" {
		cfg.DBDir = cf.DBDir
	}
	if cf.MarkdownSummary != "" {
		cfg.MarkdownSummary = cf.MarkdownSummary
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .logmetrics in the current directory
// 3. Look for .logmetrics in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
