package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default RunsDir is runs", func(t *testing.T) {
		t.Parallel()
		if cfg.RunsDir != "runs" {
			t.Errorf("expected RunsDir to be 'runs', got '%s'", cfg.RunsDir)
		}
	})

	t.Run("default OutputFile is plots/data.json", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputFile != "plots/data.json" {
			t.Errorf("expected OutputFile to be 'plots/data.json', got '%s'", cfg.OutputFile)
		}
	})

	t.Run("default log layout is logs/*.log", func(t *testing.T) {
		t.Parallel()
		if cfg.LogDir != "logs" || cfg.LogExtension != ".log" {
			t.Errorf("expected logs/*.log, got %s/*%s", cfg.LogDir, cfg.LogExtension)
		}
	})

	t.Run("history is enabled by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveHistory {
			t.Error("expected SaveHistory to be true")
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with one invalid field per case.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "empty runs dir", modify: func(c *Config) { c.RunsDir = "" }, wantErr: ErrEmptyRunsDir},
		{name: "empty output", modify: func(c *Config) { c.OutputFile = "" }, wantErr: ErrEmptyOutputFile},
		{name: "empty log dir", modify: func(c *Config) { c.LogDir = "" }, wantErr: ErrInvalidLogDir},
		{name: "nested log dir", modify: func(c *Config) { c.LogDir = "out/logs" }, wantErr: ErrInvalidLogDir},
		{name: "parent log dir", modify: func(c *Config) { c.LogDir = ".." }, wantErr: ErrInvalidLogDir},
		{name: "extension without dot", modify: func(c *Config) { c.LogExtension = "log" }, wantErr: ErrInvalidLogExtension},
		{name: "bare dot extension", modify: func(c *Config) { c.LogExtension = "." }, wantErr: ErrInvalidLogExtension},
		{
			name: "markdown summary same as report",
			modify: func(c *Config) {
				c.OutputFile = "plots/data.json"
				c.MarkdownSummary = "plots/./data.json"
			},
			wantErr: ErrConflictingOutputs,
		},
		{name: "custom layout is valid", modify: func(c *Config) { c.LogDir = "output"; c.LogExtension = ".txt" }},
		{name: "markdown summary is valid", modify: func(c *Config) { c.MarkdownSummary = "plots/summary.md" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), ".logmetrics"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads and applies valid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".logmetrics")
		content := `runs_dir: experiments
output: out/report.json
log_dir: output
log_extension: .txt
history: false
db_dir: /tmp/logmetrics-db
markdown_summary: out/summary.md
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		file, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		file.Apply(cfg)

		if cfg.RunsDir != "experiments" {
			t.Errorf("expected RunsDir experiments, got %q", cfg.RunsDir)
		}
		if cfg.OutputFile != "out/report.json" {
			t.Errorf("expected OutputFile out/report.json, got %q", cfg.OutputFile)
		}
		if cfg.LogDir != "output" || cfg.LogExtension != ".txt" {
			t.Errorf("unexpected log layout %s/*%s", cfg.LogDir, cfg.LogExtension)
		}
		if cfg.SaveHistory {
			t.Error("expected SaveHistory false")
		}
		if cfg.DatabaseDir() != "/tmp/logmetrics-db" {
			t.Errorf("unexpected DatabaseDir %q", cfg.DatabaseDir())
		}
		if cfg.MarkdownSummary != "out/summary.md" {
			t.Errorf("unexpected MarkdownSummary %q", cfg.MarkdownSummary)
		}
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".logmetrics")
		if err := os.WriteFile(configPath, []byte("# nothing here\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		file, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		file.Apply(cfg)
		if *cfg != *NewConfig() {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".logmetrics")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfigFile(configPath)
		if err == nil {
			t.Fatal("expected error for invalid YAML")
		}
		if !strings.Contains(err.Error(), configPath) {
			t.Errorf("expected path in error, got %v", err)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("runs_dir: runs\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDataDir tests the XDG data directory.
func TestXDGDataDir(t *testing.T) {
	t.Parallel()

	dir := XDGDataDir()
	if dir == "" {
		t.Fatal("expected non-empty XDG data dir")
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("expected dir to end with %s, got %s", AppName, dir)
	}
	if NewConfig().DatabaseDir() != dir {
		t.Error("expected DatabaseDir to default to the XDG data dir")
	}
}
