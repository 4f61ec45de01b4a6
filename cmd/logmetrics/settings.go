package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/logmetrics/internal/config"
)

// loadConfig builds a Config from defaults and the configuration file.
// If the user explicitly specified a config file path, a missing file is an
// error. Otherwise a missing file silently leaves the defaults in place.
// Command specific flags are applied by the caller.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.ConfigFilePath = getConfigFlag(cmd)

	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}
