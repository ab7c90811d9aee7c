package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// toolConfig is the optional flptool configuration, read from
// <user config dir>/flptool/config.toml.
type toolConfig struct {
	// Strict makes re-saving fail on empty model collections instead
	// of warning.
	Strict bool `toml:"strict"`

	// SamplesDir is searched for samples whose stored path does not
	// resolve when bundling.
	SamplesDir string `toml:"samples_dir"`
}

func loadConfig() (toolConfig, error) {
	var cfg toolConfig
	dir, err := os.UserConfigDir()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(filepath.Join(dir, "flptool", "config.toml"))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
