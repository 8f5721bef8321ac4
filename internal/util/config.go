package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	ConfigEnv         = "ROSKY_CONFIG"
	DefaultConfigFile = "rosky.toml"
	DefaultHistory    = ".rosky_history"
)

// Colour modes for diagnostics.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	LogLevel          string `toml:"log_level"`
	LogFile           string `toml:"log_file"`
	Color             string `toml:"color"`
	MaxRecursionDepth int    `toml:"max_recursion_depth"`
	HistoryFile       string `toml:"history_file"`
}

// LoadConfiguration reads the TOML file at path. An empty path falls back to
// $ROSKY_CONFIG and then ./rosky.toml; a missing default file is not an
// error, a missing explicit one is.
func LoadConfiguration(path string) (Configuration, error) {
	var cfg Configuration

	explicit := path != ""
	if !explicit {
		path = os.Getenv(ConfigEnv)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultConfigFile
	}
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			cfg.applyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Configuration) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "none"
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.MaxRecursionDepth <= 0 {
		c.MaxRecursionDepth = 999
	}
	if c.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.HistoryFile = filepath.Join(home, DefaultHistory)
		} else {
			c.HistoryFile = DefaultHistory
		}
	}
	c.HistoryFile = os.ExpandEnv(c.HistoryFile)
	c.LogFile = os.ExpandEnv(c.LogFile)
}
