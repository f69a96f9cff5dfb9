// Package config handles loading the yata config.toml file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/yata-app/yata/internal/paths"
)

// Backend names accepted in the config file.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config represents the config.toml configuration file.
type Config struct {
	// DataDir is where the durable medium keeps its files.
	DataDir string `toml:"data-dir"`

	// Backend selects the durable medium: "file" or "sqlite".
	Backend string `toml:"backend"`

	// DebounceMS is the persistence debounce window in milliseconds.
	// Zero means the built-in default.
	DebounceMS int `toml:"debounce-ms"`
}

// DebounceWindow returns the configured debounce window as a duration.
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Load reads the config file at path, applying defaults for anything not
// set. A missing file yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if cfg.Backend != BackendFile && cfg.Backend != BackendSQLite {
		return nil, fmt.Errorf("config file %s: unknown backend %q", path, cfg.Backend)
	}
	if cfg.DataDir == "" {
		dataDir, err := paths.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{Backend: BackendFile}
}
