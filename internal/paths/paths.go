package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataDir returns the default yata data directory.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "yata"), nil
}

// DefaultConfigPath returns the default yata config file path. The
// YATA_CONFIG environment variable overrides it.
func DefaultConfigPath() (string, error) {
	if override := os.Getenv("YATA_CONFIG"); override != "" {
		return override, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".config", "yata", "config.toml"), nil
}
