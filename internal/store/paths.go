// Package store persists the dashboard's local state: the resource cache,
// the daily call quota, user settings, and the API token. Everything lives as
// JSON (plus a bare token file) in a single config directory.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	cacheFileName    = "cache.json"
	quotaFileName    = "quota.json"
	settingsFileName = "settings.json"
	tokenFileName    = "token"
)

// Dir resolves the config directory, creating it if needed. The
// TOGGLDASH_CONFIG_DIR environment variable overrides the default
// ~/.toggldash.
func Dir() (string, error) {
	dir := os.Getenv("TOGGLDASH_CONFIG_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		dir = filepath.Join(home, ".toggldash")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return dir, nil
}

func writeJSONFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
