// Package userconfig stores per-user CLI preferences, currently which recipes backend
// commands talk to when --server is not given.
package userconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/recipebook/recipes/internal/cli/config"
)

const (
	appDirName = "recipes"
	fileName   = "config.json"
)

// UserConfig is the content of $XDG_CONFIG_HOME/recipes/config.json
type UserConfig struct {
	// SelectedServerURL is the normalized API URL of a server in recipes.json
	SelectedServerURL string `json:"selected_server_url,omitempty"`
}

// GetConfigPath returns where the user config lives. XDG_CONFIG_HOME wins over
// ~/.config.
func GetConfigPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory for user config: %w", err)
		}
		base = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(base, appDirName, fileName), nil
}

// Load reads the user config. A missing file is an empty config.
func Load() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid user config %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes cfg, creating the recipes config directory if needed
func Save(cfg *UserConfig) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// SetSelectedServer remembers apiURL as the default backend
func SetSelectedServer(apiURL string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	cfg.SelectedServerURL = config.NormalizeURL(apiURL)
	return Save(cfg)
}

// ClearSelectedServer forgets the default backend, e.g. after it was removed from
// recipes.json
func ClearSelectedServer() error {
	return SetSelectedServer("")
}

// GetSelectedServer returns the selected API URL, or "" when none is selected
func GetSelectedServer() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	return cfg.SelectedServerURL, nil
}
