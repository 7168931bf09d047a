package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const ConfigFileName = "recipes.json"

// Server represents a recipes backend
type Server struct {
	URL         string `json:"url"`
	Alias       string `json:"alias"`
	FrontendURL string `json:"frontend_url,omitempty"` // Where the web pages are served, for redirects
}

// Config represents the CLI configuration file
type Config struct {
	Servers []Server `json:"servers"`
}

// FindConfigFile searches for recipes.json in current directory and parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find recipes.json or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found in %s or any parent directory: %w", ConfigFileName, currentDir, os.ErrNotExist)
}

// Load reads the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from current directory or parent directories
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// AddServer appends a backend unless one with the same URL exists. It reports whether
// the config changed.
func (c *Config) AddServer(rawURL, frontendURL string) (*Server, bool) {
	rawURL = NormalizeURL(rawURL)
	for i := range c.Servers {
		if c.Servers[i].URL == rawURL {
			return &c.Servers[i], false
		}
	}

	alias := "local"
	if len(c.Servers) > 0 {
		alias = fmt.Sprintf("server-%d", len(c.Servers)+1)
	}

	c.Servers = append(c.Servers, Server{URL: rawURL, Alias: alias, FrontendURL: frontendURL})
	return &c.Servers[len(c.Servers)-1], true
}

// GetServerByAlias returns a server by its alias
func (c *Config) GetServerByAlias(alias string) (*Server, error) {
	for i := range c.Servers {
		if c.Servers[i].Alias == alias {
			return &c.Servers[i], nil
		}
	}
	return nil, fmt.Errorf("server with alias '%s' not found", alias)
}

// GetServerByURL returns a server by its URL
func (c *Config) GetServerByURL(rawURL string) (*Server, error) {
	rawURL = NormalizeURL(rawURL)
	for i := range c.Servers {
		if c.Servers[i].URL == rawURL {
			return &c.Servers[i], nil
		}
	}
	return nil, fmt.Errorf("server with URL '%s' not found", rawURL)
}

// GetDefaultServer returns the first server in the list
func (c *Config) GetDefaultServer() (*Server, error) {
	if len(c.Servers) == 0 {
		return nil, fmt.Errorf("no servers configured in %s", ConfigFileName)
	}
	return &c.Servers[0], nil
}

// NormalizeURL adds a scheme when missing and drops trailing slashes
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	return strings.TrimRight(rawURL, "/")
}
