package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIURL = "http://localhost:8081"

// Config holds all environment configuration for the CLI
type Config struct {
	// Backend Configuration
	API APIConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig holds backend connection settings used when no recipes.json is present
type APIConfig struct {
	URL         string
	FrontendURL string        // Base URL of the web pages, used to resolve redirect targets
	Timeout     time.Duration // Zero means no timeout
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	apiURL := os.Getenv("RECIPES_API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	var timeout time.Duration
	if raw := os.Getenv("RECIPES_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RECIPES_HTTP_TIMEOUT %q: %w", raw, err)
		}
		timeout = d
	}

	// Logging configuration - the CLI stays quiet unless asked
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		API: APIConfig{
			URL:         apiURL,
			FrontendURL: os.Getenv("RECIPES_FRONTEND_URL"),
			Timeout:     timeout,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
