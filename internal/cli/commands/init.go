package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/recipebook/recipes/internal/cli/config"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var frontendURL string

	cmd := &cobra.Command{
		Use:   "init <api-url>",
		Short: "Add a recipes backend to ./recipes.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args[0], frontendURL)
		},
	}

	cmd.Flags().StringVar(&frontendURL, "frontend-url", "", "Base URL of the web pages, used for redirects")

	return cmd
}

func runInit(cmd *cobra.Command, apiURL, frontendURL string) error {
	out := cmd.OutOrStdout()

	if config.NormalizeURL(apiURL) == "" {
		return fmt.Errorf("api URL is empty")
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Fprintf(out, "Found existing %s\n", config.ConfigFileName)
	} else {
		cfg = &config.Config{
			Servers: []config.Server{},
		}
		isNewConfig = true
	}

	server, added := cfg.AddServer(apiURL, frontendURL)
	if !added {
		fmt.Fprintf(out, "Server %s already exists in %s\n", server.URL, config.ConfigFileName)
		return nil
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Fprintf(out, "✓ Created ./%s with server %s (%s)\n", config.ConfigFileName, server.URL, server.Alias)
	} else {
		fmt.Fprintf(out, "✓ Added server %s (%s) to ./%s\n", server.URL, server.Alias, config.ConfigFileName)
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Log in on the web login page")
	fmt.Fprintln(out, "  2. Run 'recipes token set' with the token it issued")

	return nil
}
