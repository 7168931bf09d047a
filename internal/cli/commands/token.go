package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recipebook/recipes/internal/cli/session"
)

// NewTokenCmd creates the token command group
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored bearer token",
	}
	cmd.AddCommand(newTokenSetCmd())

	return cmd
}

func newTokenSetCmd() *cobra.Command {
	var serverAlias, token string
	var isAdmin bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the token issued by the login page",
		Long: `Store the bearer token issued by the login page in the OS keychain.

The token is read from --token, then RECIPES_TOKEN, then a hidden prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := resolveBackend(serverAlias)
			if err != nil {
				return err
			}
			return runTokenSet(cmd, b, token, isAdmin)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses the selected server if not specified)")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token (or set RECIPES_TOKEN, will prompt if not provided)")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "Mark the session as an admin session")

	return cmd
}

func runTokenSet(cmd *cobra.Command, b *backend, token string, isAdmin bool) error {
	out := cmd.OutOrStdout()

	if token == "" {
		token = os.Getenv("RECIPES_TOKEN")
	}
	if token == "" {
		var err error
		token, err = readSecret(out, "Token", "use --token flag or RECIPES_TOKEN env var")
		if err != nil {
			return err
		}
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is empty")
	}

	if err := b.Sessions.Save(session.Session{Token: token, IsAdmin: isAdmin}); err != nil {
		return fmt.Errorf("failed to save authentication token: %w", err)
	}

	fmt.Fprintf(out, "✓ Token saved for %s (%s)\n", b.Server.Alias, b.Server.URL)
	return nil
}

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the selected server and session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := resolveBackend(serverAlias)
			if err != nil {
				return err
			}
			return runStatus(cmd, b)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses the selected server if not specified)")

	return cmd
}

func runStatus(cmd *cobra.Command, b *backend) error {
	chrome := newPage(cmd, b, false, nil).Chrome()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Server:    %s (%s)\n", b.Server.Alias, b.Server.URL)
	if chrome.ShowLogout {
		fmt.Fprintln(out, "Session:   logged in")
	} else {
		fmt.Fprintln(out, "Session:   not logged in")
	}
	if chrome.ShowAdminLink {
		fmt.Fprintln(out, "Role:      admin")
	}

	return nil
}
