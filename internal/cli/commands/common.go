package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/recipebook/recipes/internal/cli/client"
	"github.com/recipebook/recipes/internal/cli/config"
	"github.com/recipebook/recipes/internal/cli/serverselect"
	"github.com/recipebook/recipes/internal/cli/session"
	"github.com/recipebook/recipes/internal/cli/view"
	envconfig "github.com/recipebook/recipes/internal/config"
	"github.com/recipebook/recipes/internal/logger"
	"github.com/recipebook/recipes/internal/models"
	"github.com/recipebook/recipes/internal/recipes"
)

// backend is the resolved server and everything needed to talk to it
type backend struct {
	Server   config.Server
	Client   *client.Client
	Sessions session.Store
}

// resolveBackend picks the server for this invocation. Without a recipes.json the
// environment decides (RECIPES_API_URL, default http://localhost:8081).
func resolveBackend(serverAlias string) (*backend, error) {
	env, err := envconfig.Load()
	if err != nil {
		return nil, err
	}

	var server config.Server

	cfg, err := config.LoadFromCurrentDir()
	switch {
	case errors.Is(err, os.ErrNotExist):
		if serverAlias != "" {
			return nil, fmt.Errorf("server '%s' requested but no %s found\nRun 'recipes init <api-url>' to create one", serverAlias, config.ConfigFileName)
		}
		server = config.Server{URL: config.NormalizeURL(env.API.URL), Alias: "default"}
	case err != nil:
		return nil, fmt.Errorf("failed to load config: %w", err)
	default:
		resolved, err := serverselect.ResolveServer(cfg, serverAlias, nil)
		if err != nil {
			return nil, err
		}
		server = *resolved
	}

	if server.URL == "" {
		return nil, fmt.Errorf("server URL is empty. Please edit %s and add a valid URL", config.ConfigFileName)
	}
	if server.FrontendURL == "" {
		server.FrontendURL = env.API.FrontendURL
	}

	return &backend{
		Server:   server,
		Client:   client.New(server.URL, env.API.Timeout),
		Sessions: session.NewKeyringStore(server.URL),
	}, nil
}

// pageOptions are the flags shared by every recipe page command
type pageOptions struct {
	serverAlias string
	open        bool
}

func (o *pageOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.serverAlias, "server", "", "Server alias (uses the selected server if not specified)")
	cmd.Flags().BoolVar(&o.open, "open", false, "Open redirect targets in the browser")
}

// newPage builds a recipe page controller rendering into r
func newPage(cmd *cobra.Command, b *backend, open bool, r recipes.Renderer) *recipes.Page {
	out := cmd.OutOrStdout()
	return recipes.NewPage(
		b.Client,
		b.Sessions,
		r,
		view.NewNavigator(out, b.Server.FrontendURL, open),
		logger.GetLogger(),
	)
}

// lastRender keeps only the most recent listing so a command prints one list even
// when the page renders several times (load, then reload after a change)
type lastRender struct {
	target  recipes.Renderer
	list    []models.Recipe
	pending bool
}

func (l *lastRender) Render(list []models.Recipe) {
	l.list = list
	l.pending = true
}

// flush prints the pending listing, if any
func (l *lastRender) flush() {
	if l.pending {
		l.target.Render(l.list)
		l.pending = false
	}
}

// requireFields fails with recipes.ErrMissingFields when any value is blank, before the
// page is loaded
func requireFields(values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return recipes.ErrMissingFields
		}
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// explain adds a hint to errors a user can act on
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, recipes.ErrNotAuthenticated):
		return fmt.Errorf("%w. Please run 'recipes token set' first", err)
	default:
		return err
	}
}
