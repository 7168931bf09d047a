package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/recipebook/recipes/internal/cli/view"
	"github.com/recipebook/recipes/internal/recipes"
)

// pageAction is one user action against a loaded page
type pageAction func(ctx context.Context, page *recipes.Page) error

// runPageCommand resolves the backend and runs action on a fresh page
func runPageCommand(cmd *cobra.Command, opts pageOptions, preload bool, action pageAction) error {
	b, err := resolveBackend(opts.serverAlias)
	if err != nil {
		return err
	}
	return runOnPage(cmd, b, opts.open, preload, action)
}

// runOnPage opens the page (loading the collection when preload is set, as the web
// page does on open), runs action and prints the final listing once
func runOnPage(cmd *cobra.Command, b *backend, open, preload bool, action pageAction) error {
	out := cmd.OutOrStdout()
	render := &lastRender{target: view.NewListRenderer(out, isTerminal(out))}
	page := newPage(cmd, b, open, render)
	ctx := commandContext(cmd)

	if preload {
		if err := page.Load(ctx); err != nil {
			return explain(err)
		}
	}

	var err error
	if action != nil {
		err = action(ctx, page)
	}
	render.flush()

	return explain(err)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
