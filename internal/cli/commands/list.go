package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/recipebook/recipes/internal/recipes"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var opts pageOptions

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List your recipes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPageCommand(cmd, opts, true, nil)
		},
	}
	opts.bind(cmd)

	return cmd
}

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	var opts pageOptions

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Show recipes whose name contains a term (case-insensitive)",
		Long: `Show recipes whose name contains a term, ignoring case.

Without a term every recipe is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var term string
			if len(args) > 0 {
				term = args[0]
			}
			return runPageCommand(cmd, opts, true, searchAction(term))
		},
	}
	opts.bind(cmd)

	return cmd
}

func searchAction(term string) pageAction {
	return func(ctx context.Context, page *recipes.Page) error {
		page.Search(term)
		return nil
	}
}
