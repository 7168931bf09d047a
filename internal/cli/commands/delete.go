package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/recipebook/recipes/internal/recipes"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	var opts pageOptions

	cmd := &cobra.Command{
		Use:   "delete <recipe-name>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := requireFields(name); err != nil {
				return err
			}
			return runPageCommand(cmd, opts, true, func(ctx context.Context, page *recipes.Page) error {
				return page.Delete(ctx, name)
			})
		},
	}
	opts.bind(cmd)

	return cmd
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var opts pageOptions

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPageCommand(cmd, opts, false, func(ctx context.Context, page *recipes.Page) error {
				page.Logout(ctx)
				return nil
			})
		},
	}
	opts.bind(cmd)

	return cmd
}
