package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/recipebook/recipes/internal/recipes"
)

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	var opts pageOptions
	var name, instructions string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPageCommand(cmd, opts, false, func(ctx context.Context, page *recipes.Page) error {
				return page.Add(ctx, name, instructions)
			})
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Recipe name")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Recipe instructions")

	return cmd
}

// NewUpdateCmd creates the update command
func NewUpdateCmd() *cobra.Command {
	var opts pageOptions
	var name, instructions string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace the instructions of a recipe",
		Long: `Replace the instructions of the recipe with the given name.

The name must match exactly; recipes cannot be renamed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFields(name, instructions); err != nil {
				return err
			}
			return runPageCommand(cmd, opts, true, func(ctx context.Context, page *recipes.Page) error {
				return page.Update(ctx, name, instructions)
			})
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Name of the recipe to update")
	cmd.Flags().StringVar(&instructions, "instructions", "", "New instructions")

	return cmd
}
