package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/recipebook/recipes/internal/cli/view"
	"github.com/recipebook/recipes/internal/logger"
	"github.com/recipebook/recipes/internal/registration"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var serverAlias string
	var open bool
	var form registration.Form

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user account",
		Long: `Create a user account.

Passwords not given as flags are prompted for without echo when running in a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := resolveBackend(serverAlias)
			if err != nil {
				return err
			}
			return runRegister(cmd, b, open, form)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses the selected server if not specified)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the login page in the browser after registering")
	cmd.Flags().StringVar(&form.Username, "username", "", "Username")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&form.Password, "password", "", "Password (or set RECIPES_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&form.RepeatPassword, "repeat-password", "", "Password again (will prompt if not provided)")

	return cmd
}

func runRegister(cmd *cobra.Command, b *backend, open bool, form registration.Form) error {
	out := cmd.OutOrStdout()

	// A password from the environment is taken as already confirmed
	if form.Password == "" && form.RepeatPassword == "" {
		form.Password = os.Getenv("RECIPES_PASSWORD")
		form.RepeatPassword = form.Password
	}
	// Missing passwords are only prompted for; leaving them empty lets the form
	// validation report it
	var err error
	if form.Password == "" && stdinIsTerminal() {
		if form.Password, err = readSecret(out, "Password", "use --password flag"); err != nil {
			return err
		}
	}
	if form.RepeatPassword == "" && stdinIsTerminal() {
		if form.RepeatPassword, err = readSecret(out, "Repeat password", "use --repeat-password flag"); err != nil {
			return err
		}
	}

	ctrl := registration.NewController(
		b.Client,
		view.NewAlerter(cmd.ErrOrStderr()),
		view.NewNavigator(out, b.Server.FrontendURL, open),
		logger.GetLogger(),
	)

	return ctrl.Register(commandContext(cmd), form)
}
