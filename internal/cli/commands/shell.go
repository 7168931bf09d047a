package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recipebook/recipes/internal/cli/session"
	"github.com/recipebook/recipes/internal/cli/view"
)

const shellHelp = `Commands:
  ls                 reload and show all recipes
  search [term]      filter by name; no term shows everything
  add                add a recipe (asks for name and instructions)
  update             replace the instructions of a recipe
  delete [name]      delete a recipe
  logout             end the session and leave
  help               show this help
  exit               leave without logging out`

// NewShellCmd creates the shell command
func NewShellCmd() *cobra.Command {
	var opts pageOptions
	var token string
	var isAdmin bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Open the recipe page interactively",
		Long: `Open the recipe page interactively.

The recipe list is loaded once and kept for the whole session, so update and delete
find recipes by the names shown. With --token the session lives only as long as the
shell and nothing is written to the keychain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := resolveBackend(opts.serverAlias)
			if err != nil {
				return err
			}
			if token != "" {
				b.Sessions = session.NewMemoryStore(session.Session{Token: token, IsAdmin: isAdmin})
			}

			var in lineReader = newScanReader(cmd.InOrStdin())
			if stdinIsTerminal() {
				in = promptReader{}
			}
			return runShell(cmd, b, opts.open, in)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&token, "token", "", "Use this token for the shell session only")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "Treat the --token session as admin")

	return cmd
}

func runShell(cmd *cobra.Command, b *backend, open bool, in lineReader) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	ctx := commandContext(cmd)

	page := newPage(cmd, b, open, view.NewListRenderer(out, isTerminal(out)))

	report := func(err error) {
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", explain(err))
		}
	}

	// ask reads a form field; io.EOF ends the shell
	ask := func(label string) (string, error) {
		return in.ReadLine(label)
	}

	chrome := page.Chrome()
	fmt.Fprintf(out, "Recipes on %s (%s)", b.Server.Alias, b.Server.URL)
	if chrome.ShowAdminLink {
		fmt.Fprint(out, " [admin]")
	}
	fmt.Fprintln(out)
	if !chrome.ShowLogout {
		fmt.Fprintln(out, "Not logged in. Run 'recipes token set' or start the shell with --token.")
	}

	report(page.Load(ctx))

	for {
		line, err := in.ReadLine("recipes")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		action, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
		rest = strings.TrimSpace(rest)

		switch action {
		case "":
			continue
		case "ls", "list", "reload":
			report(page.Load(ctx))
		case "search":
			page.Search(rest)
		case "add", "update":
			name := rest
			if name == "" {
				if name, err = ask("Name"); err != nil {
					return nil
				}
			}
			instructions, err := ask("Instructions")
			if err != nil {
				return nil
			}
			if action == "add" {
				report(page.Add(ctx, name, instructions))
			} else {
				report(page.Update(ctx, name, instructions))
			}
		case "delete":
			name := rest
			if name == "" {
				if name, err = ask("Name"); err != nil {
					return nil
				}
			}
			report(page.Delete(ctx, name))
		case "logout":
			page.Logout(ctx)
			return nil
		case "help", "?":
			fmt.Fprintln(out, shellHelp)
		case "exit", "quit":
			return nil
		default:
			fmt.Fprintf(errOut, "Unknown command %q. Type 'help' for a list.\n", action)
		}
	}
}
