// Package view has the terminal versions of the page elements: the recipe list, alerts
// and navigation.
package view

import (
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/recipebook/recipes/internal/models"
)

// ListRenderer prints recipes one per line, name in bold
type ListRenderer struct {
	out  io.Writer
	bold func(interface{}) string
}

// NewListRenderer returns a renderer writing to out. Styling is skipped when color is
// false, e.g. when stdout is not a terminal.
func NewListRenderer(out io.Writer, color bool) *ListRenderer {
	bold := func(v interface{}) string { return fmt.Sprint(v) }
	if color {
		bold = promptui.Styler(promptui.FGBold)
	}
	return &ListRenderer{out: out, bold: bold}
}

// Render prints a fresh listing
func (r *ListRenderer) Render(recipes []models.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(r.out, "No recipes found.")
		return
	}

	for _, recipe := range recipes {
		fmt.Fprintf(r.out, "• %s: %s\n", r.bold(recipe.Name), recipe.Instructions)
	}
}

// Alerter writes alerts the user must notice
type Alerter struct {
	out io.Writer
}

func NewAlerter(out io.Writer) *Alerter {
	return &Alerter{out: out}
}

func (a *Alerter) Alert(message string) {
	fmt.Fprintf(a.out, "⚠ %s\n", message)
}

// Navigator reports page changes. Relative targets are resolved against the frontend
// base URL when one is configured; with open set the browser is launched.
type Navigator struct {
	out         io.Writer
	frontendURL string
	open        bool
	opener      func(string) error
}

func NewNavigator(out io.Writer, frontendURL string, open bool) *Navigator {
	return &Navigator{
		out:         out,
		frontendURL: frontendURL,
		open:        open,
		opener:      openBrowser,
	}
}

// Resolve returns the absolute location of target, or target itself when no frontend
// URL is known
func (n *Navigator) Resolve(target string) string {
	if n.frontendURL == "" {
		return target
	}

	base, err := url.Parse(n.frontendURL)
	if err != nil {
		return target
	}
	// Pages live one level below the base, e.g. <base>/recipe/recipe-page.html
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	base.Path += "recipe/"

	ref, err := url.Parse(target)
	if err != nil {
		return target
	}
	return base.ResolveReference(ref).String()
}

func (n *Navigator) Navigate(target string) {
	location := n.Resolve(target)
	fmt.Fprintf(n.out, "→ %s\n", location)

	if !n.open || location == target {
		return
	}
	if err := n.opener(location); err != nil {
		fmt.Fprintf(n.out, "⚠ Could not open browser automatically: %v\n", err)
	}
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
