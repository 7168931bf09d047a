package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// stdinIsTerminal is swapped in tests
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// readSecret asks for a value without echoing it. Outside a terminal it fails with
// hint, the flag or env var to use instead.
func readSecret(out io.Writer, label, hint string) (string, error) {
	if !stdinIsTerminal() {
		return "", fmt.Errorf("%s is required in non-interactive mode (%s)", label, hint)
	}

	fmt.Fprintf(out, "%s: ", label)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out) // New line after hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", label, err)
	}

	return string(secret), nil
}

// lineReader reads one line of input. It returns io.EOF when the user is done.
type lineReader interface {
	ReadLine(label string) (string, error)
}

// promptReader reads lines interactively with promptui
type promptReader struct{}

func (promptReader) ReadLine(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	line, err := prompt.Run()
	if errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

// scanReader reads lines from a plain stream, e.g. a pipe
type scanReader struct {
	scanner *bufio.Scanner
}

func newScanReader(r io.Reader) *scanReader {
	return &scanReader{scanner: bufio.NewScanner(r)}
}

func (s *scanReader) ReadLine(string) (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}
