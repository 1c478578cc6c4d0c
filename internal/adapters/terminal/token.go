// Package terminal reads secrets from an interactive terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Adapter handles secure token input from terminal.
type Adapter struct {
	stdin  io.Reader
	stderr io.Writer
}

// NewAdapter creates a new terminal adapter.
func NewAdapter(stdin io.Reader, stderr io.Writer) *Adapter {
	return &Adapter{
		stdin:  stdin,
		stderr: stderr,
	}
}

// ReadToken reads an access token from the terminal with echo disabled.
func (a *Adapter) ReadToken(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if !a.IsInteractive() {
		return "", errors.New("cannot read token: non-interactive terminal")
	}

	fmt.Fprint(a.stderr, prompt)

	// Type assertion to check if stdin is a file
	if file, ok := a.stdin.(*os.File); ok {
		token, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(a.stderr) // Print newline after token input
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return strings.TrimSpace(string(token)), nil
	}

	return "", errors.New("cannot read token from non-terminal input")
}

// IsInteractive returns true if the terminal is interactive.
func (a *Adapter) IsInteractive() bool {
	if file, ok := a.stdin.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
