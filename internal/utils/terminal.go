package utils

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ReadPassphrase prompts on stderr and reads a line from the terminal
// with echo disabled. Fails when stdin is not a terminal; non-interactive
// callers must pass the secret through a flag instead.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal; pass the secret with a flag instead")
	}

	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	// Hidden input swallows the user's newline.
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading hidden input: %w", err)
	}

	return secret, nil
}

// IsTerminal reports whether stdin is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
