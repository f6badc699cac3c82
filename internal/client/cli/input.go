package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyInput is returned when a prompt is answered with nothing but whitespace.
var ErrEmptyInput = errors.New("input must not be empty")

// readPassword is swapped out in tests to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText writes "<prompt>: " to w and reads one line from reader.
// Surrounding whitespace is dropped and a blank answer yields ErrEmptyInput.
// A final line without a trailing newline is accepted.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}

	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}

	value := strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("%s: %w", strings.ToLower(prompt), ErrEmptyInput)
	}
	return value, nil
}

// GetPassword reads a password from the terminal without echo. Unlike
// usernames, passwords are returned verbatim; only an empty one is rejected.
// The caller wipes the returned slice.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, fmt.Errorf("password: %w", ErrEmptyInput)
	}
	return pw, nil
}
