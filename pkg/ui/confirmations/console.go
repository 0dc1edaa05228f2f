// Package confirmations asks the user yes/no questions on the console.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ConsoleConfirmer prompts on out and reads the answer from in
type ConsoleConfirmer struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewConsoleConfirmer creates a confirmer for stdin/stderr. When stdin is
// not a terminal every question is answered no.
func NewConsoleConfirmer() *ConsoleConfirmer {
	fd := os.Stdin.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewConfirmer(os.Stdin, os.Stderr, interactive)
}

// NewConfirmer creates a confirmer over arbitrary streams
func NewConfirmer(in io.Reader, out io.Writer, interactive bool) *ConsoleConfirmer {
	return &ConsoleConfirmer{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Interactive reports whether questions reach a user
func (c *ConsoleConfirmer) Interactive() bool {
	return c.interactive
}

// Confirm asks prompt and returns true for y or yes. Anything else,
// including an empty answer or end of input, is a no.
func (c *ConsoleConfirmer) Confirm(prompt string) (bool, error) {
	if !c.interactive {
		return false, nil
	}

	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}

	response, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
