// Package prompt asks the operator questions on a terminal or any reader.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads one answer per line. End of input yields a blank answer.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm bool
}

// New creates a prompter over arbitrary streams. Secrets are read as plain lines.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// NewTerminal creates a prompter over stdin/stdout that hides secret input
// when stdin is a terminal.
func NewTerminal() *Prompter {
	fd := int(os.Stdin.Fd()) //nolint:gosec // G115: file descriptors fit in int
	return &Prompter{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		fd:     fd,
		isTerm: term.IsTerminal(fd),
	}
}

// Ask prints the question and returns the trimmed answer
func (p *Prompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s ", question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.readLine()
}

// AskSecret is Ask without echo on a terminal
func (p *Prompter) AskSecret(question string) (string, error) {
	if !p.isTerm {
		return p.Ask(question)
	}

	if _, err := fmt.Fprintf(p.out, "%s ", question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	b, err := term.ReadPassword(p.fd)
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Println writes a line of operator feedback
func (p *Prompter) Println(msg string) {
	_, _ = fmt.Fprintln(p.out, msg)
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
