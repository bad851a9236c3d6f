package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user leaves a prompt without an answer.
var ErrCancelled = errors.New("cancelled")

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// New creates a prompter. Password input is hidden only when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

var std = New(os.Stdin, os.Stdout)

// Default returns the prompter on stdin and stdout.
func Default() *Prompter { return std }

func (p *Prompter) line() (string, error) {
	input, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimRight(input, "\r\n"), nil
}

// String prompts user for a string input
func (p *Prompter) String(label string) (string, error) {
	fmt.Fprint(p.out, label)
	input, err := p.line()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// Password prompts user for a password (hidden input)
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.tty {
		return p.line()
	}

	bytepw, err := term.ReadPassword(p.fd)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(p.out)
	return string(bytepw), nil
}

// Confirm prompts user for yes/no confirmation
func (p *Prompter) Confirm(label string) (bool, error) {
	fmt.Fprint(p.out, label+" (y/n) ")
	input, err := p.line()
	if err != nil {
		return false, err
	}
	response := strings.TrimSpace(strings.ToLower(input))
	return response == "y" || response == "yes", nil
}

// Select prompts user to select from options
func (p *Prompter) Select(label string, options []string) (int, error) {
	fmt.Fprintln(p.out, label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "%d) %s\n", i+1, opt)
	}

	fmt.Fprint(p.out, "Select option: ")
	input, err := p.line()
	if err != nil {
		return -1, err
	}

	var selection int
	if _, err := fmt.Sscanf(strings.TrimSpace(input), "%d", &selection); err != nil {
		return -1, err
	}
	if selection < 1 || selection > len(options) {
		return -1, fmt.Errorf("invalid selection")
	}
	return selection - 1, nil
}

// Multiline reads lines until the first empty one or maxLines. An empty
// answer returns ErrCancelled.
func (p *Prompter) Multiline(label string, maxLines int) (string, error) {
	fmt.Fprintf(p.out, "%s (empty line to finish):\n", label)

	var lines []string
	for i := 0; i < maxLines; i++ {
		line, err := p.line()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "", ErrCancelled
	}
	return strings.Join(lines, "\n"), nil
}

// PromptString prompts on stdin.
func PromptString(label string) (string, error) { return std.String(label) }

// PromptPassword prompts on stdin without echo.
func PromptPassword(label string) (string, error) { return std.Password(label) }

// PromptConfirm asks a yes/no question on stdin.
func PromptConfirm(label string) (bool, error) { return std.Confirm(label) }

// PromptSelect asks for one of options on stdin.
func PromptSelect(label string, options []string) (int, error) { return std.Select(label, options) }

// PromptMultilineString reads several lines from stdin.
func PromptMultilineString(label string, maxLines int) (string, error) {
	return std.Multiline(label, maxLines)
}
