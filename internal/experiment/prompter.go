package experiment

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter abstracts the interactive console so the feedback flow can be
// driven by scripted responses in tests.
type Prompter interface {
	// ChooseOne blocks until the user enters one of options (compared
	// case-insensitively), re-prompting indefinitely on anything else.
	ChooseOne(label string, options []string) (string, error)

	// FreeText reads one line of optional text; empty input is valid.
	FreeText(label string) (string, error)

	// Confirm asks a yes/no question. With def true anything but "n" is a
	// yes; with def false only "y" is a yes.
	Confirm(label string, def bool) (bool, error)
}

// ConsolePrompter reads selections from an input stream, normally stdin.
type ConsolePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsolePrompter wraps an input/output pair.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewScanner(in), out: out}
}

func (p *ConsolePrompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// ChooseOne re-prompts until the input matches one of options.
func (p *ConsolePrompter) ChooseOne(label string, options []string) (string, error) {
	for {
		fmt.Fprint(p.out, label)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		line = strings.ToLower(line)
		for _, opt := range options {
			if line == opt {
				return line, nil
			}
		}
		fmt.Fprintf(p.out, "Please choose from: %s\n", strings.Join(options, ", "))
	}
}

// FreeText reads one line; empty is allowed.
func (p *ConsolePrompter) FreeText(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return p.readLine()
}

// Confirm reads a yes/no answer with the given default.
func (p *ConsolePrompter) Confirm(label string, def bool) (bool, error) {
	fmt.Fprint(p.out, label)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	line = strings.ToLower(line)
	if def {
		return line != "n", nil
	}
	return line == "y", nil
}
