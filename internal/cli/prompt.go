package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Prompter asks the user questions on a terminal. The zero value is not
// usable; construct one with NewPrompter.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading from in and writing to out.
// Commands pass os.Stdin/os.Stdout; tests pass buffers.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// StdPrompter returns a Prompter on the process's stdin/stdout.
func StdPrompter() *Prompter {
	return NewPrompter(os.Stdin, os.Stdout)
}

// Confirm asks a yes/no question. Empty input selects the default.
func (p *Prompter) Confirm(message string, def bool) (bool, error) {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}

	for {
		fmt.Fprintf(p.out, "%s %s ", message, suffix)
		line, err := p.readLine(message)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// Select presents a numbered menu and returns the index of the chosen option.
// Invalid input re-prompts.
func (p *Prompter) Select(message string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, &PromptError{Prompt: message, Err: fmt.Errorf("no options to select from")}
	}

	fmt.Fprintln(p.out, message)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(p.out, "Choice [1-%d]: ", len(options))
		line, err := p.readLine(message)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Please enter a number between 1 and %d.\n", len(options))
	}
}

// Input asks for a line of free text. Empty input selects the default.
func (p *Prompter) Input(message, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s (%s): ", message, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", message)
	}

	line, err := p.readLine(message)
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (p *Prompter) readLine(prompt string) (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", &PromptError{Prompt: prompt, Err: err}
	}
	return strings.TrimSpace(line), nil
}
