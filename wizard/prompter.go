package wizard

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter is the wizard's only I/O surface. The shipped client speaks
// line-oriented terminal I/O; tests drive screens with a scripted
// implementation.
type Prompter interface {
	Say(text string)
	Ask(prompt string) (string, error)
	Choose(prompt string, options []string) (int, error)
	Confirm(prompt string) (bool, error)
}

// StdioPrompter reads answers line by line from a reader and writes
// prompts to a writer.
type StdioPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdioPrompter(in io.Reader, out io.Writer) *StdioPrompter {
	return &StdioPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *StdioPrompter) Say(text string) {
	fmt.Fprintln(p.out, text)
}

func (p *StdioPrompter) Ask(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s ", prompt)
	line, err := p.in.ReadString('\n')
	if nil != err && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *StdioPrompter) Choose(prompt string, options []string) (int, error) {
	for {
		fmt.Fprintln(p.out, prompt)
		for i, opt := range options {
			fmt.Fprintf(p.out, "  %d. %s\n", i+1, opt)
		}
		answer, err := p.Ask(">")
		if nil != err {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
	}
}

func (p *StdioPrompter) Confirm(prompt string) (bool, error) {
	for {
		answer, err := p.Ask(prompt + " [y/n]")
		if nil != err {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
