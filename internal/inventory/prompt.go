package inventory

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrlokans/shelftrack/internal/reconcile"
)

// Prompter is the operator's side of a workflow: answers come from Ask, every
// message is written to the Prompter itself.
type Prompter interface {
	io.Writer
	// Ask shows prompt and returns the next input line without its line ending.
	// It returns io.EOF once input is exhausted.
	Ask(prompt string) (string, error)
}

// Terminal is a Prompter over a line-oriented reader and writer, typically
// stdin and stdout.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *Terminal) Ask(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)

	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

const idHint = "Please enter a four digit number greater than 999."

func ask(p Prompter, prompt string) (string, error) {
	line, err := p.Ask(prompt)
	if errors.Is(err, io.EOF) {
		return "", ErrAborted
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks prompt and reports whether the operator answered y or Y.
func confirm(p Prompter, prompt string) (bool, error) {
	answer, err := ask(p, prompt)
	if err != nil {
		return false, err
	}
	return isYes(answer), nil
}

func isYes(answer string) bool {
	return answer == "y" || answer == "Y"
}

// askID re-prompts until the operator enters a four-digit id.
func askID(p Prompter, prompt string) (int, error) {
	for {
		answer, err := ask(p, prompt)
		if err != nil {
			return 0, err
		}
		id, err := strconv.Atoi(answer)
		if err != nil || reconcile.ValidateID(id) != nil {
			fmt.Fprintln(p, idHint)
			continue
		}
		return id, nil
	}
}

// askText re-prompts until the operator enters a non-blank line.
func askText(p Prompter, prompt, hint string) (string, error) {
	for {
		answer, err := ask(p, prompt)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p, hint)
	}
}
