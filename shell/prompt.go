package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// Prompter gathers interactive confirmation from the user. Declining a
// prompt is not an error; callers treat it as a cancelled no-op.
type Prompter interface {
	// Confirm asks a yes/no question. Only "y" or "yes" (case-insensitive)
	// count as acceptance.
	Confirm(label string) (bool, error)
	// Challenge asks the user to type expected verbatim. Input is trimmed of
	// surrounding whitespace and compared case-sensitively.
	Challenge(label, expected string) (bool, error)
	// Password reads a password, masked when the input is a terminal.
	Password(label string) (string, error)
}

// StdinPrompter reads answers from standard input, blocking without timeout.
// When stdin is a terminal it uses promptui for a nicer prompt; otherwise it
// falls back to plain line reads so piped input still works.
type StdinPrompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter returns a prompter bound to the process's standard streams.
func NewPrompter() *StdinPrompter {
	return &StdinPrompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewPlainPrompter returns a prompter that always uses plain line reads on
// the given streams.
func NewPlainPrompter(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm asks a yes/no question, defaulting to no.
func (p *StdinPrompter) Confirm(label string) (bool, error) {
	if p.interactive {
		prompt := promptui.Prompt{
			Label:     label,
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		return true, nil
	}

	fmt.Fprintf(p.out, "%s (y/N): ", label)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Challenge asks the user to type expected verbatim.
func (p *StdinPrompter) Challenge(label, expected string) (bool, error) {
	if p.interactive {
		prompt := promptui.Prompt{
			Label: label,
		}
		input, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		return strings.TrimSpace(input) == expected, nil
	}

	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(line) == expected, nil
}

// Password reads a password, masked when interactive.
func (p *StdinPrompter) Password(label string) (string, error) {
	if p.interactive {
		prompt := promptui.Prompt{
			Label: label,
			Mask:  '*',
		}
		input, err := prompt.Run()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return input, nil
	}

	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readLine reads one line, treating EOF after zero bytes as an empty answer.
func (p *StdinPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return line, nil
}
