// Package shell runs the external processes upv-cli drives and gathers
// user confirmation before destructive operations.
package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/upv-tools/upv-cli/common"
)

// Result captures what an external process produced. It is consumed
// immediately by the calling operation and never stored.
type Result struct {
	// Stdout is the captured standard output, read to completion.
	Stdout string
	// Stderr is the captured standard error, read to completion.
	Stderr string
	// Success reports whether the process exited with status zero.
	Success bool
}

// Runner executes external processes synchronously. Implementations
// distinguish two failure modes: a non-nil error means the process could not
// be launched or waited on at all, while a launched process that exits
// non-zero yields a nil error and a Result with Success false.
//
// No timeout is enforced; a hung external process hangs the caller.
type Runner interface {
	// Run executes a program with arguments and captures both streams.
	Run(name string, args ...string) (Result, error)
	// RunScript executes a program with arguments, writes script to its
	// standard input, closes it, and then waits for completion.
	RunScript(name string, script string, args ...string) (Result, error)
	// Start launches a program without waiting for it to exit.
	Start(name string, args ...string) error
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

// NewRunner returns the default process runner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the program and waits for it to exit.
func (r *ExecRunner) Run(name string, args ...string) (Result, error) {
	return r.run(name, "", args)
}

// RunScript executes the program, delivering script over its standard input.
// Used when the payload is too large or structured for a flat argument list.
func (r *ExecRunner) RunScript(name string, script string, args ...string) (Result, error) {
	return r.run(name, script, args)
}

func (r *ExecRunner) run(name string, script string, args []string) (Result, error) {
	common.LogDebug("running %s %v", name, args)

	cmd := exec.Command(name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var stdin io.WriteCloser
	if script != "" {
		pipe, err := cmd.StdinPipe()
		if err != nil {
			return Result{}, fmt.Errorf("failed to open stdin for %s: %w", name, err)
		}
		stdin = pipe
	}

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("failed to launch %s: %w", name, err)
	}

	if stdin != nil {
		if _, err := io.WriteString(stdin, script); err != nil {
			stdin.Close()
			cmd.Wait()
			return Result{}, fmt.Errorf("failed to write to %s stdin: %w", name, err)
		}
		stdin.Close()
	}

	err := cmd.Wait()
	res := Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Success: err == nil,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return res, fmt.Errorf("failed waiting for %s: %w", name, err)
		}
		common.LogDebug("%s exited non-zero: %v", name, err)
	}

	return res, nil
}

// Start launches the program and releases it without waiting. Used for
// fire-and-forget children such as the file explorer.
func (r *ExecRunner) Start(name string, args ...string) error {
	common.LogDebug("spawning %s %v", name, args)

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}
	return cmd.Process.Release()
}
