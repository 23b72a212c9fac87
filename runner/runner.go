// Package runner executes generated JavaScript with an external engine.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultCommand is the JavaScript engine used when Runner.Command is empty.
const DefaultCommand = "node"

// Runner feeds a program to Command on stdin and collects what it prints.
type Runner struct {
	Command string
	Args    []string
	// Timeout bounds a single run. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// Output is what one run printed.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ErrTimeout is returned when a run exceeds Runner.Timeout.
var ErrTimeout = errors.New("execution timed out")

// Run executes code. A non-zero exit is reported as an error together with
// the captured output.
func (r Runner) Run(ctx context.Context, code string) (Output, error) {
	command := r.Command
	if command == "" {
		command = DefaultCommand
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command, r.Args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewBufferString(code)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: cmd.ProcessState.ExitCode()}
	if err == nil {
		return out, nil
	}
	if ctx.Err() == context.DeadlineExceeded {
		return out, ErrTimeout
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, fmt.Errorf("%s exited with status %d", command, exitErr.ExitCode())
	}
	return out, fmt.Errorf("failed to run %s: %w", command, err)
}

// Available reports whether the engine can be found on PATH.
func (r Runner) Available() bool {
	command := r.Command
	if command == "" {
		command = DefaultCommand
	}
	_, err := exec.LookPath(command)
	return err == nil
}
