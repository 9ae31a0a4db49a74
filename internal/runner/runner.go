// Package runner wraps the external binaries the workflows depend on.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"koosh-cursor-tools/internal/logger"
)

// Result holds the captured output of a finished command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Runner checks for and runs external commands.
type Runner interface {
	// LookPath reports whether name can be found on PATH.
	LookPath(name string) bool
	// Run executes name with args inside dir (the current directory when
	// empty) and waits for it. A non-zero exit yields a *CommandError.
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// CommandError reports a command that failed to start or exited non-zero.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("command failed: %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command failed: %s - %s", e.Command, e.Stderr)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Exec runs commands with os/exec.
type Exec struct{}

// LookPath reports whether name is an executable on PATH.
func (Exec) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Run executes the command and captures stdout and stderr separately.
func (Exec) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		return res, &CommandError{
			Command: strings.Join(append([]string{name}, args...), " "),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return res, nil
}
