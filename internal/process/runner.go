// SPDX-License-Identifier: MPL-2.0

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/stackrun/stackrun/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// Runner runs one external command to completion.
	// The returned error is non-nil only when the process could not be started;
	// a process that ran and exited non-zero yields its status and a nil error.
	Runner interface {
		Run(ctx context.Context, cmd Command) (types.ExitCode, error)
	}

	// ExecCommandFunc creates an *exec.Cmd. It is swapped out in tests.
	ExecCommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

	// ExecRunner runs commands on the host with inherited standard streams.
	ExecRunner struct {
		execCommand ExecCommandFunc
		stdin       io.Reader
		stdout      io.Writer
		stderr      io.Writer
		logger      *log.Logger
	}

	// ExecRunnerOption configures an ExecRunner.
	ExecRunnerOption func(*ExecRunner)
)

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) ExecRunnerOption {
	return func(r *ExecRunner) {
		r.execCommand = fn
	}
}

// WithStdio replaces the inherited standard streams.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) ExecRunnerOption {
	return func(r *ExecRunner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger sets the logger used for debug tracing of spawned commands.
func WithLogger(logger *log.Logger) ExecRunnerOption {
	return func(r *ExecRunner) {
		r.logger = logger
	}
}

// NewExecRunner creates a runner that spawns real processes.
func NewExecRunner(opts ...ExecRunnerOption) *ExecRunner {
	r := &ExecRunner{
		execCommand: exec.CommandContext,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run spawns cmd, waits for it and reports its exit status.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (types.ExitCode, error) {
	if cmd.Name == "" {
		return types.ExitFailure, errors.New("empty command")
	}

	r.logger.Debug("spawning process", "command", cmd.String(), "dir", cmd.Dir)

	c := r.execCommand(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		base := c.Env
		if base == nil {
			base = os.Environ()
		}
		c.Env = append(base, cmd.Env...)
	}
	c.Stdin = r.stdin
	c.Stdout = r.stdout
	c.Stderr = r.stderr

	err := c.Run()
	if err == nil {
		r.logger.Debug("process finished", "command", cmd.Name, "code", 0)
		return types.ExitSuccess, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := types.ExitCode(exitErr.ExitCode()).Normalize()
		r.logger.Debug("process finished", "command", cmd.Name, "code", code)
		return code, nil
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return types.ExitCommandNotFound, fmt.Errorf("start %s: %w", cmd.Name, err)
	}
	return types.ExitFailure, fmt.Errorf("start %s: %w", cmd.Name, err)
}
