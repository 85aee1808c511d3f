// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/stackrun/stackrun/internal/process"
)

const (
	probeAttempts = 3
	probeBackoff  = 200 * time.Millisecond
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// LookPathFunc resolves an executable name to a path.
	LookPathFunc func(file string) (string, error)

	// CLIEngineOption configures a CLIEngine.
	CLIEngineOption func(*CLIEngine)

	// CLIEngine drives a container engine through its command-line client.
	// Docker and Podman differ only in name and binary.
	CLIEngine struct {
		name        EngineType
		binaryPath  string
		execCommand ExecCommandFunc
		lookPath    LookPathFunc
		composeFile string
		envFile     string
		projectName string
	}
)

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) CLIEngineOption {
	return func(e *CLIEngine) {
		e.execCommand = fn
	}
}

// WithLookPath replaces exec.LookPath for binary resolution.
func WithLookPath(fn LookPathFunc) CLIEngineOption {
	return func(e *CLIEngine) {
		e.lookPath = fn
	}
}

// WithComposeFile sets the compose file passed with -f.
func WithComposeFile(path string) CLIEngineOption {
	return func(e *CLIEngine) {
		e.composeFile = path
	}
}

// WithEnvFile sets the env file passed with --env-file.
func WithEnvFile(path string) CLIEngineOption {
	return func(e *CLIEngine) {
		e.envFile = path
	}
}

// WithProjectName sets the compose project name passed with -p.
func WithProjectName(name string) CLIEngineOption {
	return func(e *CLIEngine) {
		e.projectName = name
	}
}

// NewDockerEngine creates a Docker engine.
func NewDockerEngine(opts ...CLIEngineOption) *CLIEngine {
	return newCLIEngine(EngineTypeDocker, opts...)
}

// NewPodmanEngine creates a Podman engine.
func NewPodmanEngine(opts ...CLIEngineOption) *CLIEngine {
	return newCLIEngine(EngineTypePodman, opts...)
}

func newCLIEngine(name EngineType, opts ...CLIEngineOption) *CLIEngine {
	e := &CLIEngine{
		name:        name,
		execCommand: exec.CommandContext,
		lookPath:    exec.LookPath,
	}
	for _, opt := range opts {
		opt(e)
	}
	if path, err := e.lookPath(string(name)); err == nil {
		e.binaryPath = path
	}
	return e
}

// Name returns the engine name.
func (e *CLIEngine) Name() string { return string(e.name) }

// Available reports whether "<engine> compose version" succeeds.
func (e *CLIEngine) Available(ctx context.Context) bool {
	if e.binaryPath == "" {
		return false
	}
	_, err := e.Version(ctx)
	return err == nil
}

// Version returns the compose version. Transient engine failures are retried.
func (e *CLIEngine) Version(ctx context.Context) (string, error) {
	if e.binaryPath == "" {
		return "", &EngineNotAvailableError{Engine: e.name, Reason: "executable not found in PATH"}
	}
	var version string
	err := RetryWithBackoff(ctx, probeAttempts, probeBackoff, func(int) (bool, error) {
		out, err := e.output(ctx, "compose", "version", "--short")
		if err != nil {
			return IsTransientError(err), err
		}
		version = strings.TrimSpace(out)
		return false, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get %s compose version: %w", e.name, err)
	}
	return version, nil
}

// StackArgs returns the flags selecting the project stack.
func (e *CLIEngine) StackArgs() []string {
	var args []string
	if e.projectName != "" {
		args = append(args, "-p", e.projectName)
	}
	if e.envFile != "" {
		args = append(args, "--env-file", e.envFile)
	}
	if e.composeFile != "" {
		args = append(args, "-f", e.composeFile)
	}
	return args
}

// Compose builds "<engine> compose <stack flags> args...".
func (e *CLIEngine) Compose(args ...string) process.Command {
	all := slices.Concat([]string{"compose"}, e.StackArgs(), args)
	return process.Command{Name: e.command(), Args: all}
}

// Command builds "<engine> args...".
func (e *CLIEngine) Command(args ...string) process.Command {
	return process.Command{Name: e.command(), Args: slices.Clone(args)}
}

// command prefers the resolved path but keeps the bare name for dry runs on
// hosts without the engine.
func (e *CLIEngine) command() string {
	if e.binaryPath != "" {
		return e.binaryPath
	}
	return string(e.name)
}

func (e *CLIEngine) output(ctx context.Context, args ...string) (string, error) {
	cmd := e.execCommand(ctx, e.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("command %s %v failed: %w: %s", e.binaryPath, args, err, msg)
		}
		return "", fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}
	return stdout.String(), nil
}
