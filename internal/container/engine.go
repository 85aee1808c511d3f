// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/stackrun/stackrun/internal/process"
)

const (
	EngineTypePodman EngineType = "podman"
	EngineTypeDocker EngineType = "docker"
)

var (
	// ErrEngineNotAvailable is the sentinel error wrapped by EngineNotAvailableError.
	ErrEngineNotAvailable = errors.New("container engine not available")
	// ErrInvalidEngineType is returned for engine names other than docker and podman.
	ErrInvalidEngineType = errors.New("invalid container engine type")
)

type (
	// Engine builds orchestrator commands for one container engine.
	Engine interface {
		// Name returns the engine name (docker or podman).
		Name() string
		// Available reports whether the engine and its compose plugin respond.
		Available(ctx context.Context) bool
		// Version returns the compose version string.
		Version(ctx context.Context) (string, error)
		// Compose returns "<engine> compose <stack flags> args...".
		Compose(args ...string) process.Command
		// Command returns "<engine> args...".
		Command(args ...string) process.Command
	}

	// EngineType identifies the container engine type.
	EngineType string

	// EngineNotAvailableError is returned when neither the preferred engine nor
	// its fallback responds.
	EngineNotAvailableError struct {
		Engine EngineType
		Reason string
	}
)

// ParseEngineType validates a configured engine name.
func ParseEngineType(s string) (EngineType, error) {
	switch t := EngineType(s); t {
	case EngineTypeDocker, EngineTypePodman:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q (expected docker or podman)", ErrInvalidEngineType, s)
	}
}

// Error implements the error interface.
func (e *EngineNotAvailableError) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// Unwrap returns ErrEngineNotAvailable so callers can use errors.Is for programmatic detection.
func (e *EngineNotAvailableError) Unwrap() error { return ErrEngineNotAvailable }

// NewEngine creates the preferred engine, falling back to the other one when
// the preferred engine does not respond.
func NewEngine(ctx context.Context, preferred EngineType, opts ...CLIEngineOption) (Engine, error) {
	var candidates []*CLIEngine
	switch preferred {
	case EngineTypeDocker:
		candidates = []*CLIEngine{NewDockerEngine(opts...), NewPodmanEngine(opts...)}
	case EngineTypePodman:
		candidates = []*CLIEngine{NewPodmanEngine(opts...), NewDockerEngine(opts...)}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidEngineType, preferred)
	}

	for _, engine := range candidates {
		if engine.Available(ctx) {
			return engine, nil
		}
	}

	fallback := candidates[1].Name()
	return nil, &EngineNotAvailableError{
		Engine: preferred,
		Reason: fmt.Sprintf("%s compose is not installed or not accessible, and %s fallback is also not available", preferred, fallback),
	}
}
