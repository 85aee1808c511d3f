// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stackrun/stackrun/pkg/types"
)

// Dispatcher resolves task identifiers and runs task bodies.
type Dispatcher struct {
	registry *Registry
	deps     *Deps
}

// NewDispatcher creates a dispatcher over a registry and its capabilities.
func NewDispatcher(registry *Registry, deps Deps) *Dispatcher {
	return &Dispatcher{registry: registry, deps: deps.withDefaults()}
}

// Registry returns the task registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Invoke runs the task registered under identifier (canonical id or alias).
// Steps run strictly in order; the first failing step aborts the task.
// The returned code is 0 on success, the status of the failing process,
// ExitInterrupted when a prompt was cancelled, and ExitFailure otherwise.
func (d *Dispatcher) Invoke(ctx context.Context, identifier string, args []string) (types.ExitCode, error) {
	t, err := d.registry.Resolve(identifier)
	if err != nil {
		return types.ExitFailure, err
	}
	if len(args) > 0 {
		return types.ExitFailure, fmt.Errorf("%s: %w (got %q)", t.ID(), ErrUnexpectedArgs, args)
	}

	logger := d.deps.Logger
	logger.Debug("task started", "task", t.ID(), "steps", len(t.Steps))
	start := time.Now()

	x := newExecution(t, args, d.deps)
	err = runSteps(ctx, x, t.Steps)
	code := ExitCodeOf(err)

	logger.Debug("task finished", "task", t.ID(), "code", int(code), "duration", time.Since(start))
	if err != nil {
		return code, fmt.Errorf("task %s: %w", t.ID(), err)
	}
	return code, nil
}

// ExitCodeOf maps a task error to the process exit code.
func ExitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var pe *ProcessError
	if errors.As(err, &pe) {
		if pe.Code.IsSuccess() {
			return types.ExitFailure
		}
		return pe.Code
	}
	if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
		return types.ExitInterrupted
	}
	return types.ExitFailure
}

func runSteps(ctx context.Context, x *Execution, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		x.Logger().Debug("step", "task", x.Task.ID(), "index", i, "step", step.String())
		if err := step.Run(ctx, x); err != nil {
			return err
		}
	}
	return nil
}
