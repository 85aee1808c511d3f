// SPDX-License-Identifier: MPL-2.0

package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stackrun/stackrun/internal/process"
	"github.com/stackrun/stackrun/pkg/types"
)

var (
	// ErrTaskNotFound is the sentinel error wrapped by NotFoundError.
	ErrTaskNotFound = errors.New("task not found")
	// ErrDuplicateTask is the sentinel error wrapped by DuplicateError.
	ErrDuplicateTask = errors.New("duplicate task identifier")
	// ErrInvalidTask is returned by NewRegistry for malformed task definitions.
	ErrInvalidTask = errors.New("invalid task")
	// ErrProcessFailed is the sentinel error wrapped by ProcessError.
	ErrProcessFailed = errors.New("external process failed")
	// ErrCancelled is returned by Prompter implementations when the user aborts a prompt.
	ErrCancelled = errors.New("prompt cancelled")
	// ErrUnexpectedArgs is returned when positional arguments are passed to a task.
	ErrUnexpectedArgs = errors.New("tasks take no positional arguments")
	// ErrNoAnswer is returned when a condition reads an answer that was never recorded.
	ErrNoAnswer = errors.New("no answer recorded")
)

type (
	// NotFoundError is returned when no task or alias matches an identifier.
	NotFoundError struct {
		Identifier string
		// Suggestions lists registered identifiers that look similar.
		Suggestions []string
	}

	// DuplicateError is returned when two tasks claim the same identifier.
	DuplicateError struct {
		Identifier string
		Existing   string
		Duplicate  string
	}

	// ProcessError reports an external process that exited non-zero or could
	// not be started. It is fatal to the task that ran it.
	ProcessError struct {
		Command process.Command
		Code    types.ExitCode
		// Err is set when the process could not be started.
		Err error
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("unknown task %q", e.Identifier)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

// Unwrap returns ErrTaskNotFound so callers can use errors.Is for programmatic detection.
func (e *NotFoundError) Unwrap() error { return ErrTaskNotFound }

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("identifier %q of task %s is already used by task %s", e.Identifier, e.Duplicate, e.Existing)
}

// Unwrap returns ErrDuplicateTask so callers can use errors.Is for programmatic detection.
func (e *DuplicateError) Unwrap() error { return ErrDuplicateTask }

// Error implements the error interface.
func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Command.String(), e.Err)
	}
	return fmt.Sprintf("%s exited with status %d", e.Command.String(), e.Code)
}

// Unwrap returns ErrProcessFailed and, when the process could not start, the cause.
func (e *ProcessError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProcessFailed}
	}
	return []error{ErrProcessFailed, e.Err}
}
