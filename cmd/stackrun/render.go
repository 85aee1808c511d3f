// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/stackrun/stackrun/internal/container"
	"github.com/stackrun/stackrun/internal/envfile"
	"github.com/stackrun/stackrun/internal/issue"
	"github.com/stackrun/stackrun/internal/task"
	"github.com/stackrun/stackrun/pkg/types"
)

// guideStyle is the glamour style issue guides are rendered with.
const guideStyle = "dark"

// classifyTaskError maps a dispatcher failure to an issue guide. ok is false
// for failures that need no guide, such as a cancelled prompt.
func classifyTaskError(err error) (id issue.Id, ok bool) {
	var pe *task.ProcessError
	switch {
	case errors.Is(err, task.ErrCancelled):
		return 0, false
	case errors.Is(err, envfile.ErrNotFound):
		return issue.EnvFileNotFoundId, true
	case errors.Is(err, task.ErrTaskNotFound):
		return issue.TaskNotFoundId, true
	case errors.Is(err, container.ErrEngineNotAvailable):
		return issue.ContainerEngineNotFoundId, true
	case errors.As(err, &pe) && pe.Code == types.ExitCommandNotFound:
		return issue.ToolNotFoundId, true
	case errors.As(err, &pe):
		return issue.ProcessFailedId, true
	default:
		return 0, false
	}
}

// renderGuide writes the issue guide for id to w. Rendering problems are
// ignored; the plain error line still follows.
func renderGuide(w io.Writer, id issue.Id) {
	guide := issue.Get(id)
	if guide == nil {
		return
	}
	rendered, err := guide.Render(guideStyle)
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}

// reportTaskError prints the guide and error line for a failed task and
// returns the ExitError carrying the task's exit code.
func reportTaskError(w io.Writer, err error, code types.ExitCode, verbose bool) error {
	if errors.Is(err, task.ErrCancelled) {
		fmt.Fprintf(w, "\n%s %s\n", WarningStyle.Render("Cancelled:"), formatErrorForDisplay(err, verbose))
		return &ExitError{Code: code, Err: err}
	}
	if id, ok := classifyTaskError(err); ok {
		renderGuide(w, id)
	}
	fmt.Fprintf(w, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	return &ExitError{Code: code, Err: err}
}

// reportConfigError prints the configuration guide and error line. Errors
// that carry their own suggestions skip the generic guide.
func reportConfigError(w io.Writer, err error, verbose bool) error {
	if needsConfigGuide(err) {
		renderGuide(w, issue.ConfigLoadFailedId)
	}
	fmt.Fprintf(w, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	return &ExitError{Code: types.ExitFailure, Err: err}
}

func needsConfigGuide(err error) bool {
	var ae *issue.ActionableError
	return !errors.As(err, &ae) || !ae.HasSuggestions()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
