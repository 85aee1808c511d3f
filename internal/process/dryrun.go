// SPDX-License-Identifier: MPL-2.0

package process

import (
	"context"
	"fmt"
	"io"

	"github.com/stackrun/stackrun/pkg/types"
)

// DryRunner prints commands instead of running them and always succeeds.
type DryRunner struct {
	w      io.Writer
	format func(string) string
}

// NewDryRunner creates a DryRunner writing to w. format decorates each
// rendered command line; nil leaves it unchanged.
func NewDryRunner(w io.Writer, format func(string) string) *DryRunner {
	if format == nil {
		format = func(s string) string { return s }
	}
	return &DryRunner{w: w, format: format}
}

// Run implements Runner.
func (r *DryRunner) Run(_ context.Context, cmd Command) (types.ExitCode, error) {
	line := cmd.String()
	if cmd.Dir != "" {
		line = fmt.Sprintf("(cd %s && %s)", quote(cmd.Dir), line)
	}
	fmt.Fprintln(r.w, r.format("$ "+line))
	return types.ExitSuccess, nil
}
