// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load env file"},
			expected: "failed to load env file",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load env file", Resource: ".env.docker"},
			expected: "failed to load env file: .env.docker",
		},
		{
			name:     "full context",
			err:      &ActionableError{Operation: "run task", Resource: "docker:start", Cause: errors.New("exit status 1")},
			expected: "failed to run task: docker:start: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("no such file or directory")
	err := NewErrorContext().
		WithOperation("load env file").
		WithResource(".env.docker").
		WithSuggestion("Run 'stackrun env:init'").
		Wrap(fmt.Errorf("open: %w", root)).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "  • Run 'stackrun env:init'") {
		t.Errorf("Format(false) missing suggestion:\n%s", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Errorf("Format(false) includes error chain:\n%s", short)
	}

	verbose := err.Format(true)
	for _, want := range []string{"Error chain:", "1. open: no such file or directory", "2. no such file or directory"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}
	if !errors.Is(err, root) {
		t.Error("errors.Is(err, root) = false")
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation != nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation != nil")
	}
	e := NewErrorContext().WithOperation("start stack").WithSuggestions("a", "b").Build()
	if !e.HasSuggestions() || len(e.Suggestions) != 2 {
		t.Errorf("Suggestions = %v", e.Suggestions)
	}
	if WrapWithOperation(nil, "x") != nil {
		t.Error("WrapWithOperation(nil) != nil")
	}
}
