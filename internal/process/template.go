// SPDX-License-Identifier: MPL-2.0

package process

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// ErrUnknownVariable is the sentinel error wrapped by UnknownVariableError.
var ErrUnknownVariable = errors.New("unknown variable")

// UnknownVariableError is returned when a template references variables that
// the lookup cannot resolve.
type UnknownVariableError struct {
	Template string
	Names    []string
}

// Error implements the error interface.
func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("template %q references undefined variable(s): %s", e.Template, strings.Join(e.Names, ", "))
}

// Unwrap returns ErrUnknownVariable so callers can use errors.Is for programmatic detection.
func (e *UnknownVariableError) Unwrap() error { return ErrUnknownVariable }

// LookupFunc resolves a template variable.
type LookupFunc func(name string) (string, bool)

// Expand splits a command-line template into words using POSIX shell rules
// (quotes, escapes, $name and ${name} expansion) without invoking a shell.
// Every referenced variable must resolve through lookup.
func Expand(template string, lookup LookupFunc) ([]string, error) {
	var missing []string
	fields, err := shell.Fields(template, func(name string) string {
		if name == "IFS" {
			// Consulted by the expander for field splitting; keep the default.
			return ""
		}
		v, ok := lookup(name)
		if !ok && !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
		return v
	})
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", template, err)
	}
	if len(missing) > 0 {
		return nil, &UnknownVariableError{Template: template, Names: missing}
	}
	return fields, nil
}

// ExpandWord expands $name and ${name} references in word and returns it as
// a single argument. Everything else, including quotes, backslashes and
// control characters, is kept literally.
func ExpandWord(word string, lookup LookupFunc) (string, error) {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range word {
		switch r {
		case '"', '\\', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')

	fields, err := Expand(b.String(), lookup)
	if err != nil {
		return "", err
	}
	return strings.Join(fields, " "), nil
}

// Split splits a configured tool command line (for example "php bin/console")
// into words. Variable references are rejected.
func Split(commandLine string) ([]string, error) {
	return Expand(commandLine, func(string) (string, bool) { return "", false })
}
