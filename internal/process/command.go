// SPDX-License-Identifier: MPL-2.0

package process

import (
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Command is a single external process invocation.
type Command struct {
	// Name is the executable (looked up in PATH when not absolute).
	Name string
	// Args are the arguments passed to the executable.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env holds extra KEY=VALUE entries appended to the inherited environment.
	Env []string
}

// NewCommand builds a Command from a tool command line (for example
// "php bin/console") followed by extra arguments.
func NewCommand(tool []string, args ...string) Command {
	if len(tool) == 0 {
		return Command{Args: slices.Clone(args)}
	}
	all := make([]string, 0, len(tool)-1+len(args))
	all = append(all, tool[1:]...)
	all = append(all, args...)
	return Command{Name: tool[0], Args: all}
}

// Argv returns the name followed by the arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command line with POSIX shell quoting so it can be
// copied into a terminal as-is.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, word := range c.Argv() {
		parts = append(parts, quote(word))
	}
	return strings.Join(parts, " ")
}

func quote(word string) string {
	quoted, err := syntax.Quote(word, syntax.LangPOSIX)
	if err != nil {
		// Only words with control characters fail to quote; show them raw.
		return word
	}
	return quoted
}
