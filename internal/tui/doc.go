// SPDX-License-Identifier: MPL-2.0

// Package tui implements the interactive side of task execution: a Prompter
// built on charmbracelet/huh forms and a Reporter that renders task output
// with lipgloss.
package tui
