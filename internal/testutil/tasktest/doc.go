// SPDX-License-Identifier: MPL-2.0

// Package tasktest provides scripted fakes for the task capabilities: a
// Prompter that replays answers, a Runner that records commands and returns
// programmed exit codes, and a Reporter that records output.
//
// Usage:
//
//	h := tasktest.New(t)
//	h.Prompter.QueueConfirm(true)
//	h.Runner.Fail("composer", 1)
//	code, err := task.NewDispatcher(registry, h.Deps()).Invoke(ctx, "project:install", nil)
package tasktest
