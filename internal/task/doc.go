// SPDX-License-Identifier: MPL-2.0

// Package task implements the task dispatcher: a read-only registry of named,
// namespaced tasks and the machinery that executes a task body step by step.
//
// A task body is a straight-line list of steps (prompts, confirmations,
// existence checks, process invocations, output, branches). Steps run strictly
// in order. The first failing process invocation aborts the task and its exit
// status becomes the task's status; nothing that already happened is rolled back.
//
// Every side effect goes through a capability injected via Deps (Prompter,
// process.Runner, FileSystem, Reporter) so task bodies can be exercised in tests
// with scripted answers and recorded invocations.
package task
