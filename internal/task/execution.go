// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/stackrun/stackrun/internal/envfile"
	"github.com/stackrun/stackrun/internal/process"

	"github.com/charmbracelet/log"
)

type (
	// Prompter gathers interactive input. Both methods block until the user answers.
	// Implementations return ErrCancelled (possibly wrapped) when the user aborts.
	Prompter interface {
		Ask(ctx context.Context, question, defaultValue string) (string, error)
		Confirm(ctx context.Context, question string, defaultValue bool) (bool, error)
	}

	// FileSystem is the filesystem capability tasks use. Paths are relative to
	// the project directory.
	FileSystem interface {
		Exists(path string) bool
		// Copy copies a regular file.
		Copy(src, dst string) error
		Write(path string, data []byte) error
		ReadFile(path string) ([]byte, error)
		// MoveContents moves every entry of directory src into dst, replacing
		// existing entries.
		MoveContents(src, dst string) error
		RemoveAll(path string) error
	}

	// Reporter renders structured, non-interactive status output.
	Reporter interface {
		Title(text string)
		Section(text string)
		Success(text string)
		Warning(text string)
		Info(text string)
		Note(text string)
		Listing(pairs [][2]string)
	}

	// ContainerEngine builds orchestrator invocations for the project stack.
	ContainerEngine interface {
		// Compose returns "<engine> compose <stack flags> args...".
		Compose(args ...string) process.Command
		// Command returns "<engine> args..." for engine-level commands.
		Command(args ...string) process.Command
	}

	// EngineResolver returns the container engine, resolving it on first use.
	EngineResolver func(ctx context.Context) (ContainerEngine, error)

	// Tools holds the command lines of the external tools tasks invoke.
	Tools struct {
		Composer []string
		Console  []string
		Git      []string
	}

	// Deps are the capabilities and settings shared by every invocation.
	Deps struct {
		Prompter Prompter
		Runner   process.Runner
		FS       FileSystem
		Out      Reporter
		Engine   EngineResolver
		Logger   *log.Logger
		Tools    Tools
		// EnvFile is the path of the stack env file, relative to the project directory.
		EnvFile string
		// WorkDir is the project directory processes run in.
		WorkDir string
		// Settings are extra read-only values exposed to templates (for example
		// the default skeleton version).
		Settings map[string]string
	}

	// Execution is the state of a single task invocation. It is discarded when
	// the invocation finishes.
	Execution struct {
		Task *Task
		Args []string

		deps    *Deps
		answers map[string]any
		env     *envfile.File
	}
)

func newExecution(t *Task, args []string, deps *Deps) *Execution {
	return &Execution{
		Task:    t,
		Args:    args,
		deps:    deps,
		answers: make(map[string]any),
	}
}

// Prompter returns the injected Prompter.
func (x *Execution) Prompter() Prompter { return x.deps.Prompter }

// FS returns the injected FileSystem.
func (x *Execution) FS() FileSystem { return x.deps.FS }

// Out returns the injected Reporter.
func (x *Execution) Out() Reporter { return x.deps.Out }

// Logger returns the dispatcher logger.
func (x *Execution) Logger() *log.Logger { return x.deps.Logger }

// Tools returns the configured tool command lines.
func (x *Execution) Tools() Tools { return x.deps.Tools }

// WorkDir returns the project directory.
func (x *Execution) WorkDir() string { return x.deps.WorkDir }

// Setting returns a configured template value.
func (x *Execution) Setting(name string) string { return x.deps.Settings[name] }

// EnvFilePath returns the configured env file path.
func (x *Execution) EnvFilePath() string { return x.deps.EnvFile }

// Engine resolves the container engine.
func (x *Execution) Engine(ctx context.Context) (ContainerEngine, error) {
	if x.deps.Engine == nil {
		return nil, errors.New("no container engine configured")
	}
	return x.deps.Engine(ctx)
}

// Set records an answer under key.
func (x *Execution) Set(key string, value any) {
	x.answers[key] = value
}

// Answer returns the raw answer recorded under key.
func (x *Execution) Answer(key string) (any, bool) {
	v, ok := x.answers[key]
	return v, ok
}

// Bool returns a boolean answer.
func (x *Execution) Bool(key string) (value, ok bool) {
	b, ok := x.answers[key].(bool)
	return b, ok
}

// String returns a string answer.
func (x *Execution) String(key string) (string, bool) {
	s, ok := x.answers[key].(string)
	return s, ok
}

// Env returns the env file loaded by LoadEnv, or nil.
func (x *Execution) Env() *envfile.File { return x.env }

// LoadEnv reads the configured env file through the FileSystem. The mapping is
// read fresh on every call.
func (x *Execution) LoadEnv() (*envfile.File, error) {
	f, err := envfile.LoadFrom(x.deps.FS, x.deps.EnvFile)
	if err != nil {
		return nil, err
	}
	x.env = f
	return f, nil
}

// Lookup resolves a template variable: answers first, then settings, then the
// loaded env file. env_file always resolves, to the configured env file path.
func (x *Execution) Lookup(name string) (string, bool) {
	if v, ok := x.answers[name]; ok {
		switch v := v.(type) {
		case string:
			return v, true
		case bool:
			return strconv.FormatBool(v), true
		}
	}
	if v, ok := x.deps.Settings[name]; ok {
		return v, true
	}
	if name == "env_file" {
		return x.deps.EnvFile, true
	}
	if x.env != nil {
		if v, ok := x.env.Get(name); ok {
			return v.String(), true
		}
	}
	return "", false
}

// Text expands $name references in an output message. Unknown names expand to
// the empty string; output never fails.
func (x *Execution) Text(template string) string {
	return os.Expand(template, func(name string) string {
		v, _ := x.Lookup(name)
		return v
	})
}

// Exec runs cmd in the project directory. A non-zero status or a start
// failure is returned as a *ProcessError.
func (x *Execution) Exec(ctx context.Context, cmd process.Command) error {
	if cmd.Dir == "" {
		cmd.Dir = x.deps.WorkDir
	}
	code, err := x.deps.Runner.Run(ctx, cmd)
	if err != nil {
		return &ProcessError{Command: cmd, Code: code.Normalize(), Err: err}
	}
	if !code.IsSuccess() {
		return &ProcessError{Command: cmd, Code: code}
	}
	return nil
}

func (d *Deps) withDefaults() *Deps {
	out := *d
	if out.Logger == nil {
		out.Logger = log.New(io.Discard)
	}
	return &out
}
