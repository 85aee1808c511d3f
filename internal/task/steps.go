// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/stackrun/stackrun/internal/process"
)

type (
	askStep struct {
		key, question, defaultValue string
	}

	confirmStep struct {
		key, question string
		defaultValue  bool
	}

	existsStep struct {
		key, path string
	}

	// CommandFunc builds a command from the execution state.
	CommandFunc func(ctx context.Context, x *Execution) (process.Command, error)

	runStep struct {
		label string
		build CommandFunc
	}

	// OutputKind selects the Reporter method an Output step uses.
	OutputKind int

	outputStep struct {
		kind OutputKind
		text string
	}

	loadEnvStep struct{}

	doStep struct {
		label string
		fn    func(ctx context.Context, x *Execution) error
	}
)

const (
	OutputTitle OutputKind = iota
	OutputSection
	OutputSuccess
	OutputWarning
	OutputInfo
	OutputNote
)

// Ask prompts for a string and records it under key. Empty input yields defaultValue.
func Ask(key, question, defaultValue string) Step {
	return &askStep{key: key, question: question, defaultValue: defaultValue}
}

func (s *askStep) Run(ctx context.Context, x *Execution) error {
	answer, err := x.Prompter().Ask(ctx, x.Text(s.question), x.Text(s.defaultValue))
	if err != nil {
		return err
	}
	if answer == "" {
		answer = x.Text(s.defaultValue)
	}
	x.Set(s.key, answer)
	return nil
}

func (s *askStep) String() string { return "ask " + s.key }

// Confirm asks a yes/no question and records the answer under key.
func Confirm(key, question string, defaultValue bool) Step {
	return &confirmStep{key: key, question: question, defaultValue: defaultValue}
}

func (s *confirmStep) Run(ctx context.Context, x *Execution) error {
	answer, err := x.Prompter().Confirm(ctx, x.Text(s.question), s.defaultValue)
	if err != nil {
		return err
	}
	x.Set(s.key, answer)
	return nil
}

func (s *confirmStep) String() string { return "confirm " + s.key }

// Exists records whether path exists under key.
func Exists(key, path string) Step {
	return &existsStep{key: key, path: path}
}

func (s *existsStep) Run(_ context.Context, x *Execution) error {
	x.Set(s.key, x.FS().Exists(x.Text(s.path)))
	return nil
}

func (s *existsStep) String() string { return "exists " + s.path }

// Run invokes the command described by a shell-word template. $name references
// resolve against answers, settings and the loaded env file.
func Run(template string) Step {
	return &runStep{
		label: template,
		build: func(ctx context.Context, x *Execution) (process.Command, error) {
			words, err := process.Expand(template, x.Lookup)
			if err != nil {
				return process.Command{}, err
			}
			if len(words) == 0 {
				return process.Command{}, fmt.Errorf("%w: empty command template", ErrInvalidTask)
			}
			return process.NewCommand(words), nil
		},
	}
}

// RunCommand invokes the command returned by build.
func RunCommand(label string, build CommandFunc) Step {
	return &runStep{label: label, build: build}
}

// Composer invokes the configured dependency manager.
func Composer(args ...string) Step {
	return toolStep("composer", func(t Tools) []string { return t.Composer }, args)
}

// Console invokes the configured framework console.
func Console(args ...string) Step {
	return toolStep("console", func(t Tools) []string { return t.Console }, args)
}

// Git invokes the configured version-control tool.
func Git(args ...string) Step {
	return toolStep("git", func(t Tools) []string { return t.Git }, args)
}

// Compose invokes "<engine> compose" for the project stack.
func Compose(args ...string) Step {
	return engineStep("compose", args, ContainerEngine.Compose)
}

// Engine invokes an engine-level command such as "system prune".
func Engine(args ...string) Step {
	return engineStep("engine", args, ContainerEngine.Command)
}

func toolStep(tool string, pick func(Tools) []string, args []string) Step {
	return &runStep{
		label: tool + " " + strings.Join(args, " "),
		build: func(ctx context.Context, x *Execution) (process.Command, error) {
			words, err := expandArgs(x, args)
			if err != nil {
				return process.Command{}, err
			}
			line := pick(x.Tools())
			if len(line) == 0 {
				return process.Command{}, fmt.Errorf("no %s command configured", tool)
			}
			return process.NewCommand(line, words...), nil
		},
	}
}

func engineStep(label string, args []string, build func(ContainerEngine, ...string) process.Command) Step {
	return &runStep{
		label: label + " " + strings.Join(args, " "),
		build: func(ctx context.Context, x *Execution) (process.Command, error) {
			words, err := expandArgs(x, args)
			if err != nil {
				return process.Command{}, err
			}
			engine, err := x.Engine(ctx)
			if err != nil {
				return process.Command{}, err
			}
			return build(engine, words...), nil
		},
	}
}

// expandArgs expands each argument as a single word template.
func expandArgs(x *Execution, args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.Contains(arg, "$") {
			out = append(out, arg)
			continue
		}
		word, err := process.ExpandWord(arg, x.Lookup)
		if err != nil {
			return nil, err
		}
		out = append(out, word)
	}
	return out, nil
}

func (s *runStep) Run(ctx context.Context, x *Execution) error {
	cmd, err := s.build(ctx, x)
	if err != nil {
		return err
	}
	x.Logger().Debug("running command", "task", x.Task.ID(), "command", cmd.String())
	return x.Exec(ctx, cmd)
}

func (s *runStep) String() string { return "run " + s.label }

// Title renders a banner.
func Title(text string) Step { return &outputStep{kind: OutputTitle, text: text} }

// Section renders a section heading.
func Section(text string) Step { return &outputStep{kind: OutputSection, text: text} }

// Success renders a success message.
func Success(text string) Step { return &outputStep{kind: OutputSuccess, text: text} }

// Warning renders a warning.
func Warning(text string) Step { return &outputStep{kind: OutputWarning, text: text} }

// Info renders an informational message.
func Info(text string) Step { return &outputStep{kind: OutputInfo, text: text} }

// Note renders a muted note.
func Note(text string) Step { return &outputStep{kind: OutputNote, text: text} }

func (s *outputStep) Run(_ context.Context, x *Execution) error {
	Emit(x.Out(), s.kind, x.Text(s.text))
	return nil
}

func (s *outputStep) String() string { return "output " + s.text }

// Emit sends text to the Reporter method matching kind.
func Emit(out Reporter, kind OutputKind, text string) {
	switch kind {
	case OutputTitle:
		out.Title(text)
	case OutputSection:
		out.Section(text)
	case OutputSuccess:
		out.Success(text)
	case OutputWarning:
		out.Warning(text)
	case OutputNote:
		out.Note(text)
	default:
		out.Info(text)
	}
}

// LoadEnv loads the configured env file into the execution. A missing file
// aborts the task with an *envfile.NotFoundError.
func LoadEnv() Step { return loadEnvStep{} }

func (loadEnvStep) Run(_ context.Context, x *Execution) error {
	_, err := x.LoadEnv()
	return err
}

func (loadEnvStep) String() string { return "load env" }

// Do runs fn as a step.
func Do(label string, fn func(ctx context.Context, x *Execution) error) Step {
	return &doStep{label: label, fn: fn}
}

func (s *doStep) Run(ctx context.Context, x *Execution) error { return s.fn(ctx, x) }

func (s *doStep) String() string { return s.label }
