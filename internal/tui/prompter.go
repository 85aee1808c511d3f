// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stackrun/stackrun/internal/task"

	"github.com/charmbracelet/huh"
)

type (
	// FormRunner runs a built form to completion.
	FormRunner func(ctx context.Context, form *huh.Form) error

	// Prompter asks task questions through single-field huh forms.
	Prompter struct {
		cfg Config
		run FormRunner
	}

	// PrompterOption configures a Prompter.
	PrompterOption func(*Prompter)
)

var _ task.Prompter = (*Prompter)(nil)

// WithFormRunner replaces form execution, for tests.
func WithFormRunner(fn FormRunner) PrompterOption {
	return func(p *Prompter) {
		p.run = fn
	}
}

// NewPrompter creates a Prompter.
func NewPrompter(cfg Config, opts ...PrompterOption) *Prompter {
	p := &Prompter{
		cfg: cfg,
		run: func(ctx context.Context, form *huh.Form) error {
			return form.RunWithContext(ctx)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask prompts for a line of text. An empty answer yields defaultValue.
func (p *Prompter) Ask(ctx context.Context, question, defaultValue string) (string, error) {
	var answer string
	input := huh.NewInput().
		Title(question).
		Value(&answer)
	if defaultValue != "" {
		input = input.Placeholder(defaultValue)
	}

	if err := p.run(ctx, p.form(input)); err != nil {
		return "", p.mapError(question, err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, question string, defaultValue bool) (bool, error) {
	answer := defaultValue
	confirm := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&answer)

	if err := p.run(ctx, p.form(confirm)); err != nil {
		return false, p.mapError(question, err)
	}
	return answer, nil
}

func (p *Prompter) form(field huh.Field) *huh.Form {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huhTheme(p.cfg.Theme)).
		WithAccessible(p.cfg.Accessible).
		WithShowHelp(!p.cfg.Accessible)
	if p.cfg.Input != nil {
		form = form.WithInput(p.cfg.Input)
	}
	if p.cfg.Output != nil {
		form = form.WithOutput(p.cfg.Output)
	}
	return form
}

func (p *Prompter) mapError(question string, err error) error {
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%q: %w", question, task.ErrCancelled)
	}
	return fmt.Errorf("prompt %q: %w", question, err)
}
