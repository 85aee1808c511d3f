// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

type (
	// Task is a named, namespaced unit of work. Tasks hold no state between
	// invocations; everything a run produces lives in its Execution.
	Task struct {
		Namespace   string
		Name        string
		Description string
		Aliases     []string
		Steps       []Step
	}

	// Step is one element of a task body.
	Step interface {
		// Run executes the step. A non-nil error aborts the task.
		Run(ctx context.Context, x *Execution) error
		// String describes the step for debug logging.
		String() string
	}

	// Registry maps task identifiers ("namespace:name") and aliases to tasks.
	// It is built once by NewRegistry and never mutated afterwards.
	Registry struct {
		tasks []*Task
		index map[string]*Task
	}
)

// ID returns the canonical "namespace:name" identifier.
func (t *Task) ID() string {
	return t.Namespace + ":" + t.Name
}

// Identifiers returns the canonical identifier followed by the aliases.
func (t *Task) Identifiers() []string {
	return append([]string{t.ID()}, t.Aliases...)
}

// NewRegistry validates tasks and indexes them by identifier and alias.
func NewRegistry(tasks ...*Task) (*Registry, error) {
	r := &Registry{index: make(map[string]*Task, len(tasks)*2)}

	for _, t := range tasks {
		if err := validateTask(t); err != nil {
			return nil, err
		}
		for _, id := range t.Identifiers() {
			if existing, ok := r.index[id]; ok {
				return nil, &DuplicateError{Identifier: id, Existing: existing.ID(), Duplicate: t.ID()}
			}
			r.index[id] = t
		}
		r.tasks = append(r.tasks, t)
	}

	slices.SortFunc(r.tasks, func(a, b *Task) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return r, nil
}

// MustRegistry is NewRegistry for statically declared task tables.
func MustRegistry(tasks ...*Task) *Registry {
	r, err := NewRegistry(tasks...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the task registered under identifier (canonical id or alias).
func (r *Registry) Lookup(identifier string) (*Task, bool) {
	t, ok := r.index[identifier]
	return t, ok
}

// Resolve is Lookup returning a *NotFoundError with suggestions on a miss.
func (r *Registry) Resolve(identifier string) (*Task, error) {
	if t, ok := r.Lookup(identifier); ok {
		return t, nil
	}
	return nil, &NotFoundError{Identifier: identifier, Suggestions: r.suggest(identifier)}
}

// Tasks returns all tasks sorted by identifier.
func (r *Registry) Tasks() []*Task {
	return slices.Clone(r.tasks)
}

// Namespaces returns the distinct namespaces in sorted order.
func (r *Registry) Namespaces() []string {
	var out []string
	for _, t := range r.tasks {
		if !slices.Contains(out, t.Namespace) {
			out = append(out, t.Namespace)
		}
	}
	slices.Sort(out)
	return out
}

// InNamespace returns the tasks of one namespace sorted by name.
func (r *Registry) InNamespace(namespace string) []*Task {
	var out []*Task
	for _, t := range r.tasks {
		if t.Namespace == namespace {
			out = append(out, t)
		}
	}
	return out
}

// suggest returns identifiers in the same namespace as identifier, or those
// containing it as a substring.
func (r *Registry) suggest(identifier string) []string {
	ns, _, hasNS := strings.Cut(identifier, ":")
	var out []string
	for _, t := range r.tasks {
		switch {
		case hasNS && t.Namespace == ns:
			out = append(out, t.ID())
		case !hasNS && identifier != "" && strings.Contains(t.ID(), identifier):
			out = append(out, t.ID())
		}
	}
	return out
}

func validateTask(t *Task) error {
	if t == nil {
		return fmt.Errorf("%w: nil task", ErrInvalidTask)
	}
	if !validIdentPart(t.Namespace) || !validIdentPart(t.Name) {
		return fmt.Errorf("%w: %q: namespace and name must be non-empty and contain no ':' or whitespace", ErrInvalidTask, t.ID())
	}
	for _, alias := range t.Aliases {
		if alias == "" || strings.ContainsFunc(alias, isSpace) {
			return fmt.Errorf("%w: %s: alias %q must be non-empty and contain no whitespace", ErrInvalidTask, t.ID(), alias)
		}
	}
	return nil
}

func validIdentPart(s string) bool {
	return s != "" && !strings.Contains(s, ":") && !strings.ContainsFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
