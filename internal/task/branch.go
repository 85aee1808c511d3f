// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"fmt"
)

type (
	// Condition decides which arm of a Branch runs.
	Condition interface {
		Eval(x *Execution) (bool, error)
		String() string
	}

	// Branch runs Then when its condition holds and Else otherwise. Arms may
	// contain further branches.
	Branch struct {
		cond Condition
		then []Step
		els  []Step
	}

	answerCond string
	filledCond string
	notCond    struct{ c Condition }
)

// If builds a Branch.
func If(cond Condition, then ...Step) *Branch {
	return &Branch{cond: cond, then: then}
}

// Else sets the steps run when the condition does not hold.
func (b *Branch) Else(steps ...Step) *Branch {
	b.els = steps
	return b
}

// Run implements Step.
func (b *Branch) Run(ctx context.Context, x *Execution) error {
	ok, err := b.cond.Eval(x)
	if err != nil {
		return err
	}
	arm := b.els
	if ok {
		arm = b.then
	}
	x.Logger().Debug("branch", "task", x.Task.ID(), "condition", b.cond.String(), "result", ok)
	return runSteps(ctx, x, arm)
}

// String implements Step.
func (b *Branch) String() string { return "if " + b.cond.String() }

// Answer holds when the boolean answer recorded under key (by Confirm or
// Exists) is true.
func Answer(key string) Condition { return answerCond(key) }

func (c answerCond) Eval(x *Execution) (bool, error) {
	v, ok := x.Bool(string(c))
	if !ok {
		return false, fmt.Errorf("%w: %q is not a yes/no answer", ErrNoAnswer, string(c))
	}
	return v, nil
}

func (c answerCond) String() string { return string(c) }

// Filled holds when the string answer under key, or the env file value of the
// same name, is non-empty.
func Filled(key string) Condition { return filledCond(key) }

func (c filledCond) Eval(x *Execution) (bool, error) {
	v, ok := x.Lookup(string(c))
	if !ok {
		return false, nil
	}
	return v != "", nil
}

func (c filledCond) String() string { return "filled(" + string(c) + ")" }

// Not negates c.
func Not(c Condition) Condition { return notCond{c: c} }

func (c notCond) Eval(x *Execution) (bool, error) {
	ok, err := c.c.Eval(x)
	return !ok, err
}

func (c notCond) String() string { return "!" + c.c.String() }
