// SPDX-License-Identifier: MPL-2.0

package tasktest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stackrun/stackrun/internal/process"
	"github.com/stackrun/stackrun/internal/task"
	"github.com/stackrun/stackrun/internal/workspace"
	"github.com/stackrun/stackrun/pkg/types"
)

type (
	// Harness bundles the fakes and an in-memory workspace.
	Harness struct {
		t        testing.TB
		Prompter *Prompter
		Runner   *Runner
		Reporter *Reporter
		FS       *workspace.FS
		Engine   *Engine
	}

	// Prompter replays scripted answers in order. Running out of answers fails
	// the test.
	Prompter struct {
		t       testing.TB
		mu      sync.Mutex
		answers []answer
		// Questions records every question asked.
		Questions []string
	}

	answer struct {
		text      string
		confirm   bool
		isConfirm bool
		cancel    bool
	}

	// Runner records commands and returns programmed exit codes. Commands
	// without a programmed code succeed.
	Runner struct {
		mu       sync.Mutex
		rules    []rule
		// Commands records every command run, in order.
		Commands []process.Command
	}

	rule struct {
		prefix string
		code   types.ExitCode
		err    error
	}

	// Reporter records output as "kind: text" lines.
	Reporter struct {
		mu    sync.Mutex
		Lines []string
	}

	// Engine builds docker-style compose commands without probing the host.
	Engine struct {
		Name string
	}
)

// New returns a Harness with empty scripts.
func New(t testing.TB) *Harness {
	t.Helper()
	return &Harness{
		t:        t,
		Prompter: &Prompter{t: t},
		Runner:   &Runner{},
		Reporter: &Reporter{},
		FS:       workspace.NewMem(),
		Engine:   &Engine{Name: "docker"},
	}
}

// Deps wires the fakes into task.Deps with the default tool command lines.
func (h *Harness) Deps() task.Deps {
	return task.Deps{
		Prompter: h.Prompter,
		Runner:   h.Runner,
		FS:       h.FS,
		Out:      h.Reporter,
		Engine: func(context.Context) (task.ContainerEngine, error) {
			return h.Engine, nil
		},
		Tools: task.Tools{
			Composer: []string{"composer"},
			Console:  []string{"php", "bin/console"},
			Git:      []string{"git"},
		},
		EnvFile: ".env.docker",
	}
}

// WriteFile creates a file in the in-memory workspace.
func (h *Harness) WriteFile(path, content string) {
	if err := h.FS.Write(path, []byte(content)); err != nil {
		h.t.Fatalf("write %s: %v", path, err)
	}
}

// QueueAnswer queues a string answer.
func (p *Prompter) QueueAnswer(text string) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers = append(p.answers, answer{text: text})
	return p
}

// QueueConfirm queues a confirmation answer.
func (p *Prompter) QueueConfirm(yes bool) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers = append(p.answers, answer{confirm: yes, isConfirm: true})
	return p
}

// QueueCancel queues a cancelled prompt.
func (p *Prompter) QueueCancel() *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers = append(p.answers, answer{cancel: true})
	return p
}

// Remaining returns the number of unused answers.
func (p *Prompter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers)
}

func (p *Prompter) next(question string, confirm bool) (answer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Questions = append(p.Questions, question)
	if len(p.answers) == 0 {
		p.t.Errorf("unexpected prompt %q", question)
		return answer{}, task.ErrCancelled
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	if a.cancel {
		return a, task.ErrCancelled
	}
	if a.isConfirm != confirm {
		p.t.Errorf("prompt %q: scripted answer has the wrong kind", question)
	}
	return a, nil
}

// Ask implements task.Prompter.
func (p *Prompter) Ask(_ context.Context, question, _ string) (string, error) {
	a, err := p.next(question, false)
	return a.text, err
}

// Confirm implements task.Prompter.
func (p *Prompter) Confirm(_ context.Context, question string, _ bool) (bool, error) {
	a, err := p.next(question, true)
	return a.confirm, err
}

// Fail programs every command whose argv, joined with spaces, starts with
// prefix to exit with code. The first matching rule wins.
func (r *Runner) Fail(prefix string, code types.ExitCode) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{prefix: prefix, code: code})
	return r
}

// FailToStart programs commands starting with prefix to fail before running.
func (r *Runner) FailToStart(prefix string, err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{prefix: prefix, code: types.ExitCommandNotFound, err: err})
	return r
}

// Run implements process.Runner.
func (r *Runner) Run(_ context.Context, cmd process.Command) (types.ExitCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = append(r.Commands, cmd)
	line := strings.Join(cmd.Argv(), " ")
	for _, rl := range r.rules {
		if strings.HasPrefix(line, rl.prefix) {
			return rl.code, rl.err
		}
	}
	return types.ExitSuccess, nil
}

// Lines returns the recorded commands joined with spaces.
func (r *Runner) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		out = append(out, strings.Join(c.Argv(), " "))
	}
	return out
}

func (r *Reporter) add(kind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lines = append(r.Lines, kind+": "+text)
}

// Title implements task.Reporter.
func (r *Reporter) Title(text string) { r.add("title", text) }

// Section implements task.Reporter.
func (r *Reporter) Section(text string) { r.add("section", text) }

// Success implements task.Reporter.
func (r *Reporter) Success(text string) { r.add("success", text) }

// Warning implements task.Reporter.
func (r *Reporter) Warning(text string) { r.add("warning", text) }

// Info implements task.Reporter.
func (r *Reporter) Info(text string) { r.add("info", text) }

// Note implements task.Reporter.
func (r *Reporter) Note(text string) { r.add("note", text) }

// Listing implements task.Reporter.
func (r *Reporter) Listing(pairs [][2]string) {
	for _, p := range pairs {
		r.add("listing", fmt.Sprintf("%s=%s", p[0], p[1]))
	}
}

// Kind returns the recorded lines of one kind, without the prefix.
func (r *Reporter) Kind(kind string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, l := range r.Lines {
		if text, ok := strings.CutPrefix(l, kind+": "); ok {
			out = append(out, text)
		}
	}
	return out
}

// Compose implements task.ContainerEngine.
func (e *Engine) Compose(args ...string) process.Command {
	all := append([]string{"compose", "--env-file", ".env.docker", "-f", "compose.yml"}, args...)
	return process.Command{Name: e.Name, Args: all}
}

// Command implements task.ContainerEngine.
func (e *Engine) Command(args ...string) process.Command {
	return process.Command{Name: e.Name, Args: append([]string(nil), args...)}
}
