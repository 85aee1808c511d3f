// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"

	"github.com/stackrun/stackrun/internal/task"
	"github.com/stackrun/stackrun/internal/testutil/tasktest"
	"github.com/stackrun/stackrun/pkg/types"
)

const composePrefix = "docker compose --env-file .env.docker -f compose.yml "

func run(t *testing.T, h *tasktest.Harness, id string) (types.ExitCode, error) {
	t.Helper()
	return runIn(t, h, t.TempDir(), id)
}

func runIn(t *testing.T, h *tasktest.Harness, workDir, id string) (types.ExitCode, error) {
	t.Helper()
	reg := Registry()
	deps := h.Deps()
	deps.Settings = DefaultSettings()
	deps.WorkDir = workDir
	code, err := task.NewDispatcher(reg, deps).Invoke(context.Background(), id, nil)
	if h.Prompter.Remaining() != 0 {
		t.Errorf("%d scripted answers left unused", h.Prompter.Remaining())
	}
	return code, err
}

func assertCommands(t *testing.T, h *tasktest.Harness, want ...string) {
	t.Helper()
	if got := h.Runner.Lines(); !slices.Equal(got, want) {
		t.Errorf("commands =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func assertOK(t *testing.T, code types.ExitCode, err error) {
	t.Helper()
	if err != nil || code != types.ExitSuccess {
		t.Fatalf("Invoke() = %d, %v, want 0, nil", code, err)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := Registry()

	want := []string{"console", "db", "docker", "env", "git", "make", "project"}
	if got := reg.Namespaces(); !slices.Equal(got, want) {
		t.Errorf("Namespaces() = %v, want %v", got, want)
	}

	aliases := map[string]string{
		"init":      "project:init",
		"install":   "project:install",
		"up":        "docker:start",
		"start":     "docker:start",
		"env":       "env:show",
		"cc":        "console:cache-clear",
		"migrate":   "db:migrate",
		"migration": "db:migration",
	}
	for alias, id := range aliases {
		tk, ok := reg.Lookup(alias)
		if !ok || tk.ID() != id {
			t.Errorf("Lookup(%q) = %v, want %s", alias, tk, id)
		}
	}

	for _, tk := range reg.Tasks() {
		if tk.Description == "" {
			t.Errorf("%s has no description", tk.ID())
		}
	}
}

func TestProjectInit(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.WriteFile("tmp/composer.json", `{"name":"symfony/skeleton"}`)
	h.WriteFile("tmp/config/bundles.php", "<?php return [];")
	h.Prompter.
		QueueAnswer("").
		QueueConfirm(true).
		QueueAnswer("My Shop").
		QueueConfirm(false)

	code, err := run(t, h, "project:init")
	assertOK(t, code, err)

	assertCommands(t, h,
		"composer create-project symfony/skeleton:7.3.* tmp --prefer-dist --no-progress --no-interaction",
		"composer require webapp --no-interaction",
	)
	for _, p := range []string{"composer.json", "config/bundles.php", ComposeFile, EnvDistFile, ReadmeFile, NginxConfFile} {
		if !h.FS.Exists(p) {
			t.Errorf("%s missing after project:init", p)
		}
	}
	if h.FS.Exists("tmp") {
		t.Error("tmp/ still exists after project:init")
	}

	dist, err := h.FS.ReadFile(EnvDistFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dist), "COMPOSE_PROJECT_NAME=my-shop\n") {
		t.Errorf("%s =\n%s\nwant COMPOSE_PROJECT_NAME=my-shop", EnvDistFile, dist)
	}

	success := h.Reporter.Kind("success")
	if len(success) != 1 || !strings.HasPrefix(success[0], "Project my-shop is ready") {
		t.Errorf("success = %v", success)
	}
}

func TestProjectInitAlreadyInitialized(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.WriteFile("composer.json", "{}")

	code, err := run(t, h, "init")
	assertOK(t, code, err)
	assertCommands(t, h)
	if got := h.Reporter.Kind("warning"); len(got) != 1 {
		t.Errorf("warnings = %v, want one", got)
	}
}

func TestProjectInitCreateProjectFails(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.Runner.Fail("composer create-project", 2)
	h.Prompter.QueueAnswer("6.4.*")

	code, err := run(t, h, "project:init")
	if code != 2 || err == nil {
		t.Fatalf("Invoke() = %d, %v, want 2 and an error", code, err)
	}
	assertCommands(t, h,
		"composer create-project symfony/skeleton:6.4.* tmp --prefer-dist --no-progress --no-interaction",
	)
}

func boolPtr(b bool) *bool { return &b }

func TestProjectRequire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pkg     string
		dev     *bool
		want    []string
		warning bool
	}{
		{name: "runtime", pkg: "symfony/uid", dev: boolPtr(false), want: []string{"composer require symfony/uid"}},
		{name: "dev", pkg: "phpstan/phpstan", dev: boolPtr(true), want: []string{"composer require --dev phpstan/phpstan"}},
		{name: "empty", pkg: "", warning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := tasktest.New(t)
			h.Prompter.QueueAnswer(tt.pkg)
			if tt.dev != nil {
				h.Prompter.QueueConfirm(*tt.dev)
			}

			code, err := run(t, h, "require")
			assertOK(t, code, err)
			assertCommands(t, h, tt.want...)
			if got := len(h.Reporter.Kind("warning")) > 0; got != tt.warning {
				t.Errorf("warning emitted = %v, want %v", got, tt.warning)
			}
		})
	}
}

func TestProjectStackKeepsExistingFiles(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.WriteFile(ComposeFile, "services: {}\n")
	h.Prompter.QueueAnswer("")

	code, err := runIn(t, h, "/home/dev/Blog App", "stack")
	assertOK(t, code, err)

	data, err := h.FS.ReadFile(ComposeFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "services: {}\n" {
		t.Errorf("%s was overwritten:\n%s", ComposeFile, data)
	}
	if got := h.Reporter.Kind("note"); !slices.Contains(got, ComposeFile+" already exists, kept") {
		t.Errorf("notes = %v", got)
	}
	readme, err := h.FS.ReadFile(ReadmeFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(readme), "# blog-app\n") {
		t.Errorf("README does not start with the derived project name:\n%s", readme)
	}
}

func TestEnvInit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		kind    string
		created bool
	}{
		{name: "exists", files: map[string]string{".env.docker": "APP_PORT=1\n"}, kind: "info"},
		{name: "from dist", files: map[string]string{EnvDistFile: "APP_PORT=8080\n"}, kind: "success", created: true},
		{name: "no dist", kind: "warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := tasktest.New(t)
			for p, content := range tt.files {
				h.WriteFile(p, content)
			}

			code, err := run(t, h, "env:init")
			assertOK(t, code, err)
			if got := h.Reporter.Kind(tt.kind); len(got) != 1 {
				t.Errorf("%s lines = %v, want one; all output %v", tt.kind, got, h.Reporter.Lines)
			}
			if tt.created {
				data, err := h.FS.ReadFile(".env.docker")
				if err != nil || string(data) != "APP_PORT=8080\n" {
					t.Errorf(".env.docker = %q, %v", data, err)
				}
			}
		})
	}
}

func TestEnvShow(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.WriteFile(".env.docker", "APP_PORT=8080\nDATABASE_NAME=app\nADMINER_PORT=\n")

	code, err := run(t, h, "env")
	assertOK(t, code, err)

	want := []string{"APP_PORT=8080", "DATABASE_NAME=app", "ADMINER_PORT="}
	if got := h.Reporter.Kind("listing"); !slices.Equal(got, want) {
		t.Errorf("listing = %v, want %v", got, want)
	}
	if got := h.Reporter.Kind("success"); !slices.Equal(got, []string{"Application is available at http://localhost:8080"}) {
		t.Errorf("status = %v", got)
	}
	if got := h.Reporter.Kind("section"); len(got) == 0 || got[0] != ".env.docker" {
		t.Errorf("sections = %v, want the env file first", got)
	}
}

func TestEnvShowMissingFile(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	code, err := run(t, h, "env:show")
	if code != types.ExitFailure || err == nil {
		t.Fatalf("Invoke() = %d, %v, want 1 and an error", code, err)
	}
}

func TestDockerStart(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.WriteFile(".env.docker", "APP_PORT=8080\nPHPMYADMIN_PORT=8081\nMAILPIT_HTTP_PORT=8025\n")

	code, err := run(t, h, "up")
	assertOK(t, code, err)
	assertCommands(t, h, composePrefix+"up -d --build")

	want := []string{
		"Application is available at http://localhost:8080",
		"phpMyAdmin is available at http://localhost:8081",
		"Mailpit is available at http://localhost:8025",
	}
	if got := h.Reporter.Kind("success"); !slices.Equal(got, want) {
		t.Errorf("success = %v, want %v", got, want)
	}
}

func TestDockerStartFailureSkipsStatus(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.Runner.Fail("docker compose", 18)

	code, err := run(t, h, "docker:start")
	if code != 18 || err == nil {
		t.Fatalf("Invoke() = %d, %v, want 18 and an error", code, err)
	}
	if got := h.Reporter.Kind("success"); len(got) != 0 {
		t.Errorf("success = %v, want none", got)
	}
}

func TestConfirmedTasks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id      string
		confirm bool
		want    []string
		warning bool
	}{
		{id: "docker:down", confirm: true, want: []string{composePrefix + "down --volumes --remove-orphans"}},
		{id: "docker:down", confirm: false, want: []string{composePrefix + "down"}},
		{id: "docker:prune", confirm: true, want: []string{"docker system prune --force"}},
		{id: "docker:prune", confirm: false, warning: true},
		{id: "db:drop", confirm: true, want: []string{"php bin/console doctrine:database:drop --force --if-exists"}},
		{id: "db:drop", confirm: false, warning: true},
		{id: "db:fixtures", confirm: true, want: []string{"php bin/console doctrine:fixtures:load --no-interaction"}},
		{id: "db:fixtures", confirm: false, warning: true},
		{id: "db:reset", confirm: false, warning: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			h := tasktest.New(t)
			h.Prompter.QueueConfirm(tt.confirm)

			code, err := run(t, h, tt.id)
			assertOK(t, code, err)
			assertCommands(t, h, tt.want...)
			if got := len(h.Reporter.Kind("warning")) > 0; got != tt.warning {
				t.Errorf("warning emitted = %v, want %v", got, tt.warning)
			}
		})
	}
}

func TestSimpleTasks(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"project:install":     "composer install",
		"docker:stop":         composePrefix + "stop",
		"docker:ps":           composePrefix + "ps",
		"db:create":           "php bin/console doctrine:database:create --if-not-exists",
		"db:migration":        "php bin/console make:migration",
		"console:cache-clear": "php bin/console cache:clear",
		"make:entity":         "php bin/console make:entity",
		"make:controller":     "php bin/console make:controller",
		"make:form":           "php bin/console make:form",
		"make:crud":           "php bin/console make:crud",
	}

	for id, want := range tests {
		t.Run(id, func(t *testing.T) {
			t.Parallel()

			h := tasktest.New(t)
			code, err := run(t, h, id)
			assertOK(t, code, err)
			assertCommands(t, h, want)
		})
	}
}

func TestDockerRestart(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.WriteFile(".env.docker", "APP_PORT=9000\n")

	code, err := run(t, h, "restart")
	assertOK(t, code, err)
	assertCommands(t, h, composePrefix+"restart")
	if got := h.Reporter.Kind("success"); !slices.Equal(got, []string{"Application is available at http://localhost:9000"}) {
		t.Errorf("success = %v", got)
	}
}

func TestDBMigrate(t *testing.T) {
	t.Parallel()

	t.Run("without migrations", func(t *testing.T) {
		t.Parallel()

		h := tasktest.New(t)
		code, err := run(t, h, "migrate")
		assertOK(t, code, err)
		assertCommands(t, h)
		if got := h.Reporter.Kind("warning"); len(got) != 1 {
			t.Errorf("warnings = %v", got)
		}
	})

	t.Run("with migrations", func(t *testing.T) {
		t.Parallel()

		h := tasktest.New(t)
		h.WriteFile("migrations/Version20250101000000.php", "<?php")
		code, err := run(t, h, "migrate")
		assertOK(t, code, err)
		assertCommands(t, h, "php bin/console doctrine:migrations:migrate --no-interaction")
	})
}

func TestDBReset(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.WriteFile("migrations/Version20250101000000.php", "<?php")
	h.Prompter.QueueConfirm(true).QueueConfirm(true)

	code, err := run(t, h, "db:reset")
	assertOK(t, code, err)
	assertCommands(t, h,
		"php bin/console doctrine:database:drop --force --if-exists",
		"php bin/console doctrine:database:create --if-not-exists",
		"php bin/console doctrine:migrations:migrate --no-interaction",
		"php bin/console doctrine:fixtures:load --no-interaction",
	)
}

func TestDBResetStopsOnFailure(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.Runner.Fail("php bin/console doctrine:database:create", 1)
	h.Prompter.QueueConfirm(true)

	code, err := run(t, h, "db:reset")
	if code != 1 || err == nil {
		t.Fatalf("Invoke() = %d, %v, want 1 and an error", code, err)
	}
	assertCommands(t, h,
		"php bin/console doctrine:database:drop --force --if-exists",
		"php bin/console doctrine:database:create --if-not-exists",
	)
}

func TestGitInit(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.Prompter.
		QueueAnswer("").
		QueueConfirm(true).
		QueueAnswer("git@example.com:team/app.git").
		QueueConfirm(true)

	code, err := run(t, h, "git:init")
	assertOK(t, code, err)
	assertCommands(t, h,
		"git init",
		"git add .",
		"git commit -m Initial commit",
		"git remote add origin git@example.com:team/app.git",
		"git push -u origin HEAD",
	)
}

func TestGitInitWithoutRemote(t *testing.T) {
	t.Parallel()

	h := tasktest.New(t)
	h.Prompter.QueueAnswer("First").QueueConfirm(false)

	code, err := run(t, h, "git:init")
	assertOK(t, code, err)
	assertCommands(t, h, "git init", "git add .", "git commit -m First")
}

func TestGitInitExistingRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit() error = %v", err)
	}

	h := tasktest.New(t)
	code, err := runIn(t, h, dir, "git:init")
	assertOK(t, code, err)
	assertCommands(t, h)
	if got := h.Reporter.Kind("warning"); len(got) != 1 {
		t.Errorf("warnings = %v", got)
	}
	if got := h.Reporter.Kind("note"); !slices.Equal(got, []string{"The repository has no commits yet"}) {
		t.Errorf("notes = %v", got)
	}
}
