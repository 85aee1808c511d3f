// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	EnvFileNotFoundId Id = iota + 1
	TaskNotFoundId
	ProcessFailedId
	ToolNotFoundId
	ContainerEngineNotFoundId
	ConfigLoadFailedId
)

type (
	// Id identifies an issue guide.
	Id int

	// MarkdownMsg is the Markdown body of a guide.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a Markdown guide explaining a failure and how to recover.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		extLinks []HttpLink
	}
)

var (
	render = glamour.Render

	envFileNotFoundIssue = &Issue{
		id: EnvFileNotFoundId,
		mdMsg: `
# Environment file not found!

The task reads the stack configuration from the env file, which does not exist yet.

## Things you can try:
- Create it from the distributed template:
~~~
$ stackrun env:init
~~~

- Or point stackrun at another file:
~~~
$ stackrun --env-file .env.local env:show
~~~`,
	}

	taskNotFoundIssue = &Issue{
		id: TaskNotFoundId,
		mdMsg: `
# Task not found!

No task or alias matches the name you typed.

## Things you can try:
- List every task with its aliases:
~~~
$ stackrun list
~~~

- Use the full ` + "`namespace:name`" + ` form, for example ` + "`docker:start`" + `.`,
	}

	processFailedIssue = &Issue{
		id: ProcessFailedId,
		mdMsg: `
# A command failed!

The task stopped at the first command that exited with a non-zero status.
Nothing that ran before it was rolled back.

## Things you can try:
- Read the command output above for the cause
- Re-run with ` + "`--verbose`" + ` to see every step
- Use ` + "`--dry-run`" + ` to print the commands without running them`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Tool not installed!

A command used by this task could not be found in your PATH.

## Things you can try:
- Install the tool (composer, php, git, docker or podman)
- Configure its command line in ` + "`stackrun.cue`" + `:
~~~cue
composer: "php composer.phar"
console:  "docker compose exec php bin/console"
~~~`,
		extLinks: []HttpLink{"https://getcomposer.org/download/"},
	}

	containerEngineNotFoundIssue = &Issue{
		id: ContainerEngineNotFoundId,
		mdMsg: `
# Container engine not available!

Neither docker compose nor podman compose answered.

## Things you can try:
- Start the Docker daemon or the podman machine
- Check that the compose plugin is installed:
~~~
$ docker compose version
~~~

- Select the engine explicitly in ` + "`stackrun.cue`" + `:
~~~cue
container_engine: "podman"
~~~`,
		extLinks: []HttpLink{"https://docs.docker.com/compose/install/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

` + "`stackrun.cue`" + ` could not be read or does not match the schema.

## Things you can try:
- Print the effective configuration:
~~~
$ stackrun config show
~~~

- Regenerate a file with the defaults:
~~~
$ stackrun config dump > stackrun.cue
~~~`,
	}

	issues = map[Id]*Issue{
		envFileNotFoundIssue.Id():         envFileNotFoundIssue,
		taskNotFoundIssue.Id():            taskNotFoundIssue,
		processFailedIssue.Id():           processFailedIssue,
		toolNotFoundIssue.Id():            toolNotFoundIssue,
		containerEngineNotFoundIssue.Id(): containerEngineNotFoundIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
	}
)

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// ExtLinks returns external links that may help.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guide with the given glamour style ("dark", "light",
// "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.extLinks {
			md.WriteString("- " + string(link) + "\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns every issue ordered by Id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the issue with the given Id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
