// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"context"
	"fmt"

	"github.com/stackrun/stackrun/internal/task"
)

func projectTasks() []*task.Task {
	return []*task.Task{
		{
			Namespace:   "project",
			Name:        "init",
			Description: "Create a new application from the skeleton and add the stack",
			Aliases:     []string{"init"},
			Steps: []task.Step{
				task.Title("Create a new project"),
				task.Exists("has_composer", "composer.json"),
				task.If(task.Answer("has_composer"),
					task.Warning("composer.json already exists, the project is already initialized"),
				).Else(
					task.Ask("version", "Skeleton version", "$"+SettingSkeletonVersion),
					task.Composer("create-project", "$"+SettingSkeletonPackage+":$version", SkeletonTmpDir,
						"--prefer-dist", "--no-progress", "--no-interaction"),
					moveSkeleton(),
					task.Confirm("webapp", "Install the webapp pack (twig, forms, security, mailer)?", true),
					task.If(task.Answer("webapp"),
						task.Composer("require", "webapp", "--no-interaction"),
					),
					WriteStack(),
					task.Confirm("git", "Initialize a git repository?", true),
					task.If(task.Answer("git"), gitInitSteps()...),
					task.Success("Project $project_name is ready, run stackrun env:init then stackrun docker:start"),
				),
			},
		},
		{
			Namespace:   "project",
			Name:        "install",
			Description: "Install composer dependencies",
			Aliases:     []string{"install"},
			Steps: []task.Step{
				task.Composer("install"),
				task.Success("Dependencies installed"),
			},
		},
		{
			Namespace:   "project",
			Name:        "require",
			Description: "Add a composer package",
			Aliases:     []string{"require"},
			Steps: []task.Step{
				task.Ask("package", "Package name", ""),
				task.If(task.Not(task.Filled("package")),
					task.Warning("No package given, nothing to install"),
				).Else(
					task.Confirm("dev", "Development dependency only?", false),
					task.If(task.Answer("dev"),
						task.Composer("require", "--dev", "$package"),
					).Else(
						task.Composer("require", "$package"),
					),
					task.Success("$package installed"),
				),
			},
		},
		{
			Namespace:   "project",
			Name:        "stack",
			Description: "Write compose.yml, .env.docker.dist and README.md when missing",
			Aliases:     []string{"stack"},
			Steps: []task.Step{
				task.Section("Container stack"),
				WriteStack(),
				task.Success("Stack files are in place"),
			},
		},
	}
}

// moveSkeleton moves the create-project output into the project root and
// removes the temporary directory.
func moveSkeleton() task.Step {
	return task.Do("move skeleton into place", func(_ context.Context, x *task.Execution) error {
		if err := x.FS().MoveContents(SkeletonTmpDir, "."); err != nil {
			return fmt.Errorf("move skeleton: %w", err)
		}
		if err := x.FS().RemoveAll(SkeletonTmpDir); err != nil {
			return fmt.Errorf("remove %s: %w", SkeletonTmpDir, err)
		}
		x.Logger().Debug("skeleton moved into place", "from", SkeletonTmpDir)
		return nil
	})
}
