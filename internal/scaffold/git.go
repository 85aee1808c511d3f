// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"context"
	"errors"

	"github.com/stackrun/stackrun/internal/task"
	"github.com/stackrun/stackrun/internal/vcs"
)

func gitTasks() []*task.Task {
	return []*task.Task{
		{
			Namespace:   "git",
			Name:        "init",
			Description: "Initialize a repository, commit and optionally push",
			Steps:       gitInitSteps(),
		},
	}
}

func gitInitSteps() []task.Step {
	return []task.Step{
		detectRepository("is_repo"),
		task.If(task.Answer("is_repo"),
			task.Warning("This directory is already a git repository"),
		).Else(
			task.Git("init"),
			task.Git("add", "."),
			task.Ask("message", "Commit message", "Initial commit"),
			task.Git("commit", "-m", "$message"),
			task.Confirm("remote", "Add a remote repository?", false),
			task.If(task.Answer("remote"),
				task.Ask("remote_url", "Remote URL", ""),
				task.If(task.Filled("remote_url"),
					task.Git("remote", "add", "origin", "$remote_url"),
					task.Confirm("push", "Push to origin now?", true),
					task.If(task.Answer("push"),
						task.Git("push", "-u", "origin", "HEAD"),
					),
				).Else(
					task.Warning("No remote URL given, skipping"),
				),
			),
			task.Success("Git repository initialized"),
		),
	}
}

// detectRepository records under key whether the project directory is
// already inside a work tree, and notes its state when it is.
func detectRepository(key string) task.Step {
	return task.Do("detect repository", func(_ context.Context, x *task.Execution) error {
		repo, err := vcs.Open(x.WorkDir())
		if errors.Is(err, vcs.ErrNotRepository) {
			x.Set(key, false)
			return nil
		}
		if err != nil {
			return err
		}
		x.Set(key, true)

		if !repo.HasCommits() {
			x.Out().Note("The repository has no commits yet")
			return nil
		}
		clean, err := repo.IsClean()
		if err != nil {
			x.Logger().Debug("could not read work tree status", "error", err)
			return nil
		}
		if !clean {
			x.Out().Note("The work tree has uncommitted changes")
		}
		if ok, err := repo.HasRemote("origin"); err == nil && !ok {
			x.Out().Note("No origin remote is configured")
		}
		return nil
	})
}
