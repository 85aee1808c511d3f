// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"context"
	"fmt"

	"github.com/stackrun/stackrun/internal/task"
)

func envTasks() []*task.Task {
	return []*task.Task{
		{
			Namespace:   "env",
			Name:        "init",
			Description: "Create the env file from " + EnvDistFile,
			Steps: []task.Step{
				task.Exists("has_env", "$"+SettingEnvFile),
				task.If(task.Answer("has_env"),
					task.Info("$"+SettingEnvFile+" already exists"),
				).Else(
					task.Exists("has_dist", EnvDistFile),
					task.If(task.Answer("has_dist"),
						copyDist(),
						task.Success("$"+SettingEnvFile+" created from "+EnvDistFile+", review the ports before starting"),
					).Else(
						task.Warning(EnvDistFile+" not found, run stackrun project:stack first"),
					),
				),
			},
		},
		{
			Namespace:   "env",
			Name:        "show",
			Description: "Print the env file and the service URLs",
			Aliases:     []string{"env"},
			Steps: []task.Step{
				task.LoadEnv(),
				task.Section("$" + SettingEnvFile),
				listEnv(),
				task.Section("Services"),
				task.StatusURLs(),
			},
		},
	}
}

func copyDist() task.Step {
	return task.Do("copy "+EnvDistFile, func(_ context.Context, x *task.Execution) error {
		if err := x.FS().Copy(EnvDistFile, x.EnvFilePath()); err != nil {
			return fmt.Errorf("copy %s: %w", EnvDistFile, err)
		}
		return nil
	})
}

func listEnv() task.Step {
	return task.Do("list env", func(_ context.Context, x *task.Execution) error {
		env := x.Env()
		if env == nil || env.Len() == 0 {
			x.Out().Note("The env file is empty")
			return nil
		}
		pairs := make([][2]string, 0, env.Len())
		for key, value := range env.All() {
			pairs = append(pairs, [2]string{key, value.String()})
		}
		x.Out().Listing(pairs)
		return nil
	})
}
