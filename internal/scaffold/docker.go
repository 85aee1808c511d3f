// SPDX-License-Identifier: MPL-2.0

package scaffold

import "github.com/stackrun/stackrun/internal/task"

func dockerTasks() []*task.Task {
	return []*task.Task{
		{
			Namespace:   "docker",
			Name:        "start",
			Description: "Build and start the stack",
			Aliases:     []string{"start", "up"},
			Steps: []task.Step{
				task.Compose("up", "-d", "--build"),
				task.LoadEnv(),
				task.StatusURLs(),
			},
		},
		{
			Namespace:   "docker",
			Name:        "stop",
			Description: "Stop the stack",
			Aliases:     []string{"stop"},
			Steps: []task.Step{
				task.Compose("stop"),
				task.Success("Stack stopped"),
			},
		},
		{
			Namespace:   "docker",
			Name:        "restart",
			Description: "Restart every service",
			Aliases:     []string{"restart"},
			Steps: []task.Step{
				task.Compose("restart"),
				task.StatusURLs(),
			},
		},
		{
			Namespace:   "docker",
			Name:        "down",
			Description: "Remove the stack containers",
			Aliases:     []string{"down"},
			Steps: []task.Step{
				task.Confirm("volumes", "Also remove volumes (the database is lost)?", false),
				task.If(task.Answer("volumes"),
					task.Compose("down", "--volumes", "--remove-orphans"),
				).Else(
					task.Compose("down"),
				),
				task.Success("Stack removed"),
			},
		},
		{
			Namespace:   "docker",
			Name:        "prune",
			Description: "Remove unused containers, networks and images",
			Aliases:     []string{"prune"},
			Steps: []task.Step{
				task.Confirm("prune", "Remove all unused engine data?", false),
				task.If(task.Answer("prune"),
					task.Engine("system", "prune", "--force"),
					task.Success("Unused engine data removed"),
				).Else(
					task.Warning("Prune cancelled"),
				),
			},
		},
		{
			Namespace:   "docker",
			Name:        "ps",
			Description: "List the stack containers",
			Aliases:     []string{"ps"},
			Steps: []task.Step{
				task.Compose("ps"),
			},
		},
	}
}
