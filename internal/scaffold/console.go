// SPDX-License-Identifier: MPL-2.0

package scaffold

import "github.com/stackrun/stackrun/internal/task"

// makers are the code generators exposed as make:<name>.
var makers = []struct{ name, description string }{
	{"entity", "Create or update a Doctrine entity"},
	{"controller", "Create a controller"},
	{"form", "Create a form type"},
	{"crud", "Create CRUD for an entity"},
}

func consoleTasks() []*task.Task {
	tasks := []*task.Task{
		{
			Namespace:   "console",
			Name:        "cache-clear",
			Description: "Clear the framework cache",
			Aliases:     []string{"cc"},
			Steps: []task.Step{
				task.Console("cache:clear"),
				task.Success("Cache cleared"),
			},
		},
	}
	for _, m := range makers {
		tasks = append(tasks, &task.Task{
			Namespace:   "make",
			Name:        m.name,
			Description: m.description,
			Steps:       []task.Step{task.Console("make:" + m.name)},
		})
	}
	return tasks
}
