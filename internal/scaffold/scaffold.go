// SPDX-License-Identifier: MPL-2.0

package scaffold

import "github.com/stackrun/stackrun/internal/task"

// Setting names the catalogue reads from task.Deps.Settings.
const (
	SettingSkeletonPackage = "skeleton_package"
	SettingSkeletonVersion = "skeleton_version"
	SettingProjectName     = "project_name"
	// SettingEnvFile always resolves to the configured env file path.
	SettingEnvFile = "env_file"

	// MigrationsDir is where the framework keeps generated migrations.
	MigrationsDir = "migrations"
	// SkeletonTmpDir receives composer create-project before the move.
	SkeletonTmpDir = "tmp"
)

// DefaultSettings returns the values the catalogue falls back to when the
// configuration does not override them.
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingSkeletonPackage: "symfony/skeleton",
		SettingSkeletonVersion: "7.3.*",
		SettingProjectName:     "",
	}
}

// Tasks returns the full task catalogue.
func Tasks() []*task.Task {
	var all []*task.Task
	for _, group := range [][]*task.Task{
		projectTasks(),
		envTasks(),
		dockerTasks(),
		databaseTasks(),
		consoleTasks(),
		gitTasks(),
	} {
		all = append(all, group...)
	}
	return all
}

// Registry builds a registry over Tasks. It panics if the table declares a
// duplicate identifier.
func Registry() *task.Registry {
	return task.MustRegistry(Tasks()...)
}
