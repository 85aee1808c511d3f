// SPDX-License-Identifier: MPL-2.0

package scaffold

import "github.com/stackrun/stackrun/internal/task"

var (
	dropDatabase   = task.Console("doctrine:database:drop", "--force", "--if-exists")
	createDatabase = task.Console("doctrine:database:create", "--if-not-exists")
	runMigrations  = task.Console("doctrine:migrations:migrate", "--no-interaction")
	loadFixtures   = task.Console("doctrine:fixtures:load", "--no-interaction")
)

func databaseTasks() []*task.Task {
	return []*task.Task{
		{
			Namespace:   "db",
			Name:        "create",
			Description: "Create the database",
			Steps: []task.Step{
				createDatabase,
				task.Success("Database created"),
			},
		},
		{
			Namespace:   "db",
			Name:        "drop",
			Description: "Drop the database",
			Steps: []task.Step{
				task.Confirm("drop", "Drop the database? All data is lost", false),
				task.If(task.Answer("drop"),
					dropDatabase,
					task.Success("Database dropped"),
				).Else(
					task.Warning("Database kept"),
				),
			},
		},
		{
			Namespace:   "db",
			Name:        "migration",
			Description: "Generate a migration from the entity changes",
			Aliases:     []string{"migration"},
			Steps: []task.Step{
				task.Console("make:migration"),
			},
		},
		{
			Namespace:   "db",
			Name:        "migrate",
			Description: "Run pending migrations",
			Aliases:     []string{"migrate"},
			Steps: []task.Step{
				task.Exists("has_migrations", MigrationsDir),
				task.If(task.Answer("has_migrations"),
					runMigrations,
					task.Success("Migrations applied"),
				).Else(
					task.Warning("No " + MigrationsDir + "/ directory, run stackrun db:migration first"),
				),
			},
		},
		{
			Namespace:   "db",
			Name:        "fixtures",
			Description: "Load the data fixtures",
			Aliases:     []string{"fixtures"},
			Steps: []task.Step{
				task.Confirm("fixtures", "Loading fixtures purges the database. Continue?", false),
				task.If(task.Answer("fixtures"),
					loadFixtures,
					task.Success("Fixtures loaded"),
				).Else(
					task.Warning("Fixtures not loaded"),
				),
			},
		},
		{
			Namespace:   "db",
			Name:        "reset",
			Description: "Drop, recreate and migrate the database",
			Steps: []task.Step{
				task.Confirm("reset", "Reset the database? All data is lost", false),
				task.If(task.Answer("reset"),
					dropDatabase,
					createDatabase,
					task.Exists("has_migrations", MigrationsDir),
					task.If(task.Answer("has_migrations"), runMigrations),
					task.Confirm("fixtures", "Load the fixtures?", true),
					task.If(task.Answer("fixtures"), loadFixtures),
					task.Success("Database reset"),
				).Else(
					task.Warning("Database kept"),
				),
			},
		},
	}
}
