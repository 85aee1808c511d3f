// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/stackrun/stackrun/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "stackrun",
		Short: "Project tasks for a containerized PHP stack",
		Long: TitleStyle.Render("stackrun") + SubtitleStyle.Render(" - Project tasks for a containerized PHP stack") + `

stackrun bootstraps a framework application, writes its container stack and
wraps the everyday composer, console, compose and git commands as named tasks.

` + SubtitleStyle.Render("Quick Start:") + `
  1. stackrun project:init     Create the application and its stack
  2. stackrun env:init         Create the env file from the template
  3. stackrun docker:start     Start the stack and print the service URLs

` + SubtitleStyle.Render("Examples:") + `
  stackrun list                List every task
  stackrun up                  Alias of docker:start
  stackrun -n db:reset         Print the commands db:reset would run
  stackrun config show         Show the effective configuration`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&opts.configPath, "config", "", "config file (default is ./"+config.FileName+")")
	flags.StringVarP(&opts.workDir, "workdir", "C", "", "run as if started in this directory")
	flags.StringVar(&opts.envFile, "env-file", "", "env file to load (overrides env_file)")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "print commands instead of running them")

	rootCmd.AddGroup(&cobra.Group{ID: coreGroupID, Title: TitleStyle.Render("Commands:")})
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newRunCommand(app, opts))
	rootCmd.AddCommand(newConfigCommand(app, opts))
	addTaskCommands(rootCmd, app, opts)

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the CLI and runs it. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
