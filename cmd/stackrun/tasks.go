// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/stackrun/stackrun/internal/task"

	"github.com/spf13/cobra"
)

// coreGroupID groups the built-in commands in help output.
const coreGroupID = "core"

// addTaskCommands registers one command per task, grouped by namespace.
func addTaskCommands(root *cobra.Command, app *App, opts *rootOptions) {
	for _, ns := range app.Registry.Namespaces() {
		root.AddGroup(&cobra.Group{ID: ns, Title: TitleStyle.Render(ns + " tasks:")})
		for _, t := range app.Registry.InNamespace(ns) {
			root.AddCommand(newTaskCommand(app, opts, t))
		}
	}
}

func newTaskCommand(app *App, opts *rootOptions, t *task.Task) *cobra.Command {
	return &cobra.Command{
		Use:     t.ID(),
		Aliases: t.Aliases,
		Short:   t.Description,
		GroupID: t.Namespace,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return silenceExitError(cmd, runTask(cmd.Context(), app, opts, t.ID(), args))
		},
	}
}

// newRunCommand dispatches a task by identifier or alias.
func newRunCommand(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "run <task>",
		Short:   "Run a task by identifier or alias",
		GroupID: coreGroupID,
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var ids []string
			for _, t := range app.Registry.Tasks() {
				ids = append(ids, t.ID()+"\t"+t.Description)
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return silenceExitError(cmd, runTask(cmd.Context(), app, opts, args[0], nil))
		},
	}
}

// runTask builds a session and invokes one task.
func runTask(ctx context.Context, app *App, opts *rootOptions, identifier string, args []string) error {
	sess, err := app.newSession(ctx, opts)
	if err != nil {
		return reportConfigError(app.stderr, err, opts.verbose)
	}

	code, err := task.NewDispatcher(app.Registry, sess.deps).Invoke(ctx, identifier, args)
	if err != nil {
		sess.logger.Debug("task failed", "task", identifier, "code", code, "error", err)
		return reportTaskError(app.stderr, err, code, sess.verbose)
	}
	return nil
}

// silenceExitError stops cobra from printing errors that were already
// rendered.
func silenceExitError(cmd *cobra.Command, err error) error {
	if _, ok := err.(*ExitError); ok {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
	}
	return err
}
