// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every task grouped by namespace",
		GroupID: coreGroupID,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listTasks(cmd.OutOrStdout(), app)
			return nil
		},
	}
}

func listTasks(w io.Writer, app *App) {
	width := 0
	for _, t := range app.Registry.Tasks() {
		width = max(width, len(t.ID()))
	}

	fmt.Fprintln(w, TitleStyle.Render("Available tasks"))
	for _, ns := range app.Registry.Namespaces() {
		fmt.Fprintf(w, "\n%s\n", SubtitleStyle.Render(ns))
		for _, t := range app.Registry.InNamespace(ns) {
			line := fmt.Sprintf("  %s  %s", CmdStyle.Render(t.ID()+strings.Repeat(" ", width-len(t.ID()))), t.Description)
			if len(t.Aliases) > 0 {
				line += " " + VerboseStyle.Render("("+strings.Join(t.Aliases, ", ")+")")
			}
			fmt.Fprintln(w, line)
		}
	}
}
