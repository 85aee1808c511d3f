// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/stackrun/stackrun/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `stackrun config` command tree.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage stackrun configuration",
		GroupID: coreGroupID,
		Long: `Manage stackrun configuration.

Configuration is read from ` + config.FileName + ` in the project directory, or
from the file given with --config. ` + config.EnvPrefix + `_* environment variables
override file values (for example ` + config.EnvPrefix + `_ENV_FILE).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return silenceExitError(cmd, showConfig(cmd.Context(), cmd.OutOrStdout(), app, opts))
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.loadConfig(cmd.Context(), opts)
			if err != nil {
				return silenceExitError(cmd, reportConfigError(app.stderr, err, opts.verbose))
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create " + config.FileName + " with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.OutOrStdout(), opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd.OutOrStdout(), opts)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, w io.Writer, app *App, opts *rootOptions) error {
	cfg, workDir, err := app.loadConfig(ctx, opts)
	if err != nil {
		return reportConfigError(app.stderr, err, opts.verbose)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, found := config.Locate(config.LoadOptions{ConfigFilePath: opts.configPath, WorkDir: workDir})
	if found {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	projectName := cfg.ProjectName
	if projectName == "" {
		projectName = SubtitleStyle.Render("(derived by compose)")
	} else {
		projectName = valueStyle.Render(projectName)
	}

	for _, kv := range []struct{ key, value string }{
		{"env_file", valueStyle.Render(cfg.EnvFile)},
		{"compose_file", valueStyle.Render(cfg.ComposeFile)},
		{"project_name", projectName},
		{"container_engine", valueStyle.Render(cfg.ContainerEngine)},
		{"composer", valueStyle.Render(cfg.Composer)},
		{"console", valueStyle.Render(cfg.Console)},
		{"git", valueStyle.Render(cfg.Git)},
	} {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render(kv.key), kv.value)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("skeleton"))
	fmt.Fprintf(w, "  package: %s\n", valueStyle.Render(cfg.Skeleton.Package))
	fmt.Fprintf(w, "  version: %s\n", valueStyle.Render(cfg.Skeleton.Version))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(w, "  theme: %s\n", valueStyle.Render(cfg.UI.Theme))
	fmt.Fprintf(w, "  accessible: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Accessible)))

	return nil
}

func configPath(opts *rootOptions) (string, bool, error) {
	workDir, err := resolveWorkDir(opts.workDir)
	if err != nil {
		return "", false, err
	}
	path, found := config.Locate(config.LoadOptions{ConfigFilePath: opts.configPath, WorkDir: workDir})
	return path, found, nil
}

func initConfig(w io.Writer, opts *rootOptions) error {
	path, _, err := configPath(opts)
	if err != nil {
		return err
	}
	written, err := config.WriteDefault(path)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !written {
		fmt.Fprintf(w, "%s %s already exists, left unchanged\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(w io.Writer, opts *rootOptions) error {
	path, found, err := configPath(opts)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintf(w, "Config file: %s\n", path)
	} else {
		fmt.Fprintf(w, "Config file: %s %s\n", path, SubtitleStyle.Render("(not created)"))
	}
	return nil
}
