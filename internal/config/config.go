// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stackrun/stackrun/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "stackrun"
	// FileName is the project configuration file name.
	FileName = "stackrun.cue"
	// EnvPrefix prefixes environment overrides (STACKRUN_ENV_FILE, STACKRUN_UI_VERBOSE, ...).
	EnvPrefix = "STACKRUN"
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

//go:embed stackrun_schema.cue
var configSchema string

// Locate returns the config file that Load would read, and whether it exists.
func Locate(opts LoadOptions) (string, bool) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, fileExists(opts.ConfigFilePath)
	}
	path := filepath.Join(opts.WorkDir, FileName)
	return path, fileExists(path)
}

// loadWithOptions builds the layered configuration and returns it together
// with the file it read ("" when only defaults and environment apply).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("load config canceled: %w", err)
	}

	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, found := Locate(opts)
	switch {
	case opts.ConfigFilePath != "" && !found:
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Use 'stackrun config init' to create a default " + FileName).
			Wrap(fmt.Errorf("%w: %s", ErrConfigNotFound, path)).
			BuildError()
	case !found:
		path = ""
	default:
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestions(
					"Check that the file contains valid CUE syntax",
					"Verify the configuration values match the expected schema",
					"See 'stackrun config dump' for every option with its default",
				).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", issue.WrapWithOperation(err, "decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check the " + EnvPrefix + "_* environment variables").
			Wrap(err).
			BuildError()
	}
	return &cfg, path, nil
}

// Validate checks constraints on values that may come from the environment,
// which the CUE schema never sees.
func (c *Config) Validate() error {
	var errs []error
	switch c.ContainerEngine {
	case "docker", "podman":
	default:
		errs = append(errs, fmt.Errorf("container_engine: %q is not docker or podman", c.ContainerEngine))
	}
	for key, value := range map[string]string{
		"env_file":     c.EnvFile,
		"compose_file": c.ComposeFile,
		"composer":     c.Composer,
		"console":      c.Console,
		"git":          c.Git,
	} {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s: must not be empty", key))
		}
	}
	return errors.Join(errs...)
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := checkFileSize(data, path); err != nil {
		return err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteDefault writes a default config file to path unless one exists.
// It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// stackrun configuration\n")
	sb.WriteString("// Every field is optional; remove a line to fall back to its default.\n\n")

	fmt.Fprintf(&sb, "env_file:         %q\n", cfg.EnvFile)
	fmt.Fprintf(&sb, "compose_file:     %q\n", cfg.ComposeFile)
	if cfg.ProjectName != "" {
		fmt.Fprintf(&sb, "project_name:     %q\n", cfg.ProjectName)
	}
	fmt.Fprintf(&sb, "container_engine: %q\n", cfg.ContainerEngine)

	sb.WriteString("\n// Tool command lines, split with POSIX shell rules.\n")
	fmt.Fprintf(&sb, "composer: %q\n", cfg.Composer)
	fmt.Fprintf(&sb, "console:  %q\n", cfg.Console)
	fmt.Fprintf(&sb, "git:      %q\n", cfg.Git)

	sb.WriteString("\nskeleton: {\n")
	fmt.Fprintf(&sb, "\tpackage: %q\n", cfg.Skeleton.Package)
	fmt.Fprintf(&sb, "\tversion: %q\n", cfg.Skeleton.Version)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose:    %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\ttheme:      %q\n", cfg.UI.Theme)
	fmt.Fprintf(&sb, "\taccessible: %v\n", cfg.UI.Accessible)
	sb.WriteString("}\n")

	return sb.String()
}
