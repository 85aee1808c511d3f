// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config is the effective stackrun configuration.
	Config struct {
		// EnvFile is the stack env file, shared with compose via --env-file.
		EnvFile string `mapstructure:"env_file"`
		// ComposeFile is the compose file passed with -f.
		ComposeFile string `mapstructure:"compose_file"`
		// ProjectName is the compose project name; empty lets compose derive it.
		ProjectName string `mapstructure:"project_name"`
		// ContainerEngine is "docker" or "podman".
		ContainerEngine string `mapstructure:"container_engine"`
		// Composer is the dependency manager command line.
		Composer string `mapstructure:"composer"`
		// Console is the framework console command line.
		Console string `mapstructure:"console"`
		// Git is the version-control command line.
		Git string `mapstructure:"git"`
		// Skeleton configures project:init.
		Skeleton SkeletonConfig `mapstructure:"skeleton"`
		// UI configures output and prompts.
		UI UIConfig `mapstructure:"ui"`
	}

	// SkeletonConfig selects the package project:init creates the app from.
	SkeletonConfig struct {
		Package string `mapstructure:"package"`
		Version string `mapstructure:"version"`
	}

	// UIConfig configures output and prompts.
	UIConfig struct {
		Verbose    bool   `mapstructure:"verbose"`
		Theme      string `mapstructure:"theme"`
		Accessible bool   `mapstructure:"accessible"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		EnvFile:         ".env.docker",
		ComposeFile:     "compose.yml",
		ContainerEngine: "docker",
		Composer:        "composer",
		Console:         "php bin/console",
		Git:             "git",
		Skeleton: SkeletonConfig{
			Package: "symfony/skeleton",
			Version: "7.3.*",
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}

// defaults flattens DefaultConfig into viper keys.
func defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"env_file":         d.EnvFile,
		"compose_file":     d.ComposeFile,
		"project_name":     d.ProjectName,
		"container_engine": d.ContainerEngine,
		"composer":         d.Composer,
		"console":          d.Console,
		"git":              d.Git,
		"skeleton.package": d.Skeleton.Package,
		"skeleton.version": d.Skeleton.Version,
		"ui.verbose":       d.UI.Verbose,
		"ui.theme":         d.UI.Theme,
		"ui.accessible":    d.UI.Accessible,
	}
}
