// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/stackrun/stackrun/internal/config"
	"github.com/stackrun/stackrun/internal/container"
	"github.com/stackrun/stackrun/internal/issue"
	"github.com/stackrun/stackrun/internal/process"
	"github.com/stackrun/stackrun/internal/scaffold"
	"github.com/stackrun/stackrun/internal/task"
	"github.com/stackrun/stackrun/internal/tui"
	"github.com/stackrun/stackrun/internal/workspace"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: command handlers build a session from it and
	// hand the session's task.Deps to the dispatcher.
	App struct {
		Config   config.Provider
		Registry *task.Registry
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
		prompter task.Prompter
		runner   process.Runner
		engine   task.EngineResolver
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   config.Provider
		Registry *task.Registry
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
		// Prompter replaces the huh prompter.
		Prompter task.Prompter
		// Runner replaces the exec and dry-run runners.
		Runner process.Runner
		// Engine replaces container engine detection.
		Engine task.EngineResolver
	}

	// rootOptions holds the global flag values.
	rootOptions struct {
		verbose    bool
		configPath string
		workDir    string
		envFile    string
		dryRun     bool
	}

	// session is the per-invocation state derived from flags and configuration.
	session struct {
		cfg     *config.Config
		workDir string
		verbose bool
		logger  *log.Logger
		deps    task.Deps
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Registry == nil {
		deps.Registry = scaffold.Registry()
	}

	return &App{
		Config:   deps.Config,
		Registry: deps.Registry,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		prompter: deps.Prompter,
		runner:   deps.Runner,
		engine:   deps.Engine,
	}, nil
}

// resolveWorkDir returns the absolute project directory for the -C flag.
func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("working directory %s is not a directory", abs)
	}
	return abs, nil
}

// loadConfig loads the configuration for the current flags and applies the
// flag overrides that shadow configuration keys.
func (a *App) loadConfig(ctx context.Context, opts *rootOptions) (*config.Config, string, error) {
	workDir, err := resolveWorkDir(opts.workDir)
	if err != nil {
		return nil, "", err
	}
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath, WorkDir: workDir})
	if err != nil {
		return nil, workDir, err
	}
	if opts.envFile != "" {
		cfg.EnvFile = opts.envFile
	}
	return cfg, workDir, nil
}

// newLogger builds the diagnostic logger. Debug output is enabled by
// --verbose or ui.verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "stackrun"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// newSession loads configuration and wires the task dependencies.
func (a *App) newSession(ctx context.Context, opts *rootOptions) (*session, error) {
	cfg, workDir, err := a.loadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	verbose := opts.verbose || cfg.UI.Verbose
	logger := newLogger(a.stderr, verbose)

	tools, err := splitTools(cfg)
	if err != nil {
		return nil, issue.WrapWithOperation(err, "read tool command lines")
	}

	prompter, err := a.newPrompter(cfg)
	if err != nil {
		return nil, issue.WrapWithOperation(err, "configure prompts")
	}

	runner := a.runner
	if runner == nil {
		if opts.dryRun {
			runner = process.NewDryRunner(a.stdout, func(s string) string { return CmdStyle.Render(s) })
		} else {
			runner = process.NewExecRunner(
				process.WithStdio(a.stdin, a.stdout, a.stderr),
				process.WithLogger(logger),
			)
		}
	}

	fsys := workspace.New(workDir)
	if opts.dryRun {
		fsys = workspace.NewDryRun(workDir, a.stdout, func(s string) string { return CmdStyle.Render(s) })
	}

	engine := a.engine
	if engine == nil {
		engine = engineResolver(cfg, logger, opts.dryRun)
	}

	settings := scaffold.DefaultSettings()
	settings[scaffold.SettingSkeletonPackage] = cfg.Skeleton.Package
	settings[scaffold.SettingSkeletonVersion] = cfg.Skeleton.Version
	settings[scaffold.SettingProjectName] = cfg.ProjectName

	logger.Debug("session ready", "workdir", workDir, "env_file", cfg.EnvFile, "engine", cfg.ContainerEngine, "dry_run", opts.dryRun)

	return &session{
		cfg:     cfg,
		workDir: workDir,
		verbose: verbose,
		logger:  logger,
		deps: task.Deps{
			Prompter: prompter,
			Runner:   runner,
			FS:       fsys,
			Out:      tui.NewReporter(a.stdout),
			Engine:   engine,
			Logger:   logger,
			Tools:    tools,
			EnvFile:  cfg.EnvFile,
			WorkDir:  workDir,
			Settings: settings,
		},
	}, nil
}

func (a *App) newPrompter(cfg *config.Config) (task.Prompter, error) {
	if a.prompter != nil {
		return a.prompter, nil
	}
	theme, err := tui.ParseTheme(cfg.UI.Theme)
	if err != nil {
		return nil, err
	}
	tcfg := tui.DefaultConfig()
	tcfg.Theme = theme
	tcfg.Input = a.stdin
	tcfg.Accessible = tcfg.Accessible || cfg.UI.Accessible
	if tcfg.Accessible {
		tcfg.Output = a.stderr
	} else {
		tcfg.Output = a.stdout
	}
	return tui.NewPrompter(tcfg), nil
}

// splitTools splits the configured tool command lines into words.
func splitTools(cfg *config.Config) (task.Tools, error) {
	var tools task.Tools
	for _, t := range []struct {
		key  string
		line string
		dst  *[]string
	}{
		{"composer", cfg.Composer, &tools.Composer},
		{"console", cfg.Console, &tools.Console},
		{"git", cfg.Git, &tools.Git},
	} {
		words, err := process.Split(t.line)
		if err != nil {
			return task.Tools{}, fmt.Errorf("config %s: %w", t.key, err)
		}
		*t.dst = words
	}
	return tools, nil
}

// engineResolver detects the container engine on first use. Dry runs skip
// detection and use the configured engine as is.
func engineResolver(cfg *config.Config, logger *log.Logger, dryRun bool) task.EngineResolver {
	var (
		once   sync.Once
		engine task.ContainerEngine
		err    error
	)
	opts := []container.CLIEngineOption{
		container.WithComposeFile(cfg.ComposeFile),
		container.WithEnvFile(cfg.EnvFile),
		container.WithProjectName(cfg.ProjectName),
	}
	return func(ctx context.Context) (task.ContainerEngine, error) {
		once.Do(func() {
			preferred, perr := container.ParseEngineType(cfg.ContainerEngine)
			if perr != nil {
				err = perr
				return
			}
			if dryRun {
				if preferred == container.EngineTypePodman {
					engine = container.NewPodmanEngine(opts...)
				} else {
					engine = container.NewDockerEngine(opts...)
				}
				return
			}
			e, nerr := container.NewEngine(ctx, preferred, opts...)
			if nerr != nil {
				err = nerr
				return
			}
			if v, verr := e.Version(ctx); verr == nil {
				logger.Debug("container engine", "name", e.Name(), "compose", v)
			}
			engine = e
		})
		return engine, err
	}
}
