// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"path"
	"regexp"
	"strings"
	"text/template"

	"github.com/stackrun/stackrun/internal/envfile"
	"github.com/stackrun/stackrun/internal/task"
)

const (
	// ComposeFile is the stack definition written by project:stack.
	ComposeFile = "compose.yml"
	// EnvDistFile is the committed template env:init copies from.
	EnvDistFile = ".env.docker.dist"
	// ReadmeFile documents the stack for the project's developers.
	ReadmeFile = "README.md"
	// NginxConfFile is the web server vhost mounted by the compose file.
	NginxConfFile = "docker/nginx.conf"

	phpImage = "php:8.3-fpm"
)

var (
	//go:embed templates/*.tmpl
	templateFS embed.FS

	templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

	nonProjectChars = regexp.MustCompile(`[^a-z0-9_-]+`)
)

type (
	// StackData feeds the stack templates.
	StackData struct {
		ProjectName string
		PHPImage    string
		EnvFile     string
		Services    []Service
	}

	// Service is a published stack service listed in the README.
	Service struct {
		Label string
		Port  string
	}

	// StackFile is one generated file.
	StackFile struct {
		Path    string
		Content []byte
	}
)

// EnvDefaults returns the .env.docker.dist content for project.
func EnvDefaults(project string) *envfile.File {
	f := envfile.New()
	f.Set("COMPOSE_PROJECT_NAME", project)
	f.Set("APP_PORT", "8080")
	f.Set("PHPMYADMIN_PORT", "8081")
	f.Set("ADMINER_PORT", "8082")
	f.Set("MAILPIT_HTTP_PORT", "8025")
	f.Set("DATABASE_NAME", "app")
	f.Set("DATABASE_USER", "app")
	f.Set("DATABASE_PASSWORD", "app")
	f.Set("DATABASE_ROOT_PASSWORD", "root")
	return f
}

// ProjectName normalizes name into a compose project name. Compose accepts
// lowercase letters, digits, dashes and underscores, starting with a letter
// or digit.
func ProjectName(name string) string {
	n := nonProjectChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	n = strings.TrimLeft(n, "-_")
	if n == "" {
		return "app"
	}
	return n
}

// RenderStack returns the generated stack files for project, in write order.
func RenderStack(project, envFile string) ([]StackFile, error) {
	project = ProjectName(project)
	env := EnvDefaults(project)

	data := StackData{ProjectName: project, PHPImage: phpImage, EnvFile: envFile}
	for _, p := range task.StatusPorts {
		if port := env.Lookup(p.Key); port != "" {
			data.Services = append(data.Services, Service{Label: p.Label, Port: port})
		}
	}

	files := []StackFile{{Path: EnvDistFile, Content: envfile.Marshal(env)}}
	for _, t := range []struct{ path, tmpl string }{
		{ComposeFile, "compose.yml.tmpl"},
		{NginxConfFile, "nginx.conf.tmpl"},
		{ReadmeFile, "README.md.tmpl"},
	} {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, t.tmpl, data); err != nil {
			return nil, fmt.Errorf("render %s: %w", t.path, err)
		}
		files = append(files, StackFile{Path: t.path, Content: buf.Bytes()})
	}
	return files, nil
}

// WriteStack asks for the project name and writes every stack file that does
// not exist yet. Existing files are kept untouched.
func WriteStack() task.Step {
	return task.Do("write stack files", func(ctx context.Context, x *task.Execution) error {
		defaultName := x.Setting(SettingProjectName)
		if defaultName == "" {
			defaultName = path.Base(strings.ReplaceAll(x.WorkDir(), `\`, "/"))
		}
		name, err := x.Prompter().Ask(ctx, "Project name", ProjectName(defaultName))
		if err != nil {
			return err
		}
		if strings.TrimSpace(name) == "" {
			name = defaultName
		}
		x.Set("project_name", ProjectName(name))

		files, err := RenderStack(name, x.EnvFilePath())
		if err != nil {
			return err
		}
		for _, f := range files {
			if x.FS().Exists(f.Path) {
				x.Out().Note(f.Path + " already exists, kept")
				continue
			}
			if err := x.FS().Write(f.Path, f.Content); err != nil {
				return fmt.Errorf("write %s: %w", f.Path, err)
			}
			x.Out().Info("created " + f.Path)
		}
		return nil
	})
}
