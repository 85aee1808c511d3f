// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stackrun/stackrun/internal/issue"
	"github.com/stackrun/stackrun/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, FileName, content)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{WorkDir: t.TempDir()})
	if err != nil {
		t.Fatalf("load error = %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want none", path)
	}
	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFromWorkDir(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
env_file:         ".env.local"
container_engine: "podman"
console:          "docker compose exec php bin/console"
skeleton: version: "6.4.*"
ui: theme: "dracula"
`)
	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{WorkDir: dir})
	if err != nil {
		t.Fatalf("load error = %v", err)
	}
	if path != filepath.Join(dir, FileName) {
		t.Errorf("path = %q", path)
	}
	if cfg.EnvFile != ".env.local" || cfg.ContainerEngine != "podman" || cfg.UI.Theme != "dracula" {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Skeleton.Version != "6.4.*" || cfg.Skeleton.Package != "symfony/skeleton" {
		t.Errorf("skeleton = %+v, want merged with defaults", cfg.Skeleton)
	}
	if cfg.Composer != "composer" {
		t.Errorf("Composer = %q, want default", cfg.Composer)
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown engine", `container_engine: "lxc"`, "container_engine"},
		{"unknown field", `envfile: ".env"`, "envfile"},
		{"wrong type", `ui: verbose: "yes"`, "ui.verbose"},
		{"bad package", `skeleton: package: "Symfony Skeleton"`, "skeleton.package"},
		{"syntax", `env_file: `, FileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeConfig(t, tt.content)
			_, _, err := loadWithOptions(context.Background(), LoadOptions{WorkDir: dir})
			if err == nil {
				t.Fatal("load succeeded")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) || !ae.HasSuggestions() {
				t.Errorf("error %v is not an actionable error with suggestions", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue")})
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STACKRUN_ENV_FILE", ".env.ci")
	t.Setenv("STACKRUN_UI_VERBOSE", "true")
	t.Setenv("STACKRUN_SKELETON_VERSION", "7.2.*")

	dir := writeConfig(t, `env_file: ".env.local"`)
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{WorkDir: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EnvFile != ".env.ci" {
		t.Errorf("EnvFile = %q, want env override", cfg.EnvFile)
	}
	if !cfg.UI.Verbose || cfg.Skeleton.Version != "7.2.*" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoadEnvOverrideValidated(t *testing.T) {
	defer testutil.MustSetenv(t, "STACKRUN_CONTAINER_ENGINE", "lxc")()

	_, err := NewProvider().Load(context.Background(), LoadOptions{WorkDir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "container_engine") {
		t.Errorf("Load() error = %v, want container_engine validation error", err)
	}
}

func TestLoadCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUERoundTrip(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.ProjectName = "shop"
	want.UI.Verbose = true

	dir := writeConfig(t, GenerateCUE(want))
	got, _, err := loadWithOptions(context.Background(), LoadOptions{WorkDir: dir})
	if err != nil {
		t.Fatalf("load generated config: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	written, err := WriteDefault(path)
	if err != nil || !written {
		t.Fatalf("WriteDefault() = %v, %v", written, err)
	}
	if err := os.WriteFile(path, []byte("// mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	written, err = WriteDefault(path)
	if err != nil || written {
		t.Errorf("second WriteDefault() = %v, %v, want no write", written, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "// mine\n" {
		t.Error("existing file overwritten")
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if path, ok := Locate(LoadOptions{WorkDir: dir}); ok || path != filepath.Join(dir, FileName) {
		t.Errorf("Locate() = %q, %v", path, ok)
	}
	if path, ok := Locate(LoadOptions{ConfigFilePath: "custom.cue"}); ok || path != "custom.cue" {
		t.Errorf("Locate(custom) = %q, %v", path, ok)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"ui", "theme"}, "ui.theme"},
		{[]string{"includes", "0", "path"}, "includes[0].path"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFormatCUEErrorPlain(t *testing.T) {
	t.Parallel()

	if formatCUEError(nil, "x.cue") != nil {
		t.Error("formatCUEError(nil) != nil")
	}
	err := formatCUEError(errors.New("boom"), "x.cue")
	if err == nil || !strings.Contains(err.Error(), "x.cue: boom") {
		t.Errorf("formatCUEError() = %v", err)
	}
}
