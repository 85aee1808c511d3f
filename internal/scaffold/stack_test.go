// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"strings"
	"testing"

	"github.com/stackrun/stackrun/internal/envfile"
)

func TestProjectName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"shop", "shop"},
		{"My Shop", "my-shop"},
		{"  api_v2 ", "api_v2"},
		{"--weird..name", "weird-name"},
		{"", "app"},
		{".", "app"},
	}
	for _, tt := range tests {
		if got := ProjectName(tt.in); got != tt.want {
			t.Errorf("ProjectName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderStack(t *testing.T) {
	t.Parallel()

	files, err := RenderStack("Shop", ".env.local")
	if err != nil {
		t.Fatalf("RenderStack() error = %v", err)
	}

	byPath := make(map[string]string, len(files))
	for _, f := range files {
		byPath[f.Path] = string(f.Content)
	}

	compose := byPath[ComposeFile]
	for _, want := range []string{"name: shop\n", `"${APP_PORT}:80"`, `"${ADMINER_PORT}:8080"`, "image: php:8.3-fpm"} {
		if !strings.Contains(compose, want) {
			t.Errorf("%s does not contain %q:\n%s", ComposeFile, want, compose)
		}
	}

	env := envfile.Parse([]byte(byPath[EnvDistFile]))
	for _, p := range []string{"APP_PORT", "PHPMYADMIN_PORT", "ADMINER_PORT", "MAILPIT_HTTP_PORT"} {
		if env.Lookup(p) == "" {
			t.Errorf("%s has no %s", EnvDistFile, p)
		}
	}
	if got := env.Lookup("COMPOSE_PROJECT_NAME"); got != "shop" {
		t.Errorf("COMPOSE_PROJECT_NAME = %q, want shop", got)
	}

	readme := byPath[ReadmeFile]
	for _, want := range []string{"# shop\n", "| Application | http://localhost:8080 |", "`.env.local`"} {
		if !strings.Contains(readme, want) {
			t.Errorf("%s does not contain %q:\n%s", ReadmeFile, want, readme)
		}
	}

	if !strings.Contains(byPath[NginxConfFile], "fastcgi_pass php:9000;") {
		t.Errorf("%s missing the php upstream", NginxConfFile)
	}
}
