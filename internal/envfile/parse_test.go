// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParse_BasicKeyValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantKeys []string
		expected map[string]string
	}{
		{
			name:     "simple key value",
			content:  "FOO=bar",
			wantKeys: []string{"FOO"},
			expected: map[string]string{"FOO": "bar"},
		},
		{
			name:     "file order preserved",
			content:  "ZED=1\nALPHA=2\nMID=3",
			wantKeys: []string{"ZED", "ALPHA", "MID"},
			expected: map[string]string{"ZED": "1", "ALPHA": "2", "MID": "3"},
		},
		{
			name:     "value with equals sign",
			content:  "URL=https://example.com?foo=bar",
			wantKeys: []string{"URL"},
			expected: map[string]string{"URL": "https://example.com?foo=bar"},
		},
		{
			name:     "whitespace around key and value",
			content:  "  FOO  =  bar baz  ",
			wantKeys: []string{"FOO"},
			expected: map[string]string{"FOO": "bar baz"},
		},
		{
			name:     "windows line endings",
			content:  "FOO=bar\r\nBAZ=qux\r\n",
			wantKeys: []string{"FOO", "BAZ"},
			expected: map[string]string{"FOO": "bar", "BAZ": "qux"},
		},
		{
			name:     "last write wins and keeps first position",
			content:  "A=1\nB=2\nA=3",
			wantKeys: []string{"A", "B"},
			expected: map[string]string{"A": "3", "B": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := Parse([]byte(tt.content))

			if got := f.Keys(); !slices.Equal(got, tt.wantKeys) {
				t.Errorf("Keys() = %v, want %v", got, tt.wantKeys)
			}
			for k, v := range tt.expected {
				if got := f.Lookup(k); got != v {
					t.Errorf("expected %s=%q, got %s=%q", k, v, k, got)
				}
			}
		})
	}
}

func TestParse_CommentsAndBlankLines(t *testing.T) {
	t.Parallel()

	content := "# stack ports\n\nAPP_PORT=8080\n   # indented comment\n\nDB_NAME=app\n"
	f := Parse([]byte(content))

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (keys: %v)", f.Len(), f.Keys())
	}
	if f.Lookup("APP_PORT") != "8080" || f.Lookup("DB_NAME") != "app" {
		t.Errorf("unexpected mapping: %v", f.Map())
	}
}

func TestParse_QuotedValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "double quoted", content: `FOO="hello world"`, want: "hello world"},
		{name: "single quoted", content: `FOO='hello world'`, want: "hello world"},
		{name: "escapes are kept literally", content: `FOO="a\nb"`, want: `a\nb`},
		{name: "mismatched quotes kept", content: `FOO="hello'`, want: `"hello'`},
		{name: "lone quote kept", content: `FOO="`, want: `"`},
		{name: "empty quotes", content: `FOO=""`, want: ""},
		{name: "dollar not interpolated", content: `FOO="mysql://$DB_USER@db/$DB_NAME"`, want: "mysql://$DB_USER@db/$DB_NAME"},
		{name: "hash inside value kept", content: "FOO=bar # not a comment", want: "bar # not a comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := Parse([]byte(tt.content))
			if got := f.Lookup("FOO"); got != tt.want {
				t.Errorf("FOO = %q, want %q", got, tt.want)
			}
		})
	}
}

// Lines without '=' are skipped rather than rejected. This is a tolerance that
// can hide typos in the env file, so it is pinned down here explicitly.
func TestParse_MalformedLinesSkipped(t *testing.T) {
	t.Parallel()

	content := "APP_PORT=8080\nTHIS LINE IS BROKEN\n=novalue\nMAILPIT_HTTP_PORT=8025\nexport\n"
	f := Parse([]byte(content))

	want := []string{"APP_PORT", "MAILPIT_HTTP_PORT"}
	if got := f.Keys(); !slices.Equal(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if f.Lookup("MAILPIT_HTTP_PORT") != "8025" {
		t.Errorf("MAILPIT_HTTP_PORT = %q, want 8025", f.Lookup("MAILPIT_HTTP_PORT"))
	}
}

func TestParse_ValueKinds(t *testing.T) {
	t.Parallel()

	content := "PORT=8080\nRATIO=-0.5\nDEBUG=true\nCACHE=false\nEMPTY=\nNAME=app\nHEX=0x10\nINF=Inf\nVERSION=8.3.1\n"
	f := Parse([]byte(content))

	tests := []struct {
		key  string
		want Kind
	}{
		{"PORT", KindNumber},
		{"RATIO", KindNumber},
		{"DEBUG", KindBool},
		{"CACHE", KindBool},
		{"EMPTY", KindNull},
		{"NAME", KindString},
		{"HEX", KindString},
		{"INF", KindString},
		{"VERSION", KindString},
	}

	for _, tt := range tests {
		v, ok := f.Get(tt.key)
		if !ok {
			t.Errorf("%s missing", tt.key)
			continue
		}
		if v.Kind() != tt.want {
			t.Errorf("%s kind = %s, want %s", tt.key, v.Kind(), tt.want)
		}
	}

	if n, ok := mustGet(t, f, "PORT").Number(); !ok || n != 8080 {
		t.Errorf("PORT.Number() = %v, %v", n, ok)
	}
	if b, ok := mustGet(t, f, "DEBUG").Bool(); !ok || !b {
		t.Errorf("DEBUG.Bool() = %v, %v", b, ok)
	}
	if _, ok := mustGet(t, f, "NAME").Bool(); ok {
		t.Error("NAME.Bool() reported a boolean")
	}
	if !mustGet(t, f, "EMPTY").IsNull() {
		t.Error("EMPTY.IsNull() = false")
	}
}

func TestParse_EndToEndScenario(t *testing.T) {
	t.Parallel()

	f := Parse([]byte("APP_PORT=8080\nPHPMYADMIN_PORT=\nMAILPIT_HTTP_PORT=8025"))

	want := map[string]string{"APP_PORT": "8080", "PHPMYADMIN_PORT": "", "MAILPIT_HTTP_PORT": "8025"}
	got := f.Map()
	if len(got) != len(want) {
		t.Fatalf("Map() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if !f.Has("PHPMYADMIN_PORT") {
		t.Error("declared empty key must still be present")
	}
}

func TestLoad_FromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".env.docker")
	if err := os.WriteFile(path, []byte("APP_PORT=8080\nDB_NAME=app\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Path != path {
		t.Errorf("Path = %q, want %q", f.Path, path)
	}
	if f.Lookup("DB_NAME") != "app" {
		t.Errorf("DB_NAME = %q", f.Lookup("DB_NAME"))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.env")
	f, err := Load(path)

	if f != nil {
		t.Errorf("expected no mapping, got %v", f.Map())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected the underlying fs.ErrNotExist to be preserved, got %v", err)
	}

	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nfe.Path != path {
		t.Errorf("NotFoundError.Path = %q, want %q", nfe.Path, path)
	}
}

func mustGet(t *testing.T, f *File, key string) Value {
	t.Helper()
	v, ok := f.Get(key)
	if !ok {
		t.Fatalf("key %s missing", key)
	}
	return v
}
