// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"os"
	"strings"
)

// ReadFileFS is the read capability Load needs. *os.File-backed and in-memory
// filesystems (see internal/workspace) both satisfy it.
type ReadFileFS interface {
	ReadFile(name string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// Load reads and parses the env file at path from the host filesystem.
func Load(path string) (*File, error) {
	return LoadFrom(osFS{}, path)
}

// LoadFrom reads and parses the env file at path through fsys.
// Any read failure is reported as a *NotFoundError; no partial mapping is returned.
func LoadFrom(fsys ReadFileFS, path string) (*File, error) {
	content, err := fsys.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}

	f := Parse(content)
	f.Path = path
	return f, nil
}

// Parse parses env file content.
// Supported format:
//   - Lines starting with # are comments
//   - Empty lines are ignored
//   - KEY=value (split on the first '=', both sides trimmed)
//   - KEY="value" and KEY='value' (surrounding quotes stripped, no escape processing)
//   - KEY= (empty value, classified as Null)
//
// Lines without '=' or with an empty key are skipped.
func Parse(content []byte) *File {
	f := New()

	for line := range strings.SplitSeq(string(content), "\n") {
		// Trim trailing carriage return (for Windows line endings)
		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		f.Set(key, unquote(strings.TrimSpace(value)))
	}

	return f
}

// unquote strips one pair of matching surrounding quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}
