// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// ErrOutsideRoot is returned for paths that escape the project directory.
var ErrOutsideRoot = errors.New("path escapes the project directory")

// FS is the project filesystem. Paths are relative to the project root;
// changes never leave it.
type FS struct {
	fs   afero.Fs
	root string
	// host serves reads above the root (a shared env file, for example).
	// It is nil for in-memory filesystems.
	host afero.Fs
	// trace is set in dry-run mode and receives every change as a command line.
	trace func(line string)
}

// New returns an FS rooted at dir on the host filesystem.
func New(dir string) *FS {
	return &FS{
		fs:   afero.NewBasePathFs(afero.NewOsFs(), dir),
		root: dir,
		host: afero.NewReadOnlyFs(afero.NewOsFs()),
	}
}

// NewDryRun returns an FS rooted at dir that reads the host files but keeps
// every change in a memory layer. Each change is printed to w as a command
// line decorated by format; moves and removals are only printed.
func NewDryRun(dir string, w io.Writer, format func(string) string) *FS {
	if format == nil {
		format = func(s string) string { return s }
	}
	base := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
	trace := func(line string) { fmt.Fprintln(w, format("$ "+line)) }
	return &FS{
		fs:    afero.NewCopyOnWriteFs(base, afero.NewMemMapFs()),
		root:  dir,
		host:  afero.NewReadOnlyFs(afero.NewOsFs()),
		trace: trace,
	}
}

// NewMem returns an empty in-memory FS.
func NewMem() *FS {
	return &FS{fs: afero.NewMemMapFs(), root: "/"}
}

// Root returns the project directory.
func (w *FS) Root() string { return w.root }

// clean maps p to a rooted, slash-separated name inside the filesystem.
// Relative paths resolve against the root. Paths that leave the root,
// relative or absolute, yield ErrOutsideRoot.
func (w *FS) clean(p string) (string, error) {
	rel := p
	if filepath.IsAbs(p) && w.root != "/" {
		r, err := filepath.Rel(w.root, p)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, p)
		}
		rel = r
	}
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, p)
	}
	return path.Join("/", rel), nil
}

// source resolves p for reading. Host-backed filesystems also read paths
// above the root, resolved against it.
func (w *FS) source(p string) (afero.Fs, string, error) {
	name, err := w.clean(p)
	if err == nil {
		return w.fs, name, nil
	}
	if w.host == nil || !errors.Is(err, ErrOutsideRoot) {
		return nil, "", err
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(w.root, p)
	}
	return w.host, p, nil
}

// Exists reports whether p exists. Stat errors other than "not exist" count
// as existing so tasks never overwrite something they cannot inspect.
func (w *FS) Exists(p string) bool {
	fsys, name, err := w.source(p)
	if err != nil {
		return false
	}
	_, err = fsys.Stat(name)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// ReadFile returns the contents of p.
func (w *FS) ReadFile(p string) ([]byte, error) {
	fsys, name, err := w.source(p)
	if err != nil {
		return nil, err
	}
	return afero.ReadFile(fsys, name)
}

// Write replaces the contents of p, creating parent directories.
func (w *FS) Write(p string, data []byte) error {
	name, err := w.clean(p)
	if err != nil {
		return err
	}
	w.printf("write %s", p)
	if err := w.fs.MkdirAll(path.Dir(name), dirPerm); err != nil {
		return fmt.Errorf("create parent of %s: %w", p, err)
	}
	return afero.WriteFile(w.fs, name, data, filePerm)
}

// Copy copies the regular file src to dst, keeping the source permissions.
func (w *FS) Copy(src, dst string) error {
	srcFs, from, err := w.source(src)
	if err != nil {
		return err
	}
	to, err := w.clean(dst)
	if err != nil {
		return err
	}
	w.printf("cp %s %s", src, dst)
	return w.copyFile(srcFs, from, to)
}

func (w *FS) copyFile(srcFs afero.Fs, from, to string) (err error) {
	in, err := srcFs.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("copy %s: is a directory", from)
	}
	if err := w.fs.MkdirAll(path.Dir(to), dirPerm); err != nil {
		return err
	}

	out, err := w.fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// MoveContents moves every entry of directory src into dst. Existing files
// in dst with the same name are replaced and directories are merged. src is
// left empty.
func (w *FS) MoveContents(src, dst string) error {
	from, err := w.clean(src)
	if err != nil {
		return err
	}
	to, err := w.clean(dst)
	if err != nil {
		return err
	}
	if w.trace != nil {
		w.printf("mv %s/* %s", src, dst)
		return nil
	}
	return w.moveTree(from, to)
}

func (w *FS) moveTree(from, to string) error {
	entries, err := afero.ReadDir(w.fs, from)
	if err != nil {
		return err
	}
	if err := w.fs.MkdirAll(to, dirPerm); err != nil {
		return err
	}
	for _, entry := range entries {
		source := path.Join(from, entry.Name())
		target := path.Join(to, entry.Name())
		if entry.IsDir() {
			if err := w.moveTree(source, target); err != nil {
				return err
			}
			if err := w.fs.Remove(source); err != nil {
				return fmt.Errorf("move %s: %w", source, err)
			}
			continue
		}
		if err := w.fs.RemoveAll(target); err != nil {
			return fmt.Errorf("replace %s: %w", target, err)
		}
		if err := w.fs.Rename(source, target); err != nil {
			return fmt.Errorf("move %s: %w", source, err)
		}
	}
	return nil
}

// RemoveAll removes p and everything below it. A missing path is not an error.
func (w *FS) RemoveAll(p string) error {
	name, err := w.clean(p)
	if err != nil {
		return err
	}
	if name == "/" {
		return fmt.Errorf("%w: refusing to remove the project root", ErrOutsideRoot)
	}
	if w.trace != nil {
		w.printf("rm -rf %s", p)
		return nil
	}
	return w.fs.RemoveAll(name)
}

func (w *FS) printf(format string, args ...any) {
	if w.trace != nil {
		w.trace(fmt.Sprintf(format, args...))
	}
}
