// Package workspace confines file access to one project root.
//
// Every path handed to Root is relative to the project root and is validated
// before any I/O. Writes replace the whole file atomically, so a failed write
// leaves the previous content in place.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
)

// Root is a project directory.
type Root struct {
	dir  string // absolute
	real string // dir with symlinks resolved
}

// Open returns the Root for dir, which must exist.
func Open(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("workspace: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace: root is not a directory: %s", abs)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace: resolve root: %w", err)
	}
	return &Root{dir: abs, real: resolved}, nil
}

// Dir returns the absolute project directory.
func (r *Root) Dir() string {
	return r.dir
}

// Resolve validates a project-relative path and returns its absolute form.
// Empty, absolute and root-escaping paths are rejected, including paths that
// leave the root through a symlink.
func (r *Root) Resolve(rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", apperr.InvalidPath(rel, "is empty")
	}
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") || strings.HasPrefix(rel, `\`) {
		return "", apperr.InvalidPath(rel, "is absolute")
	}
	abs := filepath.Join(r.dir, filepath.Clean(rel))
	if abs == r.dir || !strings.HasPrefix(abs, r.dir+string(os.PathSeparator)) {
		return "", apperr.InvalidPath(rel, "escapes the project root")
	}
	if err := r.confined(abs); err != nil {
		return "", apperr.InvalidPath(rel, err.Error())
	}
	return abs, nil
}

// confined resolves the symlinks of the longest existing prefix of abs and
// checks that the result stays under the real root.
func (r *Root) confined(abs string) error {
	p := abs
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(p)
		if err == nil {
			target := filepath.Join(append([]string{resolved}, rest...)...)
			if !strings.HasPrefix(target, r.real+string(os.PathSeparator)) {
				return errors.New("escapes the project root through a symlink")
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot be resolved: %w", err)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return nil
		}
		rest = append([]string{filepath.Base(p)}, rest...)
		p = parent
	}
}

// Rel converts an absolute path under the root to a slash-separated relative path.
func (r *Root) Rel(abs string) string {
	rel, err := filepath.Rel(r.dir, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

// Read returns the content of a project file.
func (r *Root) Read(rel string) (string, error) {
	abs, err := r.Resolve(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", apperr.NotFound("file %s", rel)
	}
	if err != nil {
		return "", fmt.Errorf("workspace: read %s: %w", rel, err)
	}
	return string(data), nil
}

// Write atomically replaces a project file: tmp file, fsync, rename. The
// mode of an existing file is kept.
func (r *Root) Write(rel, content string) error {
	abs, err := r.Resolve(rel)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("workspace: mkdir: %w", err)
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(abs); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".designsync-tmp-*")
	if err != nil {
		return fmt.Errorf("workspace: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		return fmt.Errorf("workspace: write temp: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("workspace: chmod temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("workspace: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("workspace: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("workspace: rename: %w", err)
	}
	success = true
	return nil
}

// Update reads a file, applies fn and writes the result when it differs.
// A missing file is passed to fn as "" when create is set. The file is left
// untouched when fn fails.
func (r *Root) Update(rel string, create bool, fn func(string) (string, error)) (bool, error) {
	old, err := r.Read(rel)
	if err != nil && !(create && errors.Is(err, apperr.ErrNotFound)) {
		return false, err
	}
	updated, err := fn(old)
	if err != nil {
		return false, err
	}
	if updated == old {
		return false, nil
	}
	if err := r.Write(rel, updated); err != nil {
		return false, err
	}
	return true, nil
}
