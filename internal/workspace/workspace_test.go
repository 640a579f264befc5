package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/designsync/internal/apperr"
)

func newRoot(t *testing.T, files map[string]string) *Root {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	root, err := Open(dir)
	require.NoError(t, err)
	return root
}

func TestResolve(t *testing.T) {
	root := newRoot(t, nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative file", "src/app.css", false},
		{"cleaned inside root", "src/../app.css", false},
		{"empty", "", true},
		{"blank", "  ", true},
		{"absolute", "/etc/passwd", true},
		{"parent escape", "../outside.css", true},
		{"nested escape", "src/../../outside.css", true},
		{"root itself", ".", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, err := root.Resolve(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, apperr.ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(abs))
			assert.Equal(t, filepath.Clean(tt.path), filepath.ToSlash(root.Rel(abs)))
		})
	}
}

func TestResolveSymlinks(t *testing.T) {
	root := newRoot(t, map[string]string{"src/app.css": ":root{}"})
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "x.css"), []byte(":root{--a: 1px}"), 0o644))

	if err := os.Symlink(outside, filepath.Join(root.Dir(), "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root.Dir(), "src"), filepath.Join(root.Dir(), "inner")))

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing file through outside link", "link/x.css", true},
		{"new file through outside link", "link/new/y.css", true},
		{"link inside root", "inner/app.css", false},
		{"new file under inside link", "inner/new.css", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := root.Resolve(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, apperr.ErrInvalidPath)
				return
			}
			require.NoError(t, err)
		})
	}

	_, err := root.Update("link/x.css", false, func(string) (string, error) {
		return ":root{--a: 2px}", nil
	})
	require.ErrorIs(t, err, apperr.ErrInvalidPath)
	data, err := os.ReadFile(filepath.Join(outside, "x.css"))
	require.NoError(t, err)
	assert.Equal(t, ":root{--a: 1px}", string(data))
}

func TestOpenRejectsFile(t *testing.T) {
	root := newRoot(t, map[string]string{"a.css": ""})
	_, err := Open(filepath.Join(root.Dir(), "a.css"))
	require.Error(t, err)
}

func TestReadWrite(t *testing.T) {
	root := newRoot(t, map[string]string{"app.css": ":root {}\n"})

	_, err := root.Read("missing.css")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, os.Chmod(filepath.Join(root.Dir(), "app.css"), 0o600))
	require.NoError(t, root.Write("app.css", ":root { --a: 1; }\n"))

	got, err := root.Read("app.css")
	require.NoError(t, err)
	assert.Equal(t, ":root { --a: 1; }\n", got)

	info, err := os.Stat(filepath.Join(root.Dir(), "app.css"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(root.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")

	require.ErrorIs(t, root.Write("../escape.css", "x"), apperr.ErrInvalidPath)
}

func TestUpdate(t *testing.T) {
	root := newRoot(t, map[string]string{"app.css": "a"})

	changed, err := root.Update("app.css", false, func(s string) (string, error) { return s, nil })
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = root.Update("app.css", false, func(s string) (string, error) { return s + "b", nil })
	require.NoError(t, err)
	assert.True(t, changed)

	boom := errors.New("boom")
	_, err = root.Update("app.css", false, func(string) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	got, err := root.Read("app.css")
	require.NoError(t, err)
	assert.Equal(t, "ab", got)

	_, err = root.Update("new.scss", false, func(s string) (string, error) { return s + "$a: 1;\n", nil })
	require.ErrorIs(t, err, apperr.ErrNotFound)

	changed, err = root.Update("styles/new.scss", true, func(s string) (string, error) { return s + "$a: 1;\n", nil })
	require.NoError(t, err)
	assert.True(t, changed)
	got, err = root.Read("styles/new.scss")
	require.NoError(t, err)
	assert.Equal(t, "$a: 1;\n", got)
}

func TestDiscover(t *testing.T) {
	root := newRoot(t, map[string]string{
		".gitignore":                "vendor/\n",
		"app.css":                   "",
		"assets/app.min.css":        "",
		"theme/vars.scss":           "",
		"tokens/colors.tokens.json": "{}",
		"src/Button.tsx":            "",
		"src/readme.md":             "",
		"node_modules/pkg/x.css":    "",
		"dist/out.css":              "",
		"vendor/ignored.css":        "",
	})

	files, stats, err := root.Discover(DefaultPatterns())
	require.NoError(t, err)

	assert.Equal(t, Files{
		Stylesheets: []string{"app.css"},
		Sass:        []string{"theme/vars.scss"},
		Tokens:      []string{"tokens/colors.tokens.json"},
		Components:  []string{"src/Button.tsx"},
	}, files)
	assert.Equal(t, Stats{Discovered: 5, Skipped: 1}, stats)
}

func TestDiscoverInvalidPattern(t *testing.T) {
	root := newRoot(t, nil)
	p := DefaultPatterns()
	p.Stylesheets = []string{"[*.css"}
	_, _, err := root.Discover(p)
	require.Error(t, err)
}
