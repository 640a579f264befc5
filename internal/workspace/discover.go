package workspace

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Patterns select project files by kind. Patterns are doublestar globs
// matched against slash-separated paths relative to the root.
type Patterns struct {
	Stylesheets []string `koanf:"stylesheets"`
	Sass        []string `koanf:"sass"`
	Tokens      []string `koanf:"tokens"`
	Components  []string `koanf:"components"`
	Exclude     []string `koanf:"exclude"`
}

// DefaultPatterns returns the patterns used when none are configured.
func DefaultPatterns() Patterns {
	return Patterns{
		Stylesheets: []string{"**/*.css"},
		Sass:        []string{"**/*.scss", "**/*.sass"},
		Tokens:      []string{"**/*.tokens", "**/*.tokens.json", "**/tokens.json", "**/design-tokens.json"},
		Components:  []string{"**/*.{tsx,jsx,vue,svelte,astro,html,templ}"},
		Exclude:     []string{"**/node_modules", "**/.git", "**/dist", "**/build", "**/.next"},
	}
}

// Files lists discovered project files by kind, relative to the root and
// sorted.
type Files struct {
	Stylesheets []string `json:"stylesheets"`
	Sass        []string `json:"sass"`
	Tokens      []string `json:"tokens"`
	Components  []string `json:"components"`
}

// Stats counts files seen during discovery.
type Stats struct {
	Discovered int `json:"discovered"` // files matching any pattern
	Skipped    int `json:"skipped"`    // generated or gitignored files
}

// Validate reports the first malformed pattern.
func (p Patterns) Validate() error {
	for _, group := range [][]string{p.Stylesheets, p.Sass, p.Tokens, p.Components, p.Exclude} {
		for _, pattern := range group {
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("invalid pattern: %s", pattern)
			}
		}
	}
	return nil
}

// Discover walks the root and sorts matching files into kinds. Excluded
// directories are not entered. Generated files and files ignored by the
// root .gitignore are skipped.
func (r *Root) Discover(p Patterns) (Files, Stats, error) {
	var (
		files Files
		stats Stats
	)
	if err := p.Validate(); err != nil {
		return files, stats, err
	}
	gi := loadGitIgnore(r.dir)

	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // keep walking past unreadable entries
		}
		if path == r.dir {
			return nil
		}
		rel := r.Rel(path)

		if matchAny(p.Exclude, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		kind := classify(p, rel)
		if kind == nil {
			return nil
		}
		stats.Discovered++
		if shouldSkipFile(gi, rel) {
			stats.Skipped++
			return nil
		}
		list := kind(&files)
		*list = append(*list, rel)
		return nil
	})
	if err != nil {
		return files, stats, fmt.Errorf("workspace: discover: %w", err)
	}

	for _, list := range []*[]string{&files.Stylesheets, &files.Sass, &files.Tokens, &files.Components} {
		sort.Strings(*list)
	}
	return files, stats, nil
}

// classify returns an accessor for the list a file belongs to. Token files
// are checked before stylesheets so "*.tokens.json" never counts as anything
// else.
func classify(p Patterns, rel string) func(*Files) *[]string {
	switch {
	case matchAny(p.Tokens, rel):
		return func(f *Files) *[]string { return &f.Tokens }
	case matchAny(p.Stylesheets, rel):
		return func(f *Files) *[]string { return &f.Stylesheets }
	case matchAny(p.Sass, rel):
		return func(f *Files) *[]string { return &f.Sass }
	case matchAny(p.Components, rel):
		return func(f *Files) *[]string { return &f.Components }
	}
	return nil
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// loadGitIgnore compiles the root .gitignore. A missing file is fine.
func loadGitIgnore(dir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// isGenerated reports build output that mirrors a source file.
func isGenerated(rel string) bool {
	return strings.HasSuffix(rel, "_templ.go") ||
		strings.HasSuffix(rel, ".templ.go") ||
		strings.HasSuffix(rel, ".min.css")
}

// shouldSkipFile applies the cheap generated-file check first, then the
// gitignore rules.
func shouldSkipFile(gi *ignore.GitIgnore, rel string) bool {
	if isGenerated(rel) {
		return true
	}
	return gi != nil && gi.MatchesPath(rel)
}
