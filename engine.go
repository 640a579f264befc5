package designsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/designsync/internal/scancache"
	"github.com/yacobolo/designsync/internal/shadows"
	"github.com/yacobolo/designsync/internal/tokens"
	"github.com/yacobolo/designsync/internal/workspace"
)

// readConcurrency bounds parallel file reads during a scan.
const readConcurrency = 8

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithPatterns sets the discovery globs.
func WithPatterns(p workspace.Patterns) Option {
	return func(e *Engine) {
		e.patterns = p
	}
}

// WithSelectors sets the light and dark block selectors.
func WithSelectors(light, dark string) Option {
	return func(e *Engine) {
		e.selectors = tokens.Options{Light: light, Dark: dark}
	}
}

// WithCacheSize sets how many scan results are kept.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		e.cacheSize = n
	}
}

// Engine scans and edits one project root. It is safe for concurrent use;
// edits to the same file are applied one at a time.
type Engine struct {
	root      *workspace.Root
	patterns  workspace.Patterns
	selectors tokens.Options
	cacheSize int
	logger    *slog.Logger

	cache *scancache.Cache[*ScanResult]
	locks fileLocks
}

// New returns an Engine for the project directory dir.
func New(dir string, opts ...Option) (*Engine, error) {
	root, err := workspace.Open(dir)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		root:      root,
		patterns:  workspace.DefaultPatterns(),
		selectors: tokens.DefaultOptions(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.patterns.Validate(); err != nil {
		return nil, err
	}
	e.cache, err = scancache.New(e.cacheSize, e.load, e.logger)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Root returns the project root.
func (e *Engine) Root() *workspace.Root {
	return e.root
}

// ScanResult is everything a scan reads from a project.
type ScanResult struct {
	Root        string                        `json:"root"`
	Tokens      map[string]tokens.Token       `json:"tokens"`
	Shadows     map[string]shadows.Definition `json:"shadows"`
	ShadowOrder []string                      `json:"shadowOrder"`
	Files       workspace.Files               `json:"files"`
	Stats       workspace.Stats               `json:"stats"`
	ScannedAt   time.Time                     `json:"scannedAt"`
}

// SortedTokens returns the tokens ordered by category, group and name.
func (r *ScanResult) SortedTokens() []tokens.Token {
	return tokens.Sorted(r.Tokens)
}

// SortedShadows returns the shadows in display order.
func (r *ScanResult) SortedShadows() []shadows.Definition {
	out := make([]shadows.Definition, 0, len(r.ShadowOrder))
	for _, name := range r.ShadowOrder {
		out = append(out, r.Shadows[name])
	}
	return out
}

// Scan returns the cached scan of the project, scanning on first use.
func (e *Engine) Scan(ctx context.Context) (*ScanResult, error) {
	return e.cache.Get(ctx, e.root.Dir())
}

// Rescan discards the cached scan and scans again.
func (e *Engine) Rescan(ctx context.Context) (*ScanResult, error) {
	e.logger.Info("rescanning project", slog.String("root", e.root.Dir()))
	return e.cache.Rescan(ctx, e.root.Dir())
}

// CacheStats reports scan cache activity.
func (e *Engine) CacheStats() scancache.Stats {
	return e.cache.Stats()
}

func (e *Engine) load(ctx context.Context, dir string) (*ScanResult, error) {
	start := time.Now()
	files, stats, err := e.root.Discover(e.patterns)
	if err != nil {
		return nil, err
	}

	var sheets, sass, tokenFiles []tokens.Source
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sheets, err = e.readAll(gctx, files.Stylesheets)
		return err
	})
	g.Go(func() (err error) {
		sass, err = e.readAll(gctx, files.Sass)
		return err
	})
	g.Go(func() (err error) {
		tokenFiles, err = e.readAll(gctx, files.Tokens)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	defs, err := shadows.Scan(ctx, shadows.Input{
		Stylesheets: sheets,
		SassFiles:   sass,
		TokenFiles:  tokenFiles,
		Options:     e.selectors,
	})
	if err != nil {
		return nil, fmt.Errorf("scan shadows: %w", err)
	}

	result := &ScanResult{
		Root:        dir,
		Tokens:      tokens.ScanFiles(sheets, e.selectors),
		Shadows:     shadows.Index(defs),
		ShadowOrder: shadows.Names(defs),
		Files:       files,
		Stats:       stats,
		ScannedAt:   time.Now().UTC(),
	}
	e.logger.Info("scanned project",
		slog.String("root", dir),
		slog.Int("tokens", len(result.Tokens)),
		slog.Int("shadows", len(result.Shadows)),
		slog.Int("files", stats.Discovered-stats.Skipped),
		slog.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// readAll reads files in parallel, keeping their order.
func (e *Engine) readAll(ctx context.Context, paths []string) ([]tokens.Source, error) {
	out := make([]tokens.Source, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := e.root.Read(path)
			if err != nil {
				return err
			}
			out[i] = tokens.Source{Path: path, Content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fileLocks serializes writers per absolute path.
type fileLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *fileLocks) lock(path string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[path]
	if !ok {
		m = &sync.Mutex{}
		l.locks[path] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
