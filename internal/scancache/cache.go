// Package scancache holds scan results per project root until they are
// explicitly invalidated. There is no file watching: a write made through a
// different path is not seen until the next Invalidate.
package scancache

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultSize is the number of project roots kept when no size is given.
const DefaultSize = 16

// Loader produces a fresh result for a project root.
type Loader[V any] func(ctx context.Context, root string) (V, error)

// Stats reports cache activity.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Loads  int64 `json:"loads"`
}

// Cache is a size-bounded map from project root to scan result. Concurrent
// misses for the same root share one load.
type Cache[V any] struct {
	entries *lru.Cache[string, V]
	group   singleflight.Group
	load    Loader[V]
	logger  *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
	loads  atomic.Int64
}

// New returns a cache holding up to size roots, filled by load.
func New[V any](size int, load Loader[V], logger *slog.Logger) (*Cache[V], error) {
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := lru.NewWithEvict(size, func(root string, _ V) {
		logger.Debug("scan cache evicted", slog.String("root", root))
	})
	if err != nil {
		return nil, fmt.Errorf("scancache: %w", err)
	}
	return &Cache[V]{entries: entries, load: load, logger: logger}, nil
}

// Get returns the cached result for root, loading it on a miss.
func (c *Cache[V]) Get(ctx context.Context, root string) (V, error) {
	if v, ok := c.entries.Get(root); ok {
		c.hits.Add(1)
		return v, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(root, func() (any, error) {
		if v, ok := c.entries.Peek(root); ok {
			return v, nil
		}
		c.loads.Add(1)
		v, err := c.load(ctx, root)
		if err != nil {
			return v, err
		}
		c.entries.Add(root, v)
		c.logger.Debug("scan cached", slog.String("root", root))
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Peek returns the cached result without loading.
func (c *Cache[V]) Peek(root string) (V, bool) {
	return c.entries.Peek(root)
}

// Invalidate drops the result for root.
func (c *Cache[V]) Invalidate(root string) {
	c.entries.Remove(root)
}

// Rescan drops the result for root and loads it again.
func (c *Cache[V]) Rescan(ctx context.Context, root string) (V, error) {
	c.Invalidate(root)
	c.group.Forget(root)
	return c.Get(ctx, root)
}

// Purge drops every result.
func (c *Cache[V]) Purge() {
	c.entries.Purge()
}

// Len returns the number of cached roots.
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}

// Stats returns a snapshot of the counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Loads: c.loads.Load()}
}
