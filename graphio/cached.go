package graphio

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/internal/cache"
	"github.com/HeNeos/graph-algorithms-in-maps/resource"
)

// CachedSource keeps recently used graphs in memory. Concurrent misses for
// the same key share one underlying load.
type CachedSource struct {
	src   Source
	lru   *cache.LRU[string, *graph.Graph]
	group singleflight.Group
	loads atomic.Int64
}

var _ Source = (*CachedSource)(nil)

// NewCachedSource caches up to capacity graphs from src. When rc is non-nil
// each graph is charged its estimated size against rc's memory budget.
func NewCachedSource(src Source, capacity int, rc *resource.Controller) *CachedSource {
	return &CachedSource{
		src: src,
		lru: cache.NewLRU[string, *graph.Graph](capacity,
			cache.WithCost[string, *graph.Graph](func(g *graph.Graph) int64 { return g.SizeBytes() }),
			cache.WithController[string, *graph.Graph](rc),
		),
	}
}

// Load returns the cached graph for key or loads it from the wrapped source.
// A caller whose ctx ends stops waiting; the shared load keeps running for
// the others.
func (c *CachedSource) Load(ctx context.Context, key string) (*graph.Graph, error) {
	if g, ok := c.lru.Get(key); ok {
		return g, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		c.loads.Add(1)
		g, err := c.src.Load(context.WithoutCancel(ctx), key)
		if err != nil {
			return nil, err
		}
		c.lru.Set(key, g)
		return g, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*graph.Graph), nil
	}
}

// Invalidate drops key from the cache.
func (c *CachedSource) Invalidate(key string) bool {
	return c.lru.Remove(key)
}

// Len returns the number of cached graphs.
func (c *CachedSource) Len() int { return c.lru.Len() }

// Stats returns cache hits, misses and the number of loads issued to the
// wrapped source.
func (c *CachedSource) Stats() (hits, misses, loads int64) {
	hits, misses = c.lru.Stats()
	return hits, misses, c.loads.Load()
}
