package fetch

import (
	"context"
	"time"

	"github.com/codeGROOVE-dev/sfcache"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/null"
)

// DefaultCacheTTL is how long fetched pages stay cached. Enrichment is a
// convenience, not a source of truth, so a short TTL is fine.
const DefaultCacheTTL = 15 * time.Minute

// Cache is an in-memory TTL cache for fetched pages. It collapses
// concurrent fetches of the same URL into a single upstream request.
type Cache struct {
	tiered *sfcache.TieredCache[string, []byte]
	ttl    time.Duration
}

// NewCache creates a page cache with the given TTL (DefaultCacheTTL when
// zero). The cache is memory-only; nothing persists across restarts.
func NewCache(ttl time.Duration) (*Cache, error) {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	tiered, err := sfcache.NewTiered[string, []byte](null.New[string, []byte](), sfcache.TTL(ttl))
	if err != nil {
		return nil, err
	}
	return &Cache{tiered: tiered, ttl: ttl}, nil
}

// GetSet returns the cached value for key, or runs fetch and caches its
// result.
func (c *Cache) GetSet(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	return c.tiered.GetSet(ctx, key, fetch, c.ttl)
}

// TTL returns the cache entry lifetime.
func (c *Cache) TTL() time.Duration { return c.ttl }
