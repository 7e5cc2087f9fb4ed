// Package catalog owns the build-once/query-many lifecycle of the
// search index. A rebuild fills a fresh index off to the side and
// publishes it in one swap under the write lock, so concurrent readers
// either see the previous snapshot or the finished new one, never a
// half-built index.
package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pathserve/pathserve/pkg/index"
	"github.com/pathserve/pathserve/pkg/scanner"
)

// Catalog wraps a SearchIndex behind snapshot semantics.
type Catalog struct {
	mu    sync.RWMutex
	idx   *index.SearchIndex
	cache *queryCache

	sc   *scanner.Scanner
	opts index.Options

	built     bool
	lastBuilt time.Time
	buildTime time.Duration
	scanStats *scanner.Stats
}

// New returns an unbuilt Catalog. Search returns nil until the first
// Build completes.
func New(sc *scanner.Scanner, opts index.Options) *Catalog {
	return &Catalog{
		sc:    sc,
		opts:  opts,
		cache: newQueryCache(defaultCacheEntries),
	}
}

// Build scans into a fresh index and publishes it. The scan runs
// outside the lock; readers keep the old snapshot until the swap.
func (c *Catalog) Build(progress scanner.ProgressFunc) error {
	start := time.Now()
	fresh := index.NewWithOptions(c.opts)

	stats, err := c.sc.Scan(fresh, progress)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	// The cache is swapped along with the index. Searches racing the
	// publish may still write into the old cache object, which nothing
	// references afterwards.
	c.mu.Lock()
	c.idx = fresh
	c.cache = newQueryCache(defaultCacheEntries)
	c.built = true
	c.lastBuilt = time.Now()
	c.buildTime = time.Since(start)
	c.scanStats = stats
	c.mu.Unlock()

	log.Debugf("published index with %d entries in %v", fresh.TotalIndexed(), c.buildTime)
	return nil
}

// EnsureBuilt builds only when no index has ever been published.
func (c *Catalog) EnsureBuilt(progress scanner.ProgressFunc) error {
	c.mu.RLock()
	built := c.built
	c.mu.RUnlock()
	if built {
		return nil
	}
	return c.Build(progress)
}

// Search queries the current snapshot, memoizing ranked results for
// repeated query/limit pairs. Nil before the first build.
func (c *Catalog) Search(query string, limit int) []*index.Entry {
	c.mu.RLock()
	idx, cache := c.idx, c.cache
	c.mu.RUnlock()
	if idx == nil {
		return nil
	}

	key, cacheable := cacheKeyFor(query, limit)
	if !cacheable {
		return idx.Search(query, limit)
	}
	if results, ok := cache.get(key); ok {
		return results
	}
	results := idx.Search(query, limit)
	cache.put(key, results)
	return results
}

// Score reports the current snapshot's relevance for one entry, for
// display next to search results. Zero before the first build.
func (c *Catalog) Score(e *index.Entry, query string) int {
	c.mu.RLock()
	idx := c.idx
	c.mu.RUnlock()
	if idx == nil {
		return 0
	}
	return idx.Score(e, query)
}

// TotalIndexed returns the entry count of the current snapshot.
func (c *Catalog) TotalIndexed() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.idx == nil {
		return 0
	}
	return c.idx.TotalIndexed()
}

// Ready reports whether a snapshot has been published.
func (c *Catalog) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.built
}

// LastBuilt returns when the current snapshot was published.
func (c *Catalog) LastBuilt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastBuilt
}

// BuildTime returns how long the last build took, scan included.
func (c *Catalog) BuildTime() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buildTime
}

// Stats merges index structure sizes with the last scan's counters and
// the result cache state.
func (c *Catalog) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := make(map[string]int)
	if c.idx != nil {
		for k, v := range c.idx.Stats() {
			stats[k] = v
		}
	}
	if c.scanStats != nil {
		stats["scanFiles"] = c.scanStats.Files
		stats["scanDirs"] = c.scanStats.Dirs
		stats["scanSkipped"] = c.scanStats.Skipped
		stats["scanErrors"] = c.scanStats.Errors
	}
	for k, v := range c.cache.stats() {
		stats[k] = v
	}
	stats["buildMs"] = int(c.buildTime.Milliseconds())
	return stats
}
