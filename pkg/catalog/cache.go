package catalog

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/pathserve/pathserve/pkg/index"
)

// defaultCacheEntries bounds how many distinct query/limit pairs are
// memoized between rebuilds.
const defaultCacheEntries = 256

// queryCache memoizes ranked result slices for repeated queries.
// Cached slices point into the published snapshot, so the catalog
// replaces the whole cache on every publish instead of invalidating
// entries one by one.
type queryCache struct {
	results     map[string][]*index.Entry
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxEntries  int
	mu          sync.Mutex
}

func newQueryCache(maxEntries int) *queryCache {
	return &queryCache{
		results:    make(map[string][]*index.Entry, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// cacheKeyFor normalizes a query the same way the index does, so case
// and padding variants share one slot. Empty queries are not cached.
func cacheKeyFor(query string, limit int) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	return q + "\x00" + strconv.Itoa(limit), true
}

func (qc *queryCache) get(key string) ([]*index.Entry, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	results, ok := qc.results[key]
	if !ok {
		return nil, false
	}
	qc.hits++
	qc.accessTime[key] = qc.getNextAccessTime()
	return results, true
}

func (qc *queryCache) put(key string, results []*index.Entry) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if len(qc.results) >= qc.maxEntries {
		qc.evictLRU()
	}
	qc.results[key] = results
	qc.accessTime[key] = qc.getNextAccessTime()
}

func (qc *queryCache) stats() map[string]int {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	return map[string]int{
		"cacheEntries":    len(qc.results),
		"maxCacheEntries": qc.maxEntries,
		"cacheHits":       int(qc.hits),
	}
}

func (qc *queryCache) getNextAccessTime() int64 {
	qc.accessCount++
	return qc.accessCount
}

func (qc *queryCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = 9223372036854775807

	for key, accessTime := range qc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(qc.results, oldestKey)
		delete(qc.accessTime, oldestKey)
		log.Debugf("Evicted query %q from result cache", oldestKey)
	}
}
