package lut

import (
	"sync"

	"github.com/arloliu/skmcodec/skm"
)

type cacheKey struct {
	params   skm.Params
	maxValue uint64
	analytic bool
}

type cacheEntry struct {
	once  sync.Once
	table *Table
	err   error
}

// Cache memoizes tables by configuration and sweep bound.
//
// Concurrent callers asking for the same table share a single build. Cached
// tables are immutable and may be used by any number of decoders.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*cacheEntry
}

// NewCache creates an empty table cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*cacheEntry)}
}

var sharedCache = NewCache()

// Shared returns the process-wide table cache.
func Shared() *Cache {
	return sharedCache
}

func (c *Cache) entry(key cacheKey) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}

	return e
}

// Get returns the swept table for (p, maxValue), building it on first use.
// A failed build is cached as well; the same error is returned to every caller.
func (c *Cache) Get(p skm.Params, maxValue uint64) (*Table, error) {
	e := c.entry(cacheKey{params: p, maxValue: maxValue})
	e.once.Do(func() {
		e.table, e.err = Build(p, maxValue)
	})

	return e.table, e.err
}

// Analytic returns the analytic table for p, deriving it on first use.
func (c *Cache) Analytic(p skm.Params) *Table {
	e := c.entry(cacheKey{params: p, analytic: true})
	e.once.Do(func() {
		e.table = Analytic(p)
	})

	return e.table
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
