package server

import (
	"strings"
	"sync"
	"time"

	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/platform"
)

// cacheKey identifies a unique tree read scope.
type cacheKey struct {
	Path  string
	Depth int
	Roles string
	BBox  [4]int
	Box   bool
	Prune bool
}

func keyFor(opts platform.ReadOptions) cacheKey {
	k := cacheKey{
		Path:  opts.Path,
		Depth: opts.Depth,
		Roles: strings.Join(opts.Roles, ","),
		Prune: opts.Prune,
	}
	if opts.BBox != nil {
		k.BBox = opts.BBox.Array()
		k.Box = true
	}
	return k
}

// cacheEntry holds a cached element tree with its timestamp.
type cacheEntry struct {
	elements  []model.Element
	timestamp time.Time
}

// TreeCache provides a TTL-based cache for element trees read from fixtures.
// Cached trees are shared between callers and must not be mutated.
type TreeCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time

	// onLookup, when set, is told whether each read was served from cache.
	onLookup func(hit bool)
}

// NewTreeCache creates a new cache. A ttl of 0 disables caching.
func NewTreeCache(ttl time.Duration) *TreeCache {
	return &TreeCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// ReadElements returns cached elements if within TTL, otherwise reads fresh.
func (c *TreeCache) ReadElements(reader platform.Reader, opts platform.ReadOptions) ([]model.Element, error) {
	if c.ttl <= 0 {
		return reader.ReadElements(opts)
	}

	key := keyFor(opts)

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		elements := entry.elements
		c.mu.Unlock()
		c.observe(true)
		return elements, nil
	}
	c.mu.Unlock()
	c.observe(false)

	elements, err := reader.ReadElements(opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{elements: elements, timestamp: c.now()}
	c.mu.Unlock()

	return elements, nil
}

func (c *TreeCache) observe(hit bool) {
	if c.onLookup != nil {
		c.onLookup(hit)
	}
}

// InvalidatePath removes all cache entries read from path.
func (c *TreeCache) InvalidatePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Path == path {
			delete(c.entries, k)
		}
	}
}

// InvalidateAll clears the entire cache.
func (c *TreeCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// Len returns the number of cached trees, expired ones included.
func (c *TreeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
