package driver

import (
	"sync"

	"bcplc/internal/project"
)

// Cache remembers the outcome of files that parsed cleanly, keyed by CacheKey.
type Cache interface {
	Lookup(key project.Digest) (*CachedFile, bool)
	Store(key project.Digest, entry *CachedFile) error
}

// MemoryCache is a per-process Cache, used by watch mode between rebuilds.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[project.Digest]*CachedFile
	next    Cache
}

// NewMemoryCache creates a MemoryCache. When next is not nil, misses fall
// through to it and stores are written to both.
func NewMemoryCache(capHint int, next Cache) *MemoryCache {
	return &MemoryCache{entries: make(map[project.Digest]*CachedFile, capHint), next: next}
}

func (c *MemoryCache) Lookup(key project.Digest) (*CachedFile, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return entry, true
	}
	if c.next == nil {
		return nil, false
	}
	entry, ok = c.next.Lookup(key)
	if ok {
		c.mu.Lock()
		c.entries[key] = entry
		c.mu.Unlock()
	}
	return entry, ok
}

func (c *MemoryCache) Store(key project.Digest, entry *CachedFile) error {
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	if c.next != nil {
		return c.next.Store(key, entry)
	}
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
