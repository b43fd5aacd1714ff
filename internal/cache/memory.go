package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/acadex/research-scraper/internal/scraper/types"
)

// DefaultMemoryTTL bounds in-memory entries when the caller passes no TTL.
const DefaultMemoryTTL = 600 * time.Second

type memoryEntry struct {
	resp      *types.ScrapeResponse
	expiresAt time.Time
}

// MemoryCache is a process-local cache with per-entry expiry. Expired
// entries are dropped lazily on read and swept periodically by a janitor
// goroutine.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	hits   atomic.Uint64
	misses atomic.Uint64

	stop chan struct{}
	once sync.Once
}

// NewMemoryCache creates an in-memory cache and starts its janitor.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get returns the cached response for key, if present and not expired.
func (c *MemoryCache) Get(_ context.Context, key string) (*types.ScrapeResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// replaced the entry in the meantime.
		if cur, ok := c.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return entry.resp, true
}

// Set stores resp under key for ttl. A non-positive ttl falls back to
// DefaultMemoryTTL.
func (c *MemoryCache) Set(_ context.Context, key string, resp *types.ScrapeResponse, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{
		resp:      resp,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// Delete removes the entry for key.
func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
}

// Stats returns hit and miss counters.
func (c *MemoryCache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	return Stats{
		Backend: "memory",
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate(hits, misses),
	}
}

// Close stops the janitor goroutine.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
