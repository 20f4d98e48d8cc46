package store

import (
	"context"
	"sync"
	"time"

	"covrecord/internal/registry/models"
	"covrecord/pkg/platform/sentinel"
)

// ErrNotFound is returned when a query has no live cache entry.
var ErrNotFound = sentinel.ErrNotFound

type cachedPage struct {
	candidates []models.Candidate
	storedAt   time.Time
}

// InMemoryCache keeps parsed search results per query for a fixed TTL.
type InMemoryCache struct {
	mu       sync.RWMutex
	pages    map[string]cachedPage
	cacheTTL time.Duration
	now      func() time.Time
}

// NewInMemoryCache creates a new in-memory cache with the specified TTL.
func NewInMemoryCache(cacheTTL time.Duration) *InMemoryCache {
	return &InMemoryCache{
		pages:    make(map[string]cachedPage),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Save stores the candidates returned for the query params key.
func (c *InMemoryCache) Save(_ context.Context, key string, candidates []models.Candidate) error {
	stored := make([]models.Candidate, len(candidates))
	copy(stored, candidates)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[key] = cachedPage{candidates: stored, storedAt: c.now()}
	return nil
}

// Find returns the candidates cached for key, or ErrNotFound when absent or
// older than the cache TTL.
func (c *InMemoryCache) Find(_ context.Context, key string) ([]models.Candidate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cached, ok := c.pages[key]; ok {
		if c.now().Sub(cached.storedAt) < c.cacheTTL {
			out := make([]models.Candidate, len(cached.candidates))
			copy(out, cached.candidates)
			return out, nil
		}
	}
	return nil, ErrNotFound
}

// Purge drops expired entries and reports how many were removed.
func (c *InMemoryCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, cached := range c.pages {
		if c.now().Sub(cached.storedAt) >= c.cacheTTL {
			delete(c.pages, key)
			removed++
		}
	}
	return removed
}
