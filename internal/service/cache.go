package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/fabzclean/backend/internal/models"
)

// SummaryCache is the in-process tier of the two-tier read strategy. It is
// an explicit component with an injected clock so eviction is deterministic
// under test, rather than an ambient process-wide map.
type SummaryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	summary  models.BISummary
	storedAt time.Time
}

func NewSummaryCache(ttl time.Duration, now func() time.Time) *SummaryCache {
	if now == nil {
		now = time.Now
	}
	return &SummaryCache{
		entries: map[string]cacheEntry{},
		ttl:     ttl,
		now:     now,
	}
}

func cacheKey(scope string, windowDays int) string {
	return fmt.Sprintf("%s:%d", scope, windowDays)
}

func (c *SummaryCache) Get(scope string, windowDays int) (models.BISummary, bool) {
	key := cacheKey(scope, windowDays)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return models.BISummary{}, false
	}

	if c.now().Sub(entry.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresher entry may have landed.
		if current, still := c.entries[key]; still && c.now().Sub(current.storedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return models.BISummary{}, false
	}
	return entry.summary, true
}

func (c *SummaryCache) Set(scope string, windowDays int, summary models.BISummary) {
	c.mu.Lock()
	c.entries[cacheKey(scope, windowDays)] = cacheEntry{summary: summary, storedAt: c.now()}
	c.mu.Unlock()
}

func (c *SummaryCache) Invalidate(scope string, windowDays int) {
	c.mu.Lock()
	delete(c.entries, cacheKey(scope, windowDays))
	c.mu.Unlock()
}
