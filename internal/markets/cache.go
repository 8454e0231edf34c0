package markets

import (
	"sync"
	"time"
)

// quoteCache is a TTL memory cache for successful provider lookups. Only
// successes are cached; not-found and transport errors always go back to
// the provider.
type quoteCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]cachedEntry[T]
	ttl     time.Duration
}

type cachedEntry[T any] struct {
	value     T
	fetchedAt time.Time
}

func newQuoteCache[T any](ttl time.Duration) *quoteCache[T] {
	return &quoteCache[T]{
		entries: make(map[string]cachedEntry[T]),
		ttl:     ttl,
	}
}

func (c *quoteCache[T]) get(key string) (T, bool) {
	var zero T
	if c == nil || c.ttl <= 0 {
		return zero, false
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return zero, false
	}
	if time.Since(entry.fetchedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, false
	}
	return entry.value, true
}

func (c *quoteCache[T]) set(key string, value T) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.entries[key] = cachedEntry[T]{value: value, fetchedAt: time.Now()}
	c.mu.Unlock()
}
