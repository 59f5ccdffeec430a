// ABOUTME: Generic in-memory cache with TTL-based expiration
// ABOUTME: Holds computed rainfall forecasts keyed by station and window

package cache

import (
	"log/slog"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is safe for concurrent use. A background sweeper evicts expired
// entries until Close is called.
type Cache[V any] struct {
	store sync.Map
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go c.sweep(time.Minute)
	return c
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	raw, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return zero, false
	}

	e := raw.(entry[V])
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return zero, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.value, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.store.Store(key, entry[V]{value: value, expiresAt: time.Now().Add(ttl)})
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

func (c *Cache[V]) Clear(key string) {
	c.store.Delete(key)
}

// Purge drops every entry. Called after a dataset reload.
func (c *Cache[V]) Purge() {
	c.store.Range(func(key, _ any) bool {
		c.store.Delete(key)
		return true
	})
}

// Len counts entries, including expired ones not yet swept.
func (c *Cache[V]) Len() int {
	n := 0
	c.store.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Close stops the background sweeper. Safe to call more than once.
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache[V]) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.store.Range(func(key, raw any) bool {
				if now.After(raw.(entry[V]).expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
