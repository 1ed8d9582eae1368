package cache

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// IndexTTL is how long the rendered index page stays cached. There is no
// write-through invalidation: a deleted post may keep showing up on the
// index until the entry expires.
const IndexTTL = 20 * time.Second

type entry struct {
	body      []byte
	expiresAt time.Time
}

// PageCache holds rendered response bodies with a TTL. The clock is
// injectable so tests can step time instead of sleeping. Reads and
// overwrites may race; the LRU is safe for concurrent use and the slot is
// last-writer-wins.
type PageCache struct {
	lruCache *lru.Cache[string, entry]
	ttl      time.Duration
	now      func() time.Time
}

// New creates a cache holding up to size pages.
func New(size int, ttl time.Duration) *PageCache {
	return NewWithClock(size, ttl, time.Now)
}

func NewWithClock(size int, ttl time.Duration, now func() time.Time) *PageCache {
	l, err := lru.New[string, entry](size)
	if err != nil {
		log.Fatalf("Failed to create LRU cache: %v", err)
	}
	return &PageCache{
		lruCache: l,
		ttl:      ttl,
		now:      now,
	}
}

// Set stores a rendered body. The caller must not mutate body afterwards.
func (c *PageCache) Set(key string, body []byte) {
	c.lruCache.Add(key, entry{
		body:      body,
		expiresAt: c.now().Add(c.ttl),
	})
}

// Get returns the cached body, or false if absent or expired.
func (c *PageCache) Get(key string) ([]byte, bool) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().After(val.expiresAt) {
		c.lruCache.Remove(key)
		return nil, false
	}
	return val.body, true
}

// Delete removes a key.
func (c *PageCache) Delete(key string) {
	c.lruCache.Remove(key)
}
