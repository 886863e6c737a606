package pipeline

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"golang.org/x/sync/singleflight"
)

// defaultCacheSize bounds the parse cache; oldest entries are evicted first.
const defaultCacheSize = 256

// ContentKey returns the cache key for a piece of input text: a content hash
// prefixed with the record kind so resume and job entries never collide.
func ContentKey(kind, text string) string {
	sum := sha256.Sum256([]byte(text))
	return kind + ":" + hex.EncodeToString(sum[:])
}

// parseCache is a bounded LRU cache for parse results. Concurrent lookups of
// the same key are deduplicated through singleflight, so identical scans
// racing within one process trigger a single upstream parse.
type parseCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front is most recently used
	size    int
	group   singleflight.Group
}

type cacheEntry struct {
	key   string
	value any
}

func newParseCache(size int) *parseCache {
	if size <= 0 {
		size = defaultCacheSize
	}
	return &parseCache{
		entries: make(map[string]*list.Element, size),
		order:   list.New(),
		size:    size,
	}
}

// GetOrParse returns the cached value for key, or runs parse once (even
// under concurrent callers) and caches its result. The boolean reports a
// cache hit.
func (c *parseCache) GetOrParse(key string, parse func() any) (any, bool) {
	if value, ok := c.get(key); ok {
		return value, true
	}

	value, _, shared := c.group.Do(key, func() (any, error) {
		v := parse()
		c.put(key, v)
		return v, nil
	})
	return value, shared
}

func (c *parseCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).value, true
}

func (c *parseCache) put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		// Idempotent writes: same key means same value
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, value: value})
	for c.order.Len() > c.size {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Len reports the number of cached entries.
func (c *parseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
