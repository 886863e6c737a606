package pipeline

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentKey(t *testing.T) {
	a := ContentKey("resume", "some text")
	b := ContentKey("resume", "some text")
	c := ContentKey("resume", "other text")
	d := ContentKey("job", "some text")

	assert.Equal(t, a, b, "identical content hashes identically")
	assert.NotEqual(t, a, c, "different content must not collide")
	assert.NotEqual(t, a, d, "the kind prefix separates resume and job entries")
}

func TestGetOrParseCachesResult(t *testing.T) {
	cache := newParseCache(4)
	calls := 0
	parse := func() any {
		calls++
		return "parsed"
	}

	value, hit := cache.GetOrParse("k1", parse)
	assert.Equal(t, "parsed", value)
	assert.False(t, hit)

	value, hit = cache.GetOrParse("k1", parse)
	assert.Equal(t, "parsed", value)
	assert.True(t, hit)
	assert.Equal(t, 1, calls, "the second lookup must not parse again")
}

func TestCacheEviction(t *testing.T) {
	cache := newParseCache(2)

	cache.GetOrParse("a", func() any { return 1 })
	cache.GetOrParse("b", func() any { return 2 })
	cache.GetOrParse("c", func() any { return 3 })

	assert.Equal(t, 2, cache.Len())

	// "a" was evicted; "b" and "c" survive
	_, hit := cache.GetOrParse("a", func() any { return 1 })
	assert.False(t, hit)
	_, hit = cache.GetOrParse("c", func() any { return 3 })
	assert.True(t, hit)
}

func TestCacheLRUOrdering(t *testing.T) {
	cache := newParseCache(2)

	cache.GetOrParse("a", func() any { return 1 })
	cache.GetOrParse("b", func() any { return 2 })

	// Touch "a" so "b" becomes the eviction candidate
	_, hit := cache.GetOrParse("a", func() any { return 1 })
	require.True(t, hit)

	cache.GetOrParse("c", func() any { return 3 })

	_, hit = cache.GetOrParse("a", func() any { return 1 })
	assert.True(t, hit, "recently used entries survive eviction")
	_, hit = cache.GetOrParse("b", func() any { return 2 })
	assert.False(t, hit, "least recently used entry was evicted")
}

func TestCacheConcurrentSingleParse(t *testing.T) {
	cache := newParseCache(8)

	var mu sync.Mutex
	calls := 0
	parse := func() any {
		mu.Lock()
		calls++
		mu.Unlock()
		return "v"
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, _ := cache.GetOrParse("shared", parse)
			assert.Equal(t, "v", value)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, calls, 2, "concurrent lookups collapse to at most a straggler plus one parse")
}

func TestCacheDefaultSize(t *testing.T) {
	cache := newParseCache(0)
	for i := 0; i < defaultCacheSize+10; i++ {
		key := fmt.Sprintf("k%d", i)
		cache.GetOrParse(key, func() any { return i })
	}
	assert.Equal(t, defaultCacheSize, cache.Len())
}
