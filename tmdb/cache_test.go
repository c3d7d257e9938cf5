package tmdb

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(ttl time.Duration, size int) (*responseCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := newResponseCache(ttl, size)
	cache.now = clock.Now
	return cache, clock
}

func TestResponseCache(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		cache, _ := newTestCache(time.Minute, 2)

		cache.Put("key1", "value1")
		val, ok := cache.Get("key1")
		assert.True(t, ok)
		assert.Equal(t, "value1", val)

		_, ok = cache.Get("nonexistent")
		assert.False(t, ok)

		cache.Put("key1", "updated")
		val, _ = cache.Get("key1")
		assert.Equal(t, "updated", val)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("LRU eviction", func(t *testing.T) {
		cache, _ := newTestCache(time.Minute, 2)

		cache.Put("key1", "value1")
		cache.Put("key2", "value2")

		// Access key1 to make it recently used
		cache.Get("key1")

		cache.Put("key3", "value3")

		_, ok := cache.Get("key2")
		assert.False(t, ok, "key2 should have been evicted")

		_, ok = cache.Get("key1")
		assert.True(t, ok)
		_, ok = cache.Get("key3")
		assert.True(t, ok)
	})

	t.Run("expiry", func(t *testing.T) {
		cache, clock := newTestCache(time.Minute, 4)

		cache.Put("key1", "value1")
		clock.Advance(59 * time.Second)
		_, ok := cache.Get("key1")
		assert.True(t, ok)

		clock.Advance(time.Second)
		_, ok = cache.Get("key1")
		assert.False(t, ok, "entry should expire at ttl")
		assert.Equal(t, 0, cache.Len(), "expired entry should be removed on read")
	})

	t.Run("put refreshes expiry", func(t *testing.T) {
		cache, clock := newTestCache(time.Minute, 4)

		cache.Put("key1", "value1")
		clock.Advance(50 * time.Second)
		cache.Put("key1", "value2")
		clock.Advance(50 * time.Second)

		val, ok := cache.Get("key1")
		assert.True(t, ok)
		assert.Equal(t, "value2", val)
	})

	t.Run("clear", func(t *testing.T) {
		cache, _ := newTestCache(time.Minute, 4)
		cache.Put("key1", "value1")
		cache.Put("key2", "value2")

		cache.Clear()

		assert.Equal(t, 0, cache.Len())
		_, ok := cache.Get("key1")
		assert.False(t, ok)
	})

	t.Run("non-positive size uses default", func(t *testing.T) {
		cache := newResponseCache(time.Minute, 0)
		assert.Equal(t, DefaultCacheSize, cache.size)
	})

	t.Run("concurrent access", func(t *testing.T) {
		cache := newResponseCache(time.Minute, 50)

		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := range 100 {
					key := fmt.Sprintf("key%d-%d", id, j%10)
					cache.Put(key, j)
					cache.Get(key)
				}
			}(i)
		}
		wg.Wait()

		assert.LessOrEqual(t, cache.Len(), 50)
	})
}
