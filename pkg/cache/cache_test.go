package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration, opts ...Option[string]) (*Store[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts = append([]Option[string]{WithClock[string](clock.Now)}, opts...)
	return NewStore[string](ttl, 0, opts...), clock
}

func TestStore_BasicOperations(t *testing.T) {
	store, _ := newTestStore(time.Minute)
	defer store.Stop()

	store.Set("s1", "editor")
	value, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "editor", value)

	_, ok = store.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, []string{"s1"}, store.Keys())

	assert.True(t, store.Delete("s1"))
	assert.False(t, store.Delete("s1"))
	assert.Equal(t, 0, store.Len())
}

func TestStore_SlidingExpiration(t *testing.T) {
	store, clock := newTestStore(time.Minute)

	store.Set("s1", "editor")
	clock.Advance(50 * time.Second)

	_, ok := store.Get("s1")
	require.True(t, ok, "access refreshes the lifetime")

	clock.Advance(50 * time.Second)
	_, ok = store.Peek("s1")
	require.True(t, ok)

	clock.Advance(20 * time.Second)
	_, ok = store.Peek("s1")
	assert.False(t, ok, "peek does not refresh")
	_, ok = store.Get("s1")
	assert.False(t, ok)
	assert.Empty(t, store.Keys())
	assert.Equal(t, 1, store.Len(), "expired entries stay until swept")
}

func TestStore_SweepCallsEvictHook(t *testing.T) {
	evicted := map[string]string{}
	store, clock := newTestStore(time.Minute, WithEvictHook(func(key string, value string) {
		evicted[key] = value
	}))

	store.Set("old", "a")
	clock.Advance(30 * time.Second)
	store.Set("new", "b")
	clock.Advance(45 * time.Second)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, map[string]string{"old": "a"}, evicted)
	assert.Equal(t, []string{"new"}, store.Keys())

	store.Delete("new")
	assert.Equal(t, "b", evicted["new"])
}

func TestStore_BackgroundCleanup(t *testing.T) {
	done := make(chan string, 1)
	store := NewStore[string](5*time.Millisecond, 5*time.Millisecond, WithEvictHook(func(key string, _ string) {
		done <- key
	}))
	defer store.Stop()

	store.Set("s1", "editor")

	select {
	case key := <-done:
		assert.Equal(t, "s1", key)
	case <-time.After(time.Second):
		t.Fatal("entry was not swept")
	}
	assert.Equal(t, 0, store.Len())
}

func TestStore_StopTwice(t *testing.T) {
	store := NewStore[int](time.Minute, time.Millisecond)
	assert.NotPanics(t, func() {
		store.Stop()
		store.Stop()
	})
}

func TestStore_Concurrent(t *testing.T) {
	store := NewStore[int](time.Minute, 0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			store.Set(key, i)
			v, ok := store.Get(key)
			assert.True(t, ok)
			assert.Equal(t, i, v)
			store.Keys()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, store.Len())
}
