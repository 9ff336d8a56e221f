package mem

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(maxEntries int) (*TTLStore[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewTTLStore[string](maxEntries)
	s.now = clock.now
	return s, clock
}

func TestTTLStore_GetAndExpire(t *testing.T) {
	s, clock := newTestStore(0)
	s.Set("a", "1", time.Minute)

	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	clock.advance(2 * time.Minute)
	_, ok = s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len(), "Get does not evict")
	assert.Equal(t, 1, s.Purge())
	assert.Equal(t, 0, s.Len())
}

func TestTTLStore_PurgeOnOverflow(t *testing.T) {
	s, clock := newTestStore(2)
	s.Set("old1", "x", time.Second)
	s.Set("old2", "x", time.Second)
	clock.advance(time.Minute)

	s.Set("new", "y", time.Hour)
	assert.Equal(t, 1, s.Len())
	v, ok := s.Get("new")
	assert.True(t, ok)
	assert.Equal(t, "y", v)
}

func TestTTLStore_SetOverwrites(t *testing.T) {
	s, clock := newTestStore(0)
	s.Set("a", "1", time.Second)
	s.Set("a", "2", time.Hour)
	clock.advance(time.Minute)

	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, 1, s.Len())
}

func TestTTLStore_Concurrent(t *testing.T) {
	s := NewTTLStore[int](0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := strconv.Itoa(i % 5)
			s.Set(key, i, time.Minute)
			s.Get(key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, s.Len())
}
