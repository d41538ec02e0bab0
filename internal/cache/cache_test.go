package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inksearch/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
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

func result(names ...string) domain.SearchResult {
	items := make([]domain.Artist, len(names))
	for i, n := range names {
		items[i] = domain.Artist{ID: int64(i + 1), Name: n, Styles: []string{"japanese"}}
	}
	return domain.SearchResult{Items: items, TotalCount: len(items)}
}

func newTestManager(t *testing.T, capacity int, ttl time.Duration) (*Manager, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	m, err := New(capacity, ttl, WithClock(clock.Now))
	require.NoError(t, err)
	return m, clock
}

func TestNewValidation(t *testing.T) {
	_, err := New(0, time.Minute)
	assert.Error(t, err)

	_, err = New(10, 0)
	assert.Error(t, err)

	m, err := New(DefaultCapacity, DefaultTTL)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, m.TTL())
}

func TestPutGet(t *testing.T) {
	m, _ := newTestManager(t, 10, time.Minute)

	_, ok := m.Get("k1")
	assert.False(t, ok, "empty cache should miss")

	m.Put("k1", result("Ink & Iron"))
	entry, ok := m.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "k1", entry.Key)
	assert.Equal(t, "Ink & Iron", entry.Value.Items[0].Name)
	assert.Equal(t, 1, m.Len())
}

func TestGetExpiresAfterTTL(t *testing.T) {
	m, clock := newTestManager(t, 10, 300*time.Second)

	m.Put("k1", result("a"))

	clock.Advance(10 * time.Second)
	_, ok := m.Get("k1")
	assert.True(t, ok, "fresh entry should hit")

	clock.Advance(290 * time.Second)
	_, ok = m.Get("k1")
	assert.True(t, ok, "entry exactly at ttl should still hit")

	clock.Advance(time.Second)
	_, ok = m.Get("k1")
	assert.False(t, ok, "entry past ttl should miss")
	assert.Equal(t, 0, m.Len(), "expired entry should be removed")
}

func TestGetRefreshesLastAccess(t *testing.T) {
	m, clock := newTestManager(t, 10, time.Hour)

	m.Put("k1", result("a"))
	created := clock.Now()

	clock.Advance(time.Minute)
	entry, ok := m.Get("k1")
	require.True(t, ok)
	assert.Equal(t, created, entry.CreatedAt)
	assert.Equal(t, created.Add(time.Minute), entry.LastAccess)
}

func TestRefreshDoesNotExtendTTL(t *testing.T) {
	m, clock := newTestManager(t, 10, time.Minute)

	m.Put("k1", result("a"))
	for i := 0; i < 5; i++ {
		clock.Advance(15 * time.Second)
		m.Get("k1")
	}

	_, ok := m.Get("k1")
	assert.False(t, ok, "ttl counts from creation, not last access")
}

func TestEvictsLeastRecentlyAccessed(t *testing.T) {
	m, clock := newTestManager(t, 3, time.Hour)

	m.Put("a", result("a"))
	clock.Advance(time.Second)
	m.Put("b", result("b"))
	clock.Advance(time.Second)
	m.Put("c", result("c"))

	// touching "a" makes "b" the least recently accessed
	clock.Advance(time.Second)
	_, ok := m.Get("a")
	require.True(t, ok)

	m.Put("d", result("d"))

	assert.Equal(t, 3, m.Len())
	assert.False(t, m.Contains("b"), "b should have been evicted")
	assert.True(t, m.Contains("a"))
	assert.True(t, m.Contains("c"))
	assert.True(t, m.Contains("d"))
	assert.Equal(t, []string{"c", "a", "d"}, m.Keys())
}

func TestPutOverwriteDoesNotEvict(t *testing.T) {
	m, _ := newTestManager(t, 2, time.Hour)

	m.Put("a", result("a"))
	m.Put("b", result("b"))
	m.Put("a", result("a2"))

	assert.Equal(t, 2, m.Len())
	entry, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a2", entry.Value.Items[0].Name)
	assert.True(t, m.Contains("b"))
}

func TestInvalidateAll(t *testing.T) {
	m, _ := newTestManager(t, 10, time.Hour)

	for i := 0; i < 5; i++ {
		m.Put(fmt.Sprintf("k%d", i), result("x"))
	}
	require.Equal(t, 5, m.Len())

	m.InvalidateAll()
	assert.Equal(t, 0, m.Len())
	_, ok := m.Get("k0")
	assert.False(t, ok)
}

func TestValuesAreCopied(t *testing.T) {
	m, _ := newTestManager(t, 10, time.Hour)

	original := result("a")
	m.Put("k", original)
	original.Items[0].Name = "mutated after put"

	entry, _ := m.Get("k")
	assert.Equal(t, "a", entry.Value.Items[0].Name)

	entry.Value.Items[0].Styles[0] = "mutated after get"
	again, _ := m.Get("k")
	assert.Equal(t, "japanese", again.Value.Items[0].Styles[0])
}

func TestKeysSkipExpired(t *testing.T) {
	m, clock := newTestManager(t, 10, time.Minute)

	m.Put("old", result("a"))
	clock.Advance(2 * time.Minute)
	m.Put("new", result("b"))

	assert.Equal(t, []string{"new"}, m.Keys())
	assert.False(t, m.Contains("old"))
}

func TestConcurrentAccess(t *testing.T) {
	m, _ := newTestManager(t, 50, time.Hour)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%75)
				m.Put(key, result("x"))
				m.Get(key)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, m.Len(), 50)
}
