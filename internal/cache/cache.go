package cache

import (
	"errors"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"inksearch/internal/domain"
)

const (
	DefaultCapacity = 100
	DefaultTTL      = 5 * time.Minute
)

type Entry struct {
	Key        string
	Value      domain.SearchResult
	CreatedAt  time.Time
	LastAccess time.Time
}

func (e *Entry) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) > ttl
}

// Manager is a bounded result cache. Entries older than the TTL are never
// served, and when full the least recently accessed entry makes room.
type Manager struct {
	mu  sync.Mutex
	lru *lru.Cache[string, *Entry]
	ttl time.Duration
	now func() time.Time
	log zerolog.Logger
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) { m.log = log.With().Str("component", "cache").Logger() }
}

func New(capacity int, ttl time.Duration, opts ...Option) (*Manager, error) {
	if capacity < 1 {
		return nil, errors.New("cache capacity must be at least 1")
	}
	if ttl <= 0 {
		return nil, errors.New("cache ttl must be positive")
	}

	store, err := lru.New[string, *Entry](capacity)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		lru: store,
		ttl: ttl,
		now: time.Now,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Get returns a copy of the cached result. Expired entries are dropped and
// reported as a miss.
func (m *Manager) Get(key string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.lru.Get(key)
	if !ok {
		return Entry{}, false
	}

	now := m.now()
	if entry.expired(now, m.ttl) {
		m.lru.Remove(key)
		m.log.Debug().Str("key", key).Dur("age", now.Sub(entry.CreatedAt)).Msg("expired entry dropped")
		return Entry{}, false
	}

	entry.LastAccess = now
	out := *entry
	out.Value = entry.Value.Clone()
	return out, true
}

func (m *Manager) Put(key string, value domain.SearchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if evicted := m.lru.Add(key, &Entry{
		Key:        key,
		Value:      value.Clone(),
		CreatedAt:  now,
		LastAccess: now,
	}); evicted {
		m.log.Debug().Str("key", key).Msg("least recently used entry evicted")
	}
}

func (m *Manager) Contains(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.lru.Peek(key)
	return ok && !entry.expired(m.now(), m.ttl)
}

func (m *Manager) InvalidateAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lru.Purge()
	m.log.Debug().Msg("cache cleared")
}

func (m *Manager) Len() int {
	return m.lru.Len()
}

// Keys lists live keys from least to most recently used.
func (m *Manager) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	keys := make([]string, 0, m.lru.Len())
	for _, key := range m.lru.Keys() {
		if entry, ok := m.lru.Peek(key); ok && !entry.expired(now, m.ttl) {
			keys = append(keys, key)
		}
	}
	return keys
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}
