package history

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"inksearch/internal/domain"
	"inksearch/internal/query"
)

const (
	DefaultCapacity = 50
	StorageKey      = "search_history"
)

// Store keeps the most recent searches, newest first and unique by label.
// Every change rewrites the whole list under a single storage key. When
// storage is missing or fails, the store carries on in memory.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	key      string
	capacity int
	entries  []domain.HistoryEntry
	now      func() time.Time
	log      zerolog.Logger
}

type Option func(*Store)

func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log.With().Str("component", "history").Logger() }
}

// New loads any persisted history. storage may be nil.
func New(ctx context.Context, storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		key:      StorageKey,
		capacity: DefaultCapacity,
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.storage == nil {
		s.log.Debug().Msg("no durable storage, history is session only")
		return s
	}

	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	raw, ok, err := s.storage.GetString(ctx, s.key)
	if err != nil {
		s.degrade(err, "read")
		return
	}
	if !ok || raw == "" {
		return
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warn().Err(err).Msg("stored history is unreadable, starting fresh")
		return
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Validate() != nil || seen[e.Label] {
			continue
		}
		seen[e.Label] = true
		s.entries = append(s.entries, e)
	}

	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}

	s.log.Debug().Int("entries", len(s.entries)).Msg("history loaded")
}

// Label is the display text a query is remembered by, capped at
// domain.MaxHistoryLabelLength runes.
func Label(q query.SearchQuery) string {
	return capLabel(label(q))
}

func label(q query.SearchQuery) string {
	if q.Text() != "" {
		return q.Text()
	}

	if styles := q.Styles(); len(styles) > 0 {
		names := make([]string, len(styles))
		for i, style := range styles {
			names[i] = domain.StyleLabel(style)
		}
		return strings.Join(names, ", ") + " artists"
	}

	if q.City() != "" {
		return "Artists in " + cases.Title(language.Und).String(q.City())
	}

	if q.Postcode() != "" {
		return "Artists near " + q.Postcode()
	}

	return "Filtered search"
}

func capLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= domain.MaxHistoryLabelLength {
		return s
	}
	return strings.TrimSpace(string(runes[:domain.MaxHistoryLabelLength-1])) + "…"
}

// Record moves the query's label to the front, trimming the oldest entry
// when over capacity, and persists the list.
func (s *Store) Record(ctx context.Context, q query.SearchQuery, target string, resultCount int) domain.HistoryEntry {
	if target == "" {
		target = q.Target()
	}

	entry := domain.HistoryEntry{
		Label:       Label(q),
		Target:      target,
		ResultCount: max(resultCount, 0),
		Timestamp:   s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = slices.DeleteFunc(s.entries, func(e domain.HistoryEntry) bool {
		return e.Label == entry.Label
	})
	s.entries = slices.Insert(s.entries, 0, entry)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}

	s.persistLocked(ctx)
	return entry
}

// List returns entries newest first.
func (s *Store) List() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) Remove(ctx context.Context, label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.entries)
	s.entries = slices.DeleteFunc(s.entries, func(e domain.HistoryEntry) bool {
		return e.Label == label
	})
	if len(s.entries) == before {
		return false
	}

	s.persistLocked(ctx)
	return true
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if s.storage == nil {
		return
	}
	if err := s.storage.RemoveKey(ctx, s.key); err != nil {
		s.degrade(err, "remove")
	}
}

// Durable reports whether changes still reach storage.
func (s *Store) Durable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage != nil
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.storage == nil {
		return
	}

	data, err := json.Marshal(s.entries)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode history")
		return
	}

	if err := s.storage.SetString(ctx, s.key, string(data)); err != nil {
		s.degrade(err, "write")
	}
}

func (s *Store) degrade(err error, op string) {
	s.log.Warn().Err(err).Str("op", op).Msg("history storage failed, continuing in memory")
	s.storage = nil
}
