package search

import (
	"slices"
	"time"

	"inksearch/internal/domain"
	"inksearch/internal/query"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseDebouncing Phase = "debouncing"
	PhaseFetching   Phase = "fetching"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// SearchState is what every display surface renders. Listeners always get
// their own copy.
type SearchState struct {
	Phase       Phase
	Query       query.SearchQuery
	Items       []domain.Artist
	TotalCount  int
	Facets      domain.Facets
	Suggestions []domain.Suggestion
	Loading     bool
	Error       *domain.SearchError
	CacheHit    bool
	Duration    time.Duration
	UpdatedAt   time.Time

	// bumped on every transition
	Version uint64
}

func initialState() SearchState {
	return SearchState{
		Phase: PhaseIdle,
		Query: query.Normalize(query.Input{}),
		Items: []domain.Artist{},
	}
}

func (s SearchState) Clone() SearchState {
	out := s
	out.Items = make([]domain.Artist, len(s.Items))
	for i, item := range s.Items {
		out.Items[i] = item.Clone()
	}
	out.Facets = s.Facets.Clone()
	out.Suggestions = slices.Clone(s.Suggestions)
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	return out
}

func (s SearchState) IsIdle() bool {
	return s.Phase == PhaseIdle
}

func (s SearchState) Failed() bool {
	return s.Phase == PhaseFailed
}

// Settled reports whether no work is pending or in flight.
func (s SearchState) Settled() bool {
	return s.Phase == PhaseIdle || s.Phase == PhaseSucceeded || s.Phase == PhaseFailed
}

func (s SearchState) HasResults() bool {
	return s.Phase == PhaseSucceeded && len(s.Items) > 0
}
