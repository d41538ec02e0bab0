package suggest

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"inksearch/internal/domain"
	"inksearch/internal/fuzzy"
	"inksearch/internal/query"
)

const (
	DefaultFewResultsThreshold = 3
	DefaultMaxPopular          = 3
	DefaultSpellingThreshold   = 70
)

type PopularSearch struct {
	Label string
	Query string // query-language form
}

var DefaultPopular = []PopularSearch{
	{Label: "Japanese sleeves", Query: "sleeve style:japanese"},
	{Label: "Fine line florals", Query: "flowers style:fineline,floral"},
	{Label: "Blackwork", Query: "style:blackwork"},
	{Label: "Traditional flash", Query: "flash style:traditional"},
	{Label: "Minimalist first tattoos", Query: "style:minimalist level:beginner"},
	{Label: "Realism portraits", Query: "portrait style:realism"},
	{Label: "Available this week", Query: "available:yes"},
}

type Config struct {
	FewResultsThreshold int
	MaxPopular          int
	SpellingThreshold   int
	Popular             []PopularSearch
}

func DefaultConfig() Config {
	return Config{
		FewResultsThreshold: DefaultFewResultsThreshold,
		MaxPopular:          DefaultMaxPopular,
		SpellingThreshold:   DefaultSpellingThreshold,
		Popular:             DefaultPopular,
	}
}

type popularEntry struct {
	PopularSearch
	parsed query.SearchQuery
}

// Engine derives recovery suggestions from a finished search. It holds no
// per-search state and is safe for concurrent use.
type Engine struct {
	fewResults int
	maxPopular int
	spelling   int
	popular    []popularEntry
	dictionary []string
}

func New(cfg Config) (*Engine, error) {
	if cfg.FewResultsThreshold < 0 {
		return nil, errors.New("few results threshold cannot be negative")
	}
	if cfg.MaxPopular < 0 {
		return nil, errors.New("max popular cannot be negative")
	}

	e := &Engine{
		fewResults: cfg.FewResultsThreshold,
		maxPopular: cfg.MaxPopular,
		spelling:   cfg.SpellingThreshold,
	}

	words := map[string]bool{}
	addWords := func(s string) {
		for _, w := range strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '_' }) {
			words[strings.ToLower(w)] = true
		}
	}
	for _, style := range domain.KnownStyles {
		addWords(style)
	}

	for _, p := range cfg.Popular {
		in, err := query.Parse(p.Query)
		if err != nil {
			return nil, fmt.Errorf("invalid popular search %q: %w", p.Label, err)
		}
		parsed := query.Normalize(in)
		e.popular = append(e.popular, popularEntry{PopularSearch: p, parsed: parsed})
		addWords(parsed.Text())
	}

	for w := range words {
		e.dictionary = append(e.dictionary, w)
	}
	slices.Sort(e.dictionary)

	return e, nil
}

func (e *Engine) FewResultsThreshold() int {
	return e.fewResults
}

// ForResults returns suggestions for a successful search: the no-results set
// when nothing matched, the few-results set below the threshold, otherwise
// none.
func (e *Engine) ForResults(q query.SearchQuery, total int) []domain.Suggestion {
	switch {
	case total <= 0:
		return e.noResults(q)
	case total < e.fewResults:
		return e.fewResultsSet(q)
	default:
		return nil
	}
}

func (e *Engine) ForError(q query.SearchQuery, kind domain.ErrorKind) []domain.Suggestion {
	if kind == domain.ErrorNotFound {
		return e.noResults(q)
	}

	out := slices.Clone(errorSuggestions[kind])
	if kind == domain.ErrorServer {
		out = append(out, e.popularFor(q, 1)...)
	}
	return out
}

func (e *Engine) noResults(q query.SearchQuery) []domain.Suggestion {
	var out []domain.Suggestion

	if q.Text() != "" {
		if corrected, ok := e.correctSpelling(q.Text()); ok {
			out = append(out, domain.Suggestion{
				Label:  fmt.Sprintf("Did you mean %q?", corrected),
				Query:  query.Format(q.Merge(query.SetText(corrected), query.SetPage(1))),
				Action: domain.ActionCheckSpelling,
			})
		} else {
			out = append(out, domain.Suggestion{
				Label:  "Check your spelling",
				Action: domain.ActionCheckSpelling,
			})
		}
	}

	out = append(out, e.narrowingFixes(q)...)
	out = append(out, e.popularFor(q, e.maxPopular)...)
	return out
}

func (e *Engine) fewResultsSet(q query.SearchQuery) []domain.Suggestion {
	out := e.narrowingFixes(q)
	return append(out, e.popularFor(q, e.maxPopular)...)
}

func (e *Engine) narrowingFixes(q query.SearchQuery) []domain.Suggestion {
	var out []domain.Suggestion

	if q.HasActiveFilters() {
		out = append(out, domain.Suggestion{
			Label:  "Remove some filters",
			Action: domain.ActionBroadenFilters,
		})
	}

	if q.HasLocation() {
		out = append(out, domain.Suggestion{
			Label:  "Try a nearby location",
			Action: domain.ActionTryNearby,
		})
	}

	return out
}

// popular searches, skipping the one that was just run
func (e *Engine) popularFor(q query.SearchQuery, limit int) []domain.Suggestion {
	var out []domain.Suggestion
	for _, p := range e.popular {
		if len(out) >= limit {
			break
		}
		if p.parsed.Equal(q) || (q.Text() != "" && p.parsed.Text() == q.Text()) {
			continue
		}
		out = append(out, domain.Suggestion{
			Label:  p.Label,
			Query:  p.Query,
			Action: domain.ActionPopular,
		})
	}
	return out
}

func (e *Engine) correctSpelling(text string) (string, bool) {
	words := strings.Fields(text)
	changed := false

	for i, w := range words {
		if slices.Contains(e.dictionary, w) {
			continue
		}
		if better, _, ok := fuzzy.Closest(w, e.dictionary, e.spelling); ok {
			words[i] = better
			changed = true
		}
	}

	if !changed {
		return "", false
	}
	return strings.Join(words, " "), true
}

var errorSuggestions = map[domain.ErrorKind][]domain.Suggestion{
	domain.ErrorValidation: {
		{Label: "Check your filters", Action: domain.ActionCheckSpelling},
		{Label: "Clear all filters", Action: domain.ActionBroadenFilters},
	},
	domain.ErrorNetwork: {
		{Label: "Try Again", Action: domain.ActionRetry},
		{Label: "Check your connection", Action: domain.ActionCheckConnection},
	},
	domain.ErrorServer: {
		{Label: "Try Again", Action: domain.ActionRetry},
	},
	domain.ErrorRateLimit: {
		{Label: "Wait a moment", Action: domain.ActionWait},
		{Label: "Try Again", Action: domain.ActionRetry},
	},
	domain.ErrorAuth: {
		{Label: "Sign in again", Action: domain.ActionSignIn},
	},
}
