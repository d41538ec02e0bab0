package query

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"inksearch/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MaxRadius    = 500
	MaxRating    = 5.0
)

type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortRating    SortMode = "rating"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortDistance  SortMode = "distance"
	SortNewest    SortMode = "newest"
)

var SortModes = []SortMode{
	SortRelevance,
	SortRating,
	SortPriceAsc,
	SortPriceDesc,
	SortDistance,
	SortNewest,
}

// Input is raw search intent as typed or clicked by a user. Nothing in it is
// trusted until it goes through Normalize.
type Input struct {
	Text       string
	Styles     []string
	City       string
	Postcode   string
	Difficulty []string
	Sort       string
	Page       int
	Limit      int
	Radius     int
	PriceMin   int
	PriceMax   int
	Available  bool
	MinRating  float64
}

// SearchQuery is the canonical, immutable form of an Input. Two queries with
// the same field values produce the same CacheKey no matter how the input
// was ordered or cased.
type SearchQuery struct {
	text       string
	styles     []string
	city       string
	postcode   string
	difficulty []string
	sort       SortMode
	page       int
	limit      int
	radius     int
	priceMin   int
	priceMax   int
	available  bool
	minRating  float64
}

func Normalize(in Input) SearchQuery {
	q := SearchQuery{
		text:       normalizeText(in.Text),
		styles:     normalizeSet(in.Styles),
		city:       normalizeText(in.City),
		postcode:   normalizePostcode(in.Postcode),
		difficulty: normalizeSet(in.Difficulty),
		sort:       normalizeSort(in.Sort),
		page:       in.Page,
		limit:      in.Limit,
		radius:     max(in.Radius, 0),
		priceMin:   max(in.PriceMin, 0),
		priceMax:   max(in.PriceMax, 0),
		available:  in.Available,
		minRating:  math.Max(in.MinRating, 0),
	}

	if math.IsNaN(q.minRating) {
		q.minRating = 0
	}

	if q.page < 1 {
		q.page = DefaultPage
	}
	if q.limit < 1 {
		q.limit = DefaultLimit
	}

	// zero max means unbounded, so only a real pair can be inverted
	if q.priceMax > 0 && q.priceMin > q.priceMax {
		q.priceMin, q.priceMax = q.priceMax, q.priceMin
	}

	return q
}

func (q SearchQuery) Text() string         { return q.text }
func (q SearchQuery) Styles() []string     { return slices.Clone(q.styles) }
func (q SearchQuery) City() string         { return q.city }
func (q SearchQuery) Postcode() string     { return q.postcode }
func (q SearchQuery) Difficulty() []string { return slices.Clone(q.difficulty) }
func (q SearchQuery) Sort() SortMode       { return q.sort }
func (q SearchQuery) Page() int            { return q.page }
func (q SearchQuery) Limit() int           { return q.limit }
func (q SearchQuery) Radius() int          { return q.radius }
func (q SearchQuery) Available() bool      { return q.available }
func (q SearchQuery) MinRating() float64   { return q.minRating }

func (q SearchQuery) PriceRange() (int, int) {
	return q.priceMin, q.priceMax
}

// Input returns an editable copy of the normalized fields.
func (q SearchQuery) Input() Input {
	return Input{
		Text:       q.text,
		Styles:     slices.Clone(q.styles),
		City:       q.city,
		Postcode:   q.postcode,
		Difficulty: slices.Clone(q.difficulty),
		Sort:       string(q.sort),
		Page:       q.page,
		Limit:      q.limit,
		Radius:     q.radius,
		PriceMin:   q.priceMin,
		PriceMax:   q.priceMax,
		Available:  q.available,
		MinRating:  q.minRating,
	}
}

// HasActiveFilters reports whether any field beyond text, page and sort
// differs from its default. A non-default limit counts.
func (q SearchQuery) HasActiveFilters() bool {
	return q.limit != DefaultLimit ||
		len(q.styles) > 0 ||
		q.city != "" ||
		q.postcode != "" ||
		len(q.difficulty) > 0 ||
		q.radius > 0 ||
		q.priceMin > 0 ||
		q.priceMax > 0 ||
		q.available ||
		q.minRating > 0
}

func (q SearchQuery) HasLocation() bool {
	return q.city != "" || q.postcode != ""
}

// IsEmpty is the "no query" case: no text and no filters. A query with only
// filters is not empty.
func (q SearchQuery) IsEmpty() bool {
	return q.text == "" && !q.HasActiveFilters()
}

func (q SearchQuery) Equal(other SearchQuery) bool {
	return q.CacheKey() == other.CacheKey()
}

func (q SearchQuery) Merge(mods ...Modifier) SearchQuery {
	in := q.Input()
	for _, mod := range mods {
		if mod != nil {
			mod(&in)
		}
	}
	return Normalize(in)
}

// WithoutFilters keeps only the free text.
func (q SearchQuery) WithoutFilters() SearchQuery {
	return Normalize(Input{Text: q.text})
}

func (q SearchQuery) WithPage(page int) SearchQuery {
	return q.Merge(SetPage(page))
}

func (q SearchQuery) Validate() error {
	if q.limit > MaxLimit {
		return fmt.Errorf("limit cannot exceed %d", MaxLimit)
	}

	if math.IsNaN(q.minRating) || q.minRating > MaxRating {
		return errors.New("rating must be between 0 and 5")
	}

	if q.radius > MaxRadius {
		return fmt.Errorf("radius cannot exceed %d km", MaxRadius)
	}

	if q.radius > 0 && !q.HasLocation() {
		return errors.New("radius requires a city or postcode")
	}

	for _, style := range q.styles {
		if !domain.IsKnownStyle(style) {
			return fmt.Errorf("unknown style: %s", style)
		}
	}

	for _, level := range q.difficulty {
		if !domain.IsKnownDifficulty(domain.Difficulty(level)) {
			return fmt.Errorf("unknown difficulty: %s", level)
		}
	}

	return nil
}

func normalizeText(s string) string {
	s = norm.NFC.String(s)
	s = normalizeWhitespace(s)
	return cases.Lower(language.Und).String(s)
}

func normalizePostcode(s string) string {
	s = normalizeWhitespace(norm.NFC.String(s))
	return cases.Upper(language.Und).String(s)
}

// "Old School", "old-school" and "old_school" are the same term
func normalizeTerm(s string) string {
	s = normalizeText(s)
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

func normalizeSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if term := normalizeTerm(v); term != "" {
			out = append(out, term)
		}
	}
	if len(out) == 0 {
		return nil
	}

	slices.Sort(out)
	return slices.Compact(out)
}

func normalizeSort(s string) SortMode {
	mode := SortMode(normalizeTerm(s))
	if slices.Contains(SortModes, mode) {
		return mode
	}
	return SortRelevance
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
