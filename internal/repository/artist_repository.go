package repository

import (
	"context"

	"inksearch/internal/domain"
	"inksearch/internal/query"
)

type ArtistRepository interface {
	Create(ctx context.Context, artist *domain.Artist) error
	Upsert(ctx context.Context, artist *domain.Artist) error
	GetByID(ctx context.Context, id int64) (*domain.Artist, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Artist, error)
	List(ctx context.Context, filter ArtistFilter) ([]*domain.Artist, error)
	Count(ctx context.Context, filter ArtistFilter) (int64, error)
	Delete(ctx context.Context, id int64) error

	// Search runs a canonical query against the catalogue.
	Search(ctx context.Context, q query.SearchQuery) (domain.SearchResult, error)
}

// filtering options for artist lists
type ArtistFilter struct {
	// free text, every word must match name, city or a style
	Text string

	// any of these styles / levels
	Styles     []string
	Difficulty []string

	City     string
	Postcode string // prefix match

	PriceMin  int
	PriceMax  int
	Available bool
	MinRating float64

	// sorting
	Sort query.SortMode

	// pagination
	Limit  int // max number of results (0 = no limit)
	Offset int // number of results to skip
}

// NewArtistFilter maps a canonical query onto catalogue filters.
func NewArtistFilter(q query.SearchQuery) ArtistFilter {
	minPrice, maxPrice := q.PriceRange()
	return ArtistFilter{
		Text:       q.Text(),
		Styles:     q.Styles(),
		Difficulty: q.Difficulty(),
		City:       q.City(),
		Postcode:   q.Postcode(),
		PriceMin:   minPrice,
		PriceMax:   maxPrice,
		Available:  q.Available(),
		MinRating:  q.MinRating(),
		Sort:       q.Sort(),
		Limit:      q.Limit(),
		Offset:     (q.Page() - 1) * q.Limit(),
	}
}
