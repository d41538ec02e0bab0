package export

import (
	"fmt"
	"strings"
	"time"

	"inksearch/internal/domain"
	"inksearch/internal/query"
)

const Version = "1.0"

// Results is one finished search, ready to be written out.
type Results struct {
	Query       query.SearchQuery
	Result      domain.SearchResult
	Suggestions []domain.Suggestion
	GeneratedAt time.Time
}

type ResultsExport struct {
	Version     string              `json:"version"`
	GeneratedAt time.Time           `json:"generated_at"`
	Query       string              `json:"query"`
	Target      string              `json:"target"`
	Page        int                 `json:"page"`
	Limit       int                 `json:"limit"`
	TotalCount  int                 `json:"total_count"`
	Artists     []*ArtistData       `json:"artists"`
	Facets      domain.Facets       `json:"facets,omitempty"`
	Suggestions []domain.Suggestion `json:"suggestions,omitempty"`
}

type ArtistData struct {
	ID         int64    `json:"id,omitempty"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug,omitempty"`
	Styles     []string `json:"styles,omitempty"`
	City       string   `json:"city,omitempty"`
	Postcode   string   `json:"postcode,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Rating     float64  `json:"rating,omitempty"`
	PriceMin   int      `json:"price_min,omitempty"`
	PriceMax   int      `json:"price_max,omitempty"`
	Available  bool     `json:"available"`
}

// CatalogFile is the import/export format of the local artist catalogue.
type CatalogFile struct {
	Version string        `json:"version"`
	Artists []*ArtistData `json:"artists"`
}

type ConflictStrategy string

const (
	ConflictStrategySkip      ConflictStrategy = "skip"
	ConflictStrategyOverwrite ConflictStrategy = "overwrite"
)

type ExportFormat string

const (
	FormatTable    ExportFormat = "table"
	FormatJSON     ExportFormat = "json"
	FormatCSV      ExportFormat = "csv"
	FormatMarkdown ExportFormat = "markdown"
)

var Formats = []ExportFormat{FormatTable, FormatJSON, FormatCSV, FormatMarkdown}

func ParseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be table, json, csv, or markdown", s)
	}
}

func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	switch ConflictStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConflictStrategyOverwrite:
		return ConflictStrategyOverwrite, nil
	case ConflictStrategySkip:
		return ConflictStrategySkip, nil
	default:
		return "", fmt.Errorf("unknown conflict strategy %q: must be skip or overwrite", s)
	}
}

func toArtistData(a domain.Artist) *ArtistData {
	return &ArtistData{
		ID:         a.ID,
		Name:       a.Name,
		Slug:       a.Slug,
		Styles:     a.Styles,
		City:       a.City,
		Postcode:   a.Postcode,
		Difficulty: string(a.Difficulty),
		Rating:     a.Rating,
		PriceMin:   a.PriceMin,
		PriceMax:   a.PriceMax,
		Available:  a.Available,
	}
}

func (d *ArtistData) toArtist() *domain.Artist {
	return &domain.Artist{
		Name:       strings.TrimSpace(d.Name),
		Slug:       d.Slug,
		Styles:     d.Styles,
		City:       strings.TrimSpace(d.City),
		Postcode:   d.Postcode,
		Difficulty: domain.Difficulty(strings.ToLower(d.Difficulty)),
		Rating:     d.Rating,
		PriceMin:   d.PriceMin,
		PriceMax:   d.PriceMax,
		Available:  d.Available,
	}
}
