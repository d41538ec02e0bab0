package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"inksearch/internal/query"
	"inksearch/internal/repository"
)

type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Convert(r Results) *ResultsExport {
	artists := make([]*ArtistData, 0, len(r.Result.Items))
	for _, a := range r.Result.Items {
		artists = append(artists, toArtistData(a))
	}

	return &ResultsExport{
		Version:     Version,
		GeneratedAt: r.GeneratedAt,
		Query:       query.Format(r.Query),
		Target:      r.Query.Target(),
		Page:        r.Query.Page(),
		Limit:       r.Query.Limit(),
		TotalCount:  r.Result.TotalCount,
		Artists:     artists,
		Facets:      r.Result.Facets,
		Suggestions: r.Suggestions,
	}
}

func (e *JSONExporter) ExportResults(w io.Writer, r Results) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(e.Convert(r)); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

// ExportCatalog writes every artist in the catalogue in the import format.
func (e *JSONExporter) ExportCatalog(ctx context.Context, w io.Writer, repo repository.ArtistRepository) error {
	artists, err := repo.List(ctx, repository.ArtistFilter{Sort: query.SortRelevance})
	if err != nil {
		return fmt.Errorf("failed to list artists: %w", err)
	}

	file := CatalogFile{Version: Version, Artists: make([]*ArtistData, 0, len(artists))}
	for _, a := range artists {
		d := toArtistData(*a)
		d.ID = 0
		file.Artists = append(file.Artists, d)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(file); err != nil {
		return fmt.Errorf("failed to encode catalogue: %w", err)
	}
	return nil
}
