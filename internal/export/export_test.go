package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inksearch/internal/domain"
	"inksearch/internal/facets"
	"inksearch/internal/query"
	"inksearch/internal/repository"
)

func sampleResults() Results {
	items := []domain.Artist{
		{ID: 1, Name: "Ink & Iron", Slug: "ink-iron", Styles: []string{"traditional", "old_school"}, City: "London", Postcode: "E1 6AN", Difficulty: domain.DifficultyBeginner, Rating: 4.8, PriceMin: 80, PriceMax: 150, Available: true},
		{ID: 2, Name: "Koi | Studio", Slug: "koi-studio", Styles: []string{"japanese"}, City: "London", Difficulty: domain.DifficultyAdvanced, Rating: 4.9, PriceMin: 200, PriceMax: 600},
	}

	return Results{
		Query: query.Normalize(query.Input{Text: "ink", City: "London"}),
		Result: domain.SearchResult{
			Items:      items,
			TotalCount: 2,
			Facets:     facets.Compute(items),
		},
		Suggestions: []domain.Suggestion{{Label: "Clear all filters", Action: domain.ActionBroadenFilters}},
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseConflictStrategy(t *testing.T) {
	s, err := ParseConflictStrategy("")
	require.NoError(t, err)
	assert.Equal(t, ConflictStrategyOverwrite, s)

	s, err = ParseConflictStrategy("Skip")
	require.NoError(t, err)
	assert.Equal(t, ConflictStrategySkip, s)

	_, err = ParseConflictStrategy("merge")
	assert.Error(t, err)
}

func TestJSONExporter_ExportResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONExporter().ExportResults(&buf, sampleResults()))

	var out ResultsExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, Version, out.Version)
	assert.Equal(t, sampleResults().Query.Target(), out.Target)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.Limit)
	assert.Equal(t, 2, out.TotalCount)
	require.Len(t, out.Artists, 2)
	assert.Equal(t, "Ink & Iron", out.Artists[0].Name)
	assert.Equal(t, []string{"traditional", "old_school"}, out.Artists[0].Styles)
	assert.Equal(t, 2, out.Facets.Count(domain.FacetLocation, "London"))
	assert.Len(t, out.Suggestions, 1)
}

func TestJSONExporter_EmptyResults(t *testing.T) {
	var buf bytes.Buffer
	r := Results{Query: query.Normalize(query.Input{Text: "nothing"})}
	require.NoError(t, NewJSONExporter().ExportResults(&buf, r))

	assert.Contains(t, buf.String(), `"artists": []`)
}

func TestCSVExporter_ExportResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().ExportResults(&buf, sampleResults()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Name", records[0][1])
	assert.Equal(t, []string{"1", "Ink & Iron", "traditional;old_school", "London", "E1 6AN", "beginner", "4.8", "80", "150", "true"}, records[1])
	assert.Equal(t, "Koi | Studio", records[2][1])
	assert.Equal(t, "false", records[2][9])
}

func TestMarkdownExporter_ExportResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownExporter().ExportResults(&buf, sampleResults()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# ink\n"))
	assert.Contains(t, out, "2 result(s), page 1")
	assert.Contains(t, out, "| Ink & Iron |")
	assert.Contains(t, out, `Koi \| Studio`)
	assert.Contains(t, out, "## Facets")
	assert.Contains(t, out, "London (2)")
	assert.Contains(t, out, "## Suggestions")
	assert.Contains(t, out, "- Clear all filters")
}

func TestMarkdownExporter_NoResults(t *testing.T) {
	var buf bytes.Buffer
	r := Results{Query: query.Normalize(query.Input{Styles: []string{"tribal"}})}
	require.NoError(t, NewMarkdownExporter().ExportResults(&buf, r))

	out := buf.String()
	assert.Contains(t, out, "# Tribal artists")
	assert.Contains(t, out, "0 result(s)")
	assert.NotContains(t, out, "| Artist |")
	assert.NotContains(t, out, "## Facets")
}

// in-memory catalogue keyed by slug
type fakeArtistRepo struct {
	repository.ArtistRepository
	bySlug  map[string]*domain.Artist
	nextID  int64
	failOn  string
	upserts int
}

func newFakeArtistRepo() *fakeArtistRepo {
	return &fakeArtistRepo{bySlug: make(map[string]*domain.Artist)}
}

func (f *fakeArtistRepo) Upsert(_ context.Context, a *domain.Artist) error {
	if a.Name == f.failOn {
		return fmt.Errorf("validation failed")
	}
	f.upserts++
	if existing, ok := f.bySlug[a.Slug]; ok {
		a.ID = existing.ID
	} else {
		f.nextID++
		a.ID = f.nextID
	}
	stored := a.Clone()
	f.bySlug[a.Slug] = &stored
	return nil
}

func (f *fakeArtistRepo) GetBySlug(_ context.Context, slug string) (*domain.Artist, error) {
	a, ok := f.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("artist not found: %s", slug)
	}
	return a, nil
}

func (f *fakeArtistRepo) List(_ context.Context, _ repository.ArtistFilter) ([]*domain.Artist, error) {
	out := make([]*domain.Artist, 0, len(f.bySlug))
	for id := int64(1); id <= f.nextID; id++ {
		for _, a := range f.bySlug {
			if a.ID == id {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

const catalogJSON = `{
  "version": "1.0",
  "artists": [
    {"name": "Ink & Iron", "styles": ["traditional"], "city": "London", "difficulty": "Beginner", "rating": 4.8, "available": true},
    {"name": "Koi Studio", "slug": "koi", "styles": ["japanese"], "city": "London", "rating": 4.9}
  ]
}`

func TestImporter_ImportCatalog(t *testing.T) {
	repo := newFakeArtistRepo()
	stats, err := NewImporter(repo).ImportCatalog(context.Background(), strings.NewReader(catalogJSON), ConflictStrategyOverwrite)
	require.NoError(t, err)

	assert.Equal(t, ImportStats{Imported: 2}, stats)
	require.Contains(t, repo.bySlug, "ink-iron")
	require.Contains(t, repo.bySlug, "koi")
	assert.Equal(t, domain.DifficultyBeginner, repo.bySlug["ink-iron"].Difficulty)
}

func TestImporter_BareArray(t *testing.T) {
	repo := newFakeArtistRepo()
	in := "\n  [{\"name\": \"Dot & Line\", \"styles\": [\"dotwork\"]}]"

	stats, err := NewImporter(repo).ImportCatalog(context.Background(), strings.NewReader(in), ConflictStrategyOverwrite)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Imported)
	assert.Contains(t, repo.bySlug, "dot-line")
}

func TestImporter_ConflictStrategies(t *testing.T) {
	ctx := context.Background()
	repo := newFakeArtistRepo()
	importer := NewImporter(repo)

	_, err := importer.ImportCatalog(ctx, strings.NewReader(catalogJSON), ConflictStrategyOverwrite)
	require.NoError(t, err)

	updated := strings.Replace(catalogJSON, `"rating": 4.9`, `"rating": 4.1`, 1)

	stats, err := importer.ImportCatalog(ctx, strings.NewReader(updated), ConflictStrategySkip)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Skipped: 2}, stats)
	assert.Equal(t, 4.9, repo.bySlug["koi"].Rating)

	stats, err = importer.ImportCatalog(ctx, strings.NewReader(updated), ConflictStrategyOverwrite)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Imported: 2}, stats)
	assert.Equal(t, 4.1, repo.bySlug["koi"].Rating)
	assert.Equal(t, int64(2), repo.bySlug["koi"].ID)
}

func TestImporter_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "failed to read catalogue"},
		{"malformed", "{not json", "failed to decode catalogue"},
		{"missing artists", `{"version": "1.0"}`, "no artists"},
		{"bad artist", `[{"name": "ok"}, {"name": "broken"}]`, "artist 2 (broken)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeArtistRepo()
			repo.failOn = "broken"

			_, err := NewImporter(repo).ImportCatalog(ctx, strings.NewReader(tt.input), ConflictStrategyOverwrite)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestJSONExporter_CatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newFakeArtistRepo()
	_, err := NewImporter(src).ImportCatalog(ctx, strings.NewReader(catalogJSON), ConflictStrategyOverwrite)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONExporter().ExportCatalog(ctx, &buf, src))
	assert.NotContains(t, buf.String(), `"id"`)

	dst := newFakeArtistRepo()
	stats, err := NewImporter(dst).ImportCatalog(ctx, &buf, ConflictStrategyOverwrite)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, []string{"traditional"}, dst.bySlug["ink-iron"].Styles)
}
