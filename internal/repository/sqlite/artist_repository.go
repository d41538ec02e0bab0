package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"inksearch/internal/domain"
	"inksearch/internal/query"
	"inksearch/internal/repository"
)

type ArtistRepository struct {
	db *DB
}

func NewArtistRepository(db *DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

const artistColumns = "id, name, slug, styles, city, postcode, difficulty, rating, price_min, price_max, available"

type dbArtist struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	Slug       string         `db:"slug"`
	Styles     sql.NullString `db:"styles"`
	City       string         `db:"city"`
	Postcode   sql.NullString `db:"postcode"`
	Difficulty sql.NullString `db:"difficulty"`
	Rating     float64        `db:"rating"`
	PriceMin   int            `db:"price_min"`
	PriceMax   int            `db:"price_max"`
	Available  bool           `db:"available"`
}

// converts dbArtist to a domain.Artist
func (da *dbArtist) toArtist() (*domain.Artist, error) {
	artist := &domain.Artist{
		ID:        da.ID,
		Name:      da.Name,
		Slug:      da.Slug,
		City:      da.City,
		Rating:    da.Rating,
		PriceMin:  da.PriceMin,
		PriceMax:  da.PriceMax,
		Available: da.Available,
	}

	// parse styles JSON
	if da.Styles.Valid && da.Styles.String != "" {
		if err := json.Unmarshal([]byte(da.Styles.String), &artist.Styles); err != nil {
			return nil, fmt.Errorf("failed to parse styles: %w", err)
		}
	}
	if artist.Styles == nil {
		artist.Styles = make([]string, 0)
	}

	if da.Postcode.Valid {
		artist.Postcode = da.Postcode.String
	}
	if da.Difficulty.Valid {
		artist.Difficulty = domain.Difficulty(da.Difficulty.String)
	}

	return artist, nil
}

func prepareArtist(artist *domain.Artist) (string, error) {
	if err := artist.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	if artist.Slug == "" {
		artist.Slug = domain.Slugify(artist.Name)
	}
	if artist.Styles == nil {
		artist.Styles = make([]string, 0)
	}
	artist.Postcode = strings.ToUpper(strings.TrimSpace(artist.Postcode))

	stylesJSON, err := json.Marshal(artist.Styles)
	if err != nil {
		return "", fmt.Errorf("failed to marshal styles: %w", err)
	}

	return string(stylesJSON), nil
}

// insert a new artist
func (r *ArtistRepository) Create(ctx context.Context, artist *domain.Artist) error {
	stylesJSON, err := prepareArtist(artist)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO artists (name, slug, styles, city, postcode, difficulty, rating, price_min, price_max, available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		artist.Name,
		artist.Slug,
		stylesJSON,
		artist.City,
		nullString(artist.Postcode),
		nullString(string(artist.Difficulty)),
		artist.Rating,
		artist.PriceMin,
		artist.PriceMax,
		artist.Available,
	)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	artist.ID = id
	return nil
}

// insert or replace by slug, used by catalogue imports
func (r *ArtistRepository) Upsert(ctx context.Context, artist *domain.Artist) error {
	stylesJSON, err := prepareArtist(artist)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO artists (name, slug, styles, city, postcode, difficulty, rating, price_min, price_max, available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			styles = excluded.styles,
			city = excluded.city,
			postcode = excluded.postcode,
			difficulty = excluded.difficulty,
			rating = excluded.rating,
			price_min = excluded.price_min,
			price_max = excluded.price_max,
			available = excluded.available
	`

	if _, err := r.db.ExecContext(ctx, query,
		artist.Name,
		artist.Slug,
		stylesJSON,
		artist.City,
		nullString(artist.Postcode),
		nullString(string(artist.Difficulty)),
		artist.Rating,
		artist.PriceMin,
		artist.PriceMax,
		artist.Available,
	); err != nil {
		return fmt.Errorf("failed to upsert artist: %w", err)
	}

	// LastInsertId is unreliable for the update branch
	var id int64
	if err := r.db.GetContext(ctx, &id, `SELECT id FROM artists WHERE slug = ?`, artist.Slug); err != nil {
		return fmt.Errorf("failed to get artist ID: %w", err)
	}

	artist.ID = id
	return nil
}

// get an artist by its ID
func (r *ArtistRepository) GetByID(ctx context.Context, id int64) (*domain.Artist, error) {
	query := "SELECT " + artistColumns + " FROM artists WHERE id = ?"

	var row dbArtist
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("artist not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}

	return row.toArtist()
}

func (r *ArtistRepository) GetBySlug(ctx context.Context, slug string) (*domain.Artist, error) {
	query := "SELECT " + artistColumns + " FROM artists WHERE slug = ?"

	var row dbArtist
	if err := r.db.GetContext(ctx, &row, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("artist not found: %s", slug)
		}
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}

	return row.toArtist()
}

// count artists with filtering (for pagination)
func (r *ArtistRepository) Count(ctx context.Context, filter repository.ArtistFilter) (int64, error) {
	query, args := r.buildWhereClause(filter, true)

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count artists: %w", err)
	}

	return count, nil
}

// get all artists (with filters)
func (r *ArtistRepository) List(ctx context.Context, filter repository.ArtistFilter) ([]*domain.Artist, error) {
	query, args := r.buildWhereClause(filter, false)

	orderClause, orderArgs := r.buildOrderClause(filter)
	query += orderClause
	args = append(args, orderArgs...)

	// add pagination
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)

		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	var rows []dbArtist
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}

	artists := make([]*domain.Artist, 0, len(rows))
	for _, row := range rows {
		artist, err := row.toArtist()
		if err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}

	return artists, nil
}

// constructs the WHERE clause with all filters
func (r *ArtistRepository) buildWhereClause(filter repository.ArtistFilter, isCount bool) (string, []interface{}) {
	var query string
	if isCount {
		query = "SELECT COUNT(*) FROM artists WHERE 1=1"
	} else {
		query = "SELECT " + artistColumns + " FROM artists WHERE 1=1"
	}

	args := make([]interface{}, 0)

	// every word has to hit the name, the city or a style
	for _, word := range strings.Fields(filter.Text) {
		pattern := likePattern(word)
		query += ` AND (
			name LIKE ? ESCAPE '\' OR
			city LIKE ? ESCAPE '\' OR
			styles LIKE ? ESCAPE '\'
		)`
		args = append(args, pattern, pattern, pattern)
	}

	// any of the requested styles
	if len(filter.Styles) > 0 {
		styleQuery, styleArgs := buildINQuery(
			" AND EXISTS (SELECT 1 FROM json_each(artists.styles) WHERE value IN (?))",
			filter.Styles,
		)
		query += styleQuery
		args = append(args, styleArgs...)
	}

	if len(filter.Difficulty) > 0 {
		levelQuery, levelArgs := buildINQuery(" AND difficulty IN (?)", filter.Difficulty)
		query += levelQuery
		args = append(args, levelArgs...)
	}

	if filter.City != "" {
		query += " AND city = ? COLLATE NOCASE"
		args = append(args, filter.City)
	}
	if filter.Postcode != "" {
		query += ` AND postcode LIKE ? ESCAPE '\'`
		args = append(args, prefixPattern(filter.Postcode))
	}

	// price ranges overlap
	if filter.PriceMin > 0 {
		query += " AND price_max >= ?"
		args = append(args, filter.PriceMin)
	}
	if filter.PriceMax > 0 {
		query += " AND price_min <= ?"
		args = append(args, filter.PriceMax)
	}

	if filter.Available {
		query += " AND available = 1"
	}
	if filter.MinRating > 0 {
		query += " AND rating >= ?"
		args = append(args, filter.MinRating)
	}

	return query, args
}

// constructs the ORDER BY clause
func (r *ArtistRepository) buildOrderClause(filter repository.ArtistFilter) (string, []interface{}) {
	switch filter.Sort {
	case query.SortRating:
		return " ORDER BY rating DESC, name ASC", nil
	case query.SortPriceAsc:
		return " ORDER BY price_min ASC, name ASC", nil
	case query.SortPriceDesc:
		return " ORDER BY price_max DESC, name ASC", nil
	case query.SortDistance:
		// the catalogue has no coordinates, nearest postcode district first
		return " ORDER BY postcode IS NULL, postcode ASC, name ASC", nil
	case query.SortNewest:
		return " ORDER BY created_at DESC, id DESC", nil
	}

	// relevance: name hits before style or city hits, then rating
	if filter.Text != "" {
		return ` ORDER BY CASE WHEN name LIKE ? ESCAPE '\' THEN 0 ELSE 1 END, rating DESC, name ASC`,
			[]interface{}{likePattern(filter.Text)}
	}
	return " ORDER BY rating DESC, name ASC", nil
}

// remove an artist
func (r *ArtistRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("artist not found: %d", id)
	}

	return nil
}

// Search runs a canonical query against the catalogue. Every failure is
// returned as a *domain.SearchError.
func (r *ArtistRepository) Search(ctx context.Context, q query.SearchQuery) (domain.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return domain.SearchResult{}, domain.NewValidationError(err.Error(), err)
	}

	filter := repository.NewArtistFilter(q)

	total, err := r.Count(ctx, filter)
	if err != nil {
		return domain.SearchResult{}, catalogueError(ctx, err)
	}

	artists, err := r.List(ctx, filter)
	if err != nil {
		return domain.SearchResult{}, catalogueError(ctx, err)
	}

	items := make([]domain.Artist, 0, len(artists))
	for _, artist := range artists {
		items = append(items, *artist)
	}

	return domain.SearchResult{Items: items, TotalCount: int(total)}, nil
}

func catalogueError(ctx context.Context, err error) *domain.SearchError {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewNetworkError(err)
	}
	return &domain.SearchError{Kind: domain.ErrorServer, Message: "catalogue query failed", Err: err}
}
