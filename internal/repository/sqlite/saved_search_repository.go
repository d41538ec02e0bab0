package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"inksearch/internal/domain"
	"inksearch/internal/repository"
)

const savedSearchColumns = `id, name, description, query, is_favorite, hot_key, last_accessed, created_at, updated_at`

type SavedSearchRepository struct {
	db *DB
}

func NewSavedSearchRepository(db *DB) *SavedSearchRepository {
	return &SavedSearchRepository{db: db}
}

type dbSavedSearch struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	Description  sql.NullString `db:"description"`
	Query        string         `db:"query"`
	IsFavorite   bool           `db:"is_favorite"`
	HotKey       sql.NullInt64  `db:"hot_key"`
	LastAccessed sql.NullTime   `db:"last_accessed"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (ds *dbSavedSearch) toSavedSearch() *domain.SavedSearch {
	s := &domain.SavedSearch{
		ID:          ds.ID,
		Name:        ds.Name,
		Description: ds.Description.String,
		Query:       ds.Query,
		IsFavorite:  ds.IsFavorite,
		CreatedAt:   ds.CreatedAt,
		UpdatedAt:   ds.UpdatedAt,
	}

	if ds.HotKey.Valid {
		hotKey := int(ds.HotKey.Int64)
		s.HotKey = &hotKey
	}

	if ds.LastAccessed.Valid {
		s.LastAccessed = &ds.LastAccessed.Time
	}

	return s
}

func (r *SavedSearchRepository) Create(ctx context.Context, s *domain.SavedSearch) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}

	if err := r.checkHotKey(ctx, s.HotKey, 0); err != nil {
		return err
	}

	query := `
		INSERT INTO saved_searches (name, description, query, is_favorite, hot_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		s.Name,
		nullString(s.Description),
		s.Query,
		s.IsFavorite,
		nullInt64Ptr(s.HotKey),
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("saved search %q already exists", s.Name)
		}
		return fmt.Errorf("failed to insert saved search: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	s.ID = id
	return nil
}

func (r *SavedSearchRepository) get(ctx context.Context, where string, arg interface{}, notFound string) (*domain.SavedSearch, error) {
	query := `SELECT ` + savedSearchColumns + ` FROM saved_searches WHERE ` + where

	var ds dbSavedSearch
	err := r.db.GetContext(ctx, &ds, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(notFound)
		}
		return nil, fmt.Errorf("failed to get saved search: %w", err)
	}

	return ds.toSavedSearch(), nil
}

func (r *SavedSearchRepository) GetByID(ctx context.Context, id int64) (*domain.SavedSearch, error) {
	return r.get(ctx, "id = ?", id, fmt.Sprintf("saved search with ID %d not found", id))
}

// names match case-insensitively
func (r *SavedSearchRepository) GetByName(ctx context.Context, name string) (*domain.SavedSearch, error) {
	return r.get(ctx, "name = ? COLLATE NOCASE", strings.TrimSpace(name), fmt.Sprintf("saved search %q not found", name))
}

func (r *SavedSearchRepository) GetByHotKey(ctx context.Context, hotKey int) (*domain.SavedSearch, error) {
	return r.get(ctx, "hot_key = ?", hotKey, fmt.Sprintf("no saved search assigned to hot key %d", hotKey))
}

// rejects a hot key held by a different saved search
func (r *SavedSearchRepository) checkHotKey(ctx context.Context, hotKey *int, ownID int64) error {
	if hotKey == nil {
		return nil
	}

	existing, err := r.GetByHotKey(ctx, *hotKey)
	if err == nil && existing != nil && existing.ID != ownID {
		return fmt.Errorf("hot key %d is already assigned to '%s'", *hotKey, existing.Name)
	}
	return nil
}

func (r *SavedSearchRepository) Update(ctx context.Context, s *domain.SavedSearch) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := r.checkHotKey(ctx, s.HotKey, s.ID); err != nil {
		return err
	}

	now := time.Now()
	query := `
		UPDATE saved_searches
		SET name = ?, description = ?, query = ?, is_favorite = ?, hot_key = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		s.Name,
		nullString(s.Description),
		s.Query,
		s.IsFavorite,
		nullInt64Ptr(s.HotKey),
		now,
		s.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("saved search %q already exists", s.Name)
		}
		return fmt.Errorf("failed to update saved search: %w", err)
	}

	if err := requireAffected(result, fmt.Sprintf("saved search with ID %d not found", s.ID)); err != nil {
		return err
	}

	s.UpdatedAt = now
	return nil
}

func (r *SavedSearchRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved search: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("saved search with ID %d not found", id))
}

func (r *SavedSearchRepository) List(ctx context.Context, filter repository.SavedSearchFilter) ([]*domain.SavedSearch, error) {
	query := `SELECT ` + savedSearchColumns + ` FROM saved_searches`

	var args []interface{}

	if filter.IsFavorite != nil {
		query += " WHERE is_favorite = ?"
		args = append(args, *filter.IsFavorite)
	}

	switch filter.SortBy {
	case "name":
		query += " ORDER BY name COLLATE NOCASE ASC"
	case "last_accessed":
		query += " ORDER BY last_accessed IS NULL, last_accessed DESC, name ASC"
	default:
		// hot keys first, in key order
		query += " ORDER BY hot_key IS NULL, hot_key ASC, created_at DESC, id DESC"
	}

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var rows []dbSavedSearch
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list saved searches: %w", err)
	}

	searches := make([]*domain.SavedSearch, 0, len(rows))
	for i := range rows {
		searches = append(searches, rows[i].toSavedSearch())
	}

	return searches, nil
}

func (r *SavedSearchRepository) SetFavorite(ctx context.Context, id int64, isFavorite bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE saved_searches SET is_favorite = ? WHERE id = ?`, isFavorite, id)
	if err != nil {
		return fmt.Errorf("failed to set favorite: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("saved search with ID %d not found", id))
}

func (r *SavedSearchRepository) RecordAccess(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE saved_searches SET last_accessed = ? WHERE id = ?`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to record access: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("saved search with ID %d not found", id))
}

func requireAffected(result sql.Result, notFound string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New(notFound)
	}

	return nil
}

func nullInt64Ptr(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

var _ repository.SavedSearchRepository = (*SavedSearchRepository)(nil)
