package repository

import (
	"context"

	"inksearch/internal/domain"
)

type SavedSearchRepository interface {
	Create(ctx context.Context, s *domain.SavedSearch) error
	GetByID(ctx context.Context, id int64) (*domain.SavedSearch, error)
	GetByName(ctx context.Context, name string) (*domain.SavedSearch, error)
	Update(ctx context.Context, s *domain.SavedSearch) error
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, filter SavedSearchFilter) ([]*domain.SavedSearch, error)

	GetByHotKey(ctx context.Context, hotKey int) (*domain.SavedSearch, error)
	SetFavorite(ctx context.Context, id int64, isFavorite bool) error
	RecordAccess(ctx context.Context, id int64) error
}

type SavedSearchFilter struct {
	IsFavorite *bool
	SortBy     string // name, created_at or last_accessed
	Limit      int
}
