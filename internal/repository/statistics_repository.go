package repository

import (
	"context"

	"inksearch/internal/domain"
)

type StatisticsRepository interface {
	// top bounds the style and city rankings
	GetCatalogueStatistics(ctx context.Context, top int) (*domain.CatalogueStats, error)
}
