package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"inksearch/internal/domain"
	"inksearch/internal/repository"
)

type StatisticsRepository struct {
	db *DB
}

func NewStatisticsRepository(db *DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

func (r *StatisticsRepository) GetCatalogueStatistics(ctx context.Context, top int) (*domain.CatalogueStats, error) {
	stats := domain.NewCatalogueStats()

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(available), 0),
			COALESCE(AVG(rating), 0),
			COALESCE(MIN(price_min), 0),
			COALESCE(MAX(price_max), 0)
		FROM artists
	`).Scan(&stats.TotalArtists, &stats.AvailableArtists, &stats.AverageRating, &stats.LowestPrice, &stats.HighestPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalogue totals: %w", err)
	}

	levelCounts, err := r.getCountsByDifficulty(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get level counts: %w", err)
	}

	stats.BeginnerArtists = levelCounts[string(domain.DifficultyBeginner)]
	stats.IntermediateArtists = levelCounts[string(domain.DifficultyIntermediate)]
	stats.AdvancedArtists = levelCounts[string(domain.DifficultyAdvanced)]
	stats.UnlevelledArtists = levelCounts[""]

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM artists
		WHERE created_at >= datetime('now', '-7 days')
	`).Scan(&stats.RecentArtists)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent count: %w", err)
	}

	if top > 0 {
		stats.TopStyles, err = r.getTopStyles(ctx, top)
		if err != nil {
			return nil, fmt.Errorf("failed to get top styles: %w", err)
		}

		stats.TopCities, err = r.getTopCities(ctx, top)
		if err != nil {
			return nil, fmt.Errorf("failed to get top cities: %w", err)
		}
	}

	return stats, nil
}

func (r *StatisticsRepository) getCountsByDifficulty(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT difficulty, COUNT(*) as count
		FROM artists
		GROUP BY difficulty
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var difficulty sql.NullString
		var count int
		if err := rows.Scan(&difficulty, &count); err != nil {
			return nil, err
		}
		counts[difficulty.String] += count
	}

	return counts, rows.Err()
}

func (r *StatisticsRepository) getTopStyles(ctx context.Context, limit int) ([]domain.NamedCount, error) {
	return r.queryNamedCounts(ctx, `
		SELECT style.value, COUNT(*) as count
		FROM artists, json_each(artists.styles) AS style
		GROUP BY style.value
		ORDER BY count DESC, style.value ASC
		LIMIT ?
	`, limit)
}

func (r *StatisticsRepository) getTopCities(ctx context.Context, limit int) ([]domain.NamedCount, error) {
	return r.queryNamedCounts(ctx, `
		SELECT MIN(city), COUNT(*) as count
		FROM artists
		WHERE city != ''
		GROUP BY city COLLATE NOCASE
		ORDER BY count DESC, MIN(city) ASC
		LIMIT ?
	`, limit)
}

func (r *StatisticsRepository) queryNamedCounts(ctx context.Context, query string, limit int) ([]domain.NamedCount, error) {
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.NamedCount, 0, limit)
	for rows.Next() {
		var nc domain.NamedCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		result = append(result, nc)
	}

	return result, rows.Err()
}

var _ repository.StatisticsRepository = (*StatisticsRepository)(nil)
