package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"inksearch/internal/domain"
	"inksearch/internal/query"
	"inksearch/internal/repository"
)

// resolves a saved search by hot key (1-9) or by name
func lookupSavedSearch(ctx context.Context, repo repository.SavedSearchRepository, ref string) (*domain.SavedSearch, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("saved search name or hot key is required")
	}

	if key, err := strconv.Atoi(ref); err == nil && key >= 1 && key <= 9 {
		if s, err := repo.GetByHotKey(ctx, key); err == nil {
			return s, nil
		}
	}

	return repo.GetByName(ctx, ref)
}

// canonicalQuery parses raw query language text and returns its canonical
// form, refusing text that would search for nothing.
func canonicalQuery(raw string) (string, error) {
	in, err := query.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid query: %w", err)
	}

	q := query.Normalize(in)
	if q.IsEmpty() {
		return "", errors.New("query has no text and no filters")
	}
	if err := q.Validate(); err != nil {
		return "", fmt.Errorf("invalid query: %w", err)
	}

	return query.Format(q), nil
}

func parseHotKey(s string) (*int, error) {
	if s == "" || s == "clear" || s == "0" {
		return nil, nil
	}

	key, err := strconv.Atoi(s)
	if err != nil || key < 1 || key > 9 {
		return nil, errors.New("hot key must be 1-9 or 'clear'")
	}
	return &key, nil
}
