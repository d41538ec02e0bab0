// Package backend holds the search backends the controller can talk to.
// Every error a backend returns is a *domain.SearchError.
package backend

import (
	"context"

	"inksearch/internal/domain"
	"inksearch/internal/query"
)

type Backend interface {
	Search(ctx context.Context, q query.SearchQuery) (domain.SearchResult, error)
}

// Func adapts a plain function to Backend.
type Func func(ctx context.Context, q query.SearchQuery) (domain.SearchResult, error)

func (f Func) Search(ctx context.Context, q query.SearchQuery) (domain.SearchResult, error) {
	result, err := f(ctx, q)
	if err != nil {
		return domain.SearchResult{}, domain.AsSearchError(err)
	}
	return result, nil
}
