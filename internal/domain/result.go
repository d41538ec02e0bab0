package domain

import "slices"

type FacetField string

const (
	FacetStyle        FacetField = "style"
	FacetLocation     FacetField = "location"
	FacetDifficulty   FacetField = "difficulty"
	FacetAvailability FacetField = "availability"
)

var FacetFields = []FacetField{
	FacetStyle,
	FacetLocation,
	FacetDifficulty,
	FacetAvailability,
}

type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// values keep the order in which they were first seen
type Facets map[FacetField][]FacetValue

func (f Facets) Count(field FacetField, value string) int {
	for _, v := range f[field] {
		if v.Value == value {
			return v.Count
		}
	}
	return 0
}

func (f Facets) Values(field FacetField) []string {
	values := make([]string, 0, len(f[field]))
	for _, v := range f[field] {
		values = append(values, v.Value)
	}
	return values
}

func (f Facets) Clone() Facets {
	if f == nil {
		return nil
	}
	out := make(Facets, len(f))
	for field, values := range f {
		out[field] = slices.Clone(values)
	}
	return out
}

type SearchResult struct {
	Items      []Artist `json:"items"`
	TotalCount int      `json:"totalCount"`
	Facets     Facets   `json:"facets,omitempty"`
}

func (r SearchResult) IsEmpty() bool {
	return r.TotalCount == 0 && len(r.Items) == 0
}

func (r SearchResult) Clone() SearchResult {
	items := make([]Artist, len(r.Items))
	for i, item := range r.Items {
		items[i] = item.Clone()
	}
	return SearchResult{
		Items:      items,
		TotalCount: r.TotalCount,
		Facets:     r.Facets.Clone(),
	}
}
