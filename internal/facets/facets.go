package facets

import (
	"inksearch/internal/domain"
)

const (
	Available   = "available"
	Unavailable = "unavailable"
)

// counter tallies values for one dimension, remembering first-seen order.
type counter struct {
	index  map[string]int
	values []domain.FacetValue
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(value string) {
	if value == "" {
		return
	}
	if i, ok := c.index[value]; ok {
		c.values[i].Count++
		return
	}
	c.index[value] = len(c.values)
	c.values = append(c.values, domain.FacetValue{Value: value, Count: 1})
}

// Compute derives per-dimension value counts from result items in a single
// pass. Every dimension is present in the output, empty when nothing was
// counted for it.
func Compute(items []domain.Artist) domain.Facets {
	counters := make(map[domain.FacetField]*counter, len(domain.FacetFields))
	for _, field := range domain.FacetFields {
		counters[field] = newCounter()
	}

	for _, item := range items {
		seen := make(map[string]bool, len(item.Styles))
		for _, style := range item.Styles {
			// an artist tagged twice with a style still counts once
			if seen[style] {
				continue
			}
			seen[style] = true
			counters[domain.FacetStyle].add(style)
		}

		counters[domain.FacetLocation].add(item.City)
		counters[domain.FacetDifficulty].add(string(item.Difficulty))

		if item.Available {
			counters[domain.FacetAvailability].add(Available)
		} else {
			counters[domain.FacetAvailability].add(Unavailable)
		}
	}

	out := make(domain.Facets, len(counters))
	for field, c := range counters {
		values := c.values
		if values == nil {
			values = []domain.FacetValue{}
		}
		out[field] = values
	}
	return out
}
