package facets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inksearch/internal/domain"
)

func TestComputeEmpty(t *testing.T) {
	f := Compute(nil)

	for _, field := range domain.FacetFields {
		values, ok := f[field]
		assert.True(t, ok, "dimension %s should be present", field)
		assert.NotNil(t, values)
		assert.Empty(t, values)
	}
}

func TestComputeCountsAndOrder(t *testing.T) {
	items := []domain.Artist{
		{Name: "a", Styles: []string{"japanese", "blackwork"}, City: "london", Difficulty: domain.DifficultyBeginner, Available: true},
		{Name: "b", Styles: []string{"fineline"}, City: "bristol", Difficulty: domain.DifficultyAdvanced},
		{Name: "c", Styles: []string{"blackwork", "japanese", "japanese"}, City: "london", Difficulty: domain.DifficultyBeginner, Available: true},
		{Name: "d", City: "", Difficulty: ""},
	}

	f := Compute(items)

	assert.Equal(t, []domain.FacetValue{
		{Value: "japanese", Count: 2},
		{Value: "blackwork", Count: 2},
		{Value: "fineline", Count: 1},
	}, f[domain.FacetStyle])

	assert.Equal(t, []domain.FacetValue{
		{Value: "london", Count: 2},
		{Value: "bristol", Count: 1},
	}, f[domain.FacetLocation])

	assert.Equal(t, []domain.FacetValue{
		{Value: "beginner", Count: 2},
		{Value: "advanced", Count: 1},
	}, f[domain.FacetDifficulty])

	assert.Equal(t, []domain.FacetValue{
		{Value: Available, Count: 2},
		{Value: Unavailable, Count: 2},
	}, f[domain.FacetAvailability])
}

func TestComputeFirstOccurrenceOrder(t *testing.T) {
	items := []domain.Artist{
		{Styles: []string{"tribal"}},
		{Styles: []string{"floral"}},
		{Styles: []string{"floral"}},
		{Styles: []string{"floral"}},
		{Styles: []string{"tribal"}},
	}

	f := Compute(items)

	// order follows first sighting, not count
	assert.Equal(t, []string{"tribal", "floral"}, f.Values(domain.FacetStyle))
	assert.Equal(t, 3, f.Count(domain.FacetStyle, "floral"))
}

func TestComputeDoesNotMutateItems(t *testing.T) {
	items := []domain.Artist{{Styles: []string{"sketch", "sketch"}}}
	Compute(items)
	assert.Equal(t, []string{"sketch", "sketch"}, items[0].Styles)
}
