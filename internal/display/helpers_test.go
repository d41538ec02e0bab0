package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inksearch/internal/domain"
)

func TestFormatRating(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{0, "-"},
		{4.4, "★★★★☆ 4.4"},
		{4.5, "★★★★★ 4.5"},
		{1, "★☆☆☆☆ 1.0"},
		{5, "★★★★★ 5.0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRating(tt.rating))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		want     string
	}{
		{"unknown", 0, 0, "-"},
		{"from", 80, 0, "£80+"},
		{"up to", 0, 200, "up to £200"},
		{"fixed", 100, 100, "£100"},
		{"range", 80, 150, "£80-150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.min, tt.max))
		})
	}
}

func TestFormatLocation(t *testing.T) {
	assert.Equal(t, "London E1", FormatLocation("London", "E1"))
	assert.Equal(t, "London", FormatLocation("London", ""))
	assert.Equal(t, "E1", FormatLocation("", "E1"))
	assert.Equal(t, "-", FormatLocation("", ""))
}

func TestFormatStyles(t *testing.T) {
	assert.Equal(t, "-", FormatStyles(nil))
	assert.Equal(t, "Neo Traditional, Blackwork", FormatStyles([]string{"neo_traditional", "blackwork"}))
}

func TestIcons(t *testing.T) {
	assert.Equal(t, "●", GetAvailabilityIcon(true))
	assert.Equal(t, "○", GetAvailabilityIcon(false))
	assert.Equal(t, "▇", GetDifficultyIcon(domain.DifficultyAdvanced))
	assert.Equal(t, "-", GetDifficultyIcon(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Koi St…", Truncate("Koi Studio", 7))
	assert.Equal(t, "…", Truncate("Koi", 1))
	assert.Equal(t, "Koi", Truncate("Koi", 0))
}
