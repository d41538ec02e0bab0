package domain

import (
	"fmt"
	"time"
)

type CatalogueStats struct {
	TotalArtists     int `json:"total_artists"`
	AvailableArtists int `json:"available_artists"`
	RecentArtists    int `json:"recent_artists"` // added in last 7 days

	BeginnerArtists     int `json:"beginner_artists"`
	IntermediateArtists int `json:"intermediate_artists"`
	AdvancedArtists     int `json:"advanced_artists"`
	UnlevelledArtists   int `json:"unlevelled_artists"`

	AverageRating float64 `json:"average_rating"`
	LowestPrice   int     `json:"lowest_price"`
	HighestPrice  int     `json:"highest_price"`

	TopStyles []NamedCount `json:"top_styles,omitempty"`
	TopCities []NamedCount `json:"top_cities,omitempty"`

	CalculatedAt time.Time `json:"calculated_at"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (cs *CatalogueStats) GetAvailabilityRate() float64 {
	if cs.TotalArtists == 0 {
		return 0.0
	}
	return (float64(cs.AvailableArtists) / float64(cs.TotalArtists)) * 100.0
}

func (cs *CatalogueStats) CountForLevel(d Difficulty) int {
	switch d {
	case DifficultyBeginner:
		return cs.BeginnerArtists
	case DifficultyIntermediate:
		return cs.IntermediateArtists
	case DifficultyAdvanced:
		return cs.AdvancedArtists
	default:
		return cs.UnlevelledArtists
	}
}

// percentage of the catalogue at the given level
func (cs *CatalogueStats) GetLevelShare(d Difficulty) float64 {
	if cs.TotalArtists == 0 {
		return 0.0
	}
	return (float64(cs.CountForLevel(d)) / float64(cs.TotalArtists)) * 100.0
}

func (cs *CatalogueStats) GetLevelDistribution() string {
	if cs.TotalArtists == 0 {
		return "No artists"
	}

	return fmt.Sprintf("Beginner: %d, Intermediate: %d, Advanced: %d, Unset: %d",
		cs.BeginnerArtists, cs.IntermediateArtists, cs.AdvancedArtists, cs.UnlevelledArtists)
}

func (cs *CatalogueStats) HasArtists() bool {
	return cs.TotalArtists > 0
}

func NewCatalogueStats() *CatalogueStats {
	return &CatalogueStats{
		CalculatedAt: time.Now(),
		TopStyles:    make([]NamedCount, 0),
		TopCities:    make([]NamedCount, 0),
	}
}
