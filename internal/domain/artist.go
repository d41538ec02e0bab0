package domain

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// tattoo style taxonomy, in display order
var KnownStyles = []string{
	"old_school",
	"traditional",
	"new_school",
	"neo_traditional",
	"tribal",
	"blackwork",
	"dotwork",
	"geometric",
	"japanese",
	"lettering",
	"biomechanical",
	"watercolour",
	"floral",
	"fineline",
	"realism",
	"minimalist",
	"surrealism",
	"portrait",
	"sketch",
	"illustrative",
	"ornamental",
	"trash_polka",
}

var KnownDifficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

type Artist struct {
	ID         int64      `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Slug       string     `db:"slug" json:"slug"`
	Styles     []string   `db:"-" json:"styles"`
	City       string     `db:"city" json:"city"`
	Postcode   string     `db:"postcode" json:"postcode,omitempty"`
	Difficulty Difficulty `db:"difficulty" json:"difficulty"`
	Rating     float64    `db:"rating" json:"rating"`
	PriceMin   int        `db:"price_min" json:"priceMin"`
	PriceMax   int        `db:"price_max" json:"priceMax"`
	Available  bool       `db:"available" json:"available"`
}

func (a *Artist) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("artist name cannot be empty")
	}

	if len(a.Name) > 200 {
		return errors.New("artist name cannot exceed 200 characters")
	}

	for _, style := range a.Styles {
		if !IsKnownStyle(style) {
			return fmt.Errorf("unknown style: %s", style)
		}
	}

	if a.Difficulty != "" && !IsKnownDifficulty(a.Difficulty) {
		return errors.New("invalid difficulty: must be beginner, intermediate, or advanced")
	}

	if a.Rating < 0 || a.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}

	if a.PriceMin < 0 || a.PriceMax < 0 {
		return errors.New("prices cannot be negative")
	}

	if a.PriceMax > 0 && a.PriceMin > a.PriceMax {
		return errors.New("minimum price cannot exceed maximum price")
	}

	return nil
}

func (a Artist) Clone() Artist {
	a.Styles = slices.Clone(a.Styles)
	return a
}

func IsKnownStyle(style string) bool {
	return slices.Contains(KnownStyles, style)
}

func IsKnownDifficulty(d Difficulty) bool {
	return slices.Contains(KnownDifficulties, d)
}

// turns "neo_traditional" into "Neo Traditional"
func StyleLabel(style string) string {
	words := strings.Fields(strings.ReplaceAll(style, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the catalogue key of an artist name.
func Slugify(name string) string {
	slug := slugInvalid.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
