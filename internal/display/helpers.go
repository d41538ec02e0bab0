package display

import (
	"fmt"
	"strings"

	"inksearch/internal/domain"
)

func GetAvailabilityIcon(available bool) string {
	if available {
		return "●"
	}
	return "○"
}

func GetDifficultyIcon(difficulty domain.Difficulty) string {
	switch difficulty {
	case domain.DifficultyBeginner:
		return "▁"
	case domain.DifficultyIntermediate:
		return "▃"
	case domain.DifficultyAdvanced:
		return "▇"
	default:
		return "-"
	}
}

// renders 4.4 as "★★★★☆ 4.4"
func FormatRating(rating float64) string {
	if rating <= 0 {
		return "-"
	}

	full := int(rating + 0.5)
	if full > 5 {
		full = 5
	}
	return fmt.Sprintf("%s%s %.1f", strings.Repeat("★", full), strings.Repeat("☆", 5-full), rating)
}

func FormatPrice(minPrice, maxPrice int) string {
	switch {
	case minPrice <= 0 && maxPrice <= 0:
		return "-"
	case maxPrice <= 0:
		return fmt.Sprintf("£%d+", minPrice)
	case minPrice <= 0:
		return fmt.Sprintf("up to £%d", maxPrice)
	case minPrice == maxPrice:
		return fmt.Sprintf("£%d", minPrice)
	default:
		return fmt.Sprintf("£%d-%d", minPrice, maxPrice)
	}
}

func FormatLocation(city, postcode string) string {
	switch {
	case city != "" && postcode != "":
		return city + " " + postcode
	case city != "":
		return city
	case postcode != "":
		return postcode
	default:
		return "-"
	}
}

func FormatStyles(styles []string) string {
	if len(styles) == 0 {
		return "-"
	}

	labels := make([]string, len(styles))
	for i, s := range styles {
		labels[i] = domain.StyleLabel(s)
	}
	return strings.Join(labels, ", ")
}

// shortens s to max runes, marking the cut with an ellipsis
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
