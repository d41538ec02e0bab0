package query

import (
	"strconv"
	"strings"
)

// Format renders a query back into query-language form. Parse(Format(q))
// normalizes to q.
func Format(q SearchQuery) string {
	parts := make([]string, 0, 12)

	if q.text != "" {
		parts = append(parts, quoteIfNeeded(q.text, true))
	}
	if len(q.styles) > 0 {
		parts = append(parts, FieldStyle+":"+strings.Join(q.styles, ","))
	}
	if q.city != "" {
		parts = append(parts, FieldCity+":"+quoteIfNeeded(q.city, false))
	}
	if q.postcode != "" {
		parts = append(parts, "zip:"+quoteIfNeeded(q.postcode, false))
	}
	if q.radius > 0 {
		parts = append(parts, FieldRadius+":"+strconv.Itoa(q.radius))
	}
	if len(q.difficulty) > 0 {
		parts = append(parts, "level:"+strings.Join(q.difficulty, ","))
	}
	if q.priceMin > 0 || q.priceMax > 0 {
		parts = append(parts, FieldPrice+":"+formatPrice(q.priceMin, q.priceMax))
	}
	if q.available {
		parts = append(parts, FieldAvailable+":yes")
	}
	if q.minRating > 0 {
		parts = append(parts, FieldRating+":"+formatRating(q.minRating))
	}
	if q.sort != SortRelevance {
		parts = append(parts, FieldSort+":"+string(q.sort))
	}
	if q.limit != DefaultLimit {
		parts = append(parts, FieldLimit+":"+strconv.Itoa(q.limit))
	}
	if q.page != DefaultPage {
		parts = append(parts, FieldPage+":"+strconv.Itoa(q.page))
	}

	return strings.Join(parts, " ")
}

func formatPrice(minPrice, maxPrice int) string {
	switch {
	case maxPrice == 0:
		return strconv.Itoa(minPrice) + "+"
	case minPrice == 0:
		return strconv.Itoa(maxPrice)
	default:
		return strconv.Itoa(minPrice) + "-" + strconv.Itoa(maxPrice)
	}
}

// free text only needs quoting when a word would otherwise read as a field
// or mention
func quoteIfNeeded(s string, freeText bool) string {
	if freeText {
		if !strings.ContainsAny(s, ":@\"'") {
			return s
		}
	} else if !strings.ContainsAny(s, " \t:@\"'") {
		return s
	}
	return strconv.Quote(s)
}
