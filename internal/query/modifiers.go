package query

import "slices"

// Modifier changes part of an Input. Controllers use them to apply partial
// filter updates on top of the current query.
type Modifier func(*Input)

func SetText(text string) Modifier {
	return func(in *Input) { in.Text = text }
}

func SetStyles(styles ...string) Modifier {
	return func(in *Input) { in.Styles = slices.Clone(styles) }
}

func AddStyle(style string) Modifier {
	return func(in *Input) { in.Styles = append(in.Styles, style) }
}

func RemoveStyle(style string) Modifier {
	return func(in *Input) {
		target := normalizeTerm(style)
		in.Styles = slices.DeleteFunc(in.Styles, func(s string) bool {
			return normalizeTerm(s) == target
		})
	}
}

func ToggleStyle(style string) Modifier {
	return func(in *Input) {
		target := normalizeTerm(style)
		for _, s := range in.Styles {
			if normalizeTerm(s) == target {
				RemoveStyle(style)(in)
				return
			}
		}
		in.Styles = append(in.Styles, style)
	}
}

func SetCity(city string) Modifier {
	return func(in *Input) { in.City = city }
}

func SetPostcode(postcode string) Modifier {
	return func(in *Input) { in.Postcode = postcode }
}

func ClearLocation() Modifier {
	return func(in *Input) {
		in.City = ""
		in.Postcode = ""
		in.Radius = 0
	}
}

func SetDifficulty(levels ...string) Modifier {
	return func(in *Input) { in.Difficulty = slices.Clone(levels) }
}

func SetSort(mode SortMode) Modifier {
	return func(in *Input) { in.Sort = string(mode) }
}

func SetPage(page int) Modifier {
	return func(in *Input) { in.Page = page }
}

func SetLimit(limit int) Modifier {
	return func(in *Input) { in.Limit = limit }
}

func SetRadius(km int) Modifier {
	return func(in *Input) { in.Radius = km }
}

func SetPriceRange(minPrice, maxPrice int) Modifier {
	return func(in *Input) {
		in.PriceMin = minPrice
		in.PriceMax = maxPrice
	}
}

func SetAvailable(available bool) Modifier {
	return func(in *Input) { in.Available = available }
}

func SetMinRating(rating float64) Modifier {
	return func(in *Input) { in.MinRating = rating }
}
