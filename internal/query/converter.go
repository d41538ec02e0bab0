package query

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"inksearch/internal/domain"
)

// Parse turns a query-language string into search intent.
func Parse(input string) (Input, error) {
	parsed, err := ParseQuery(input)
	if err != nil {
		return Input{}, err
	}
	return ConvertToInput(parsed)
}

func ConvertToInput(parsed *ParsedQuery) (Input, error) {
	in := Input{Text: parsed.Text()}
	var errs []string

	for _, qf := range parsed.Filters {
		if err := applyFilter(&in, qf); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return in, fmt.Errorf("conversion errors: %s", strings.Join(errs, "; "))
	}

	return in, nil
}

func applyFilter(in *Input, qf QueryFilter) error {
	switch qf.Field {
	case FieldStyle:
		return applyStyleFilter(in, qf)
	case FieldCity:
		in.City = qf.Value
		return nil
	case FieldPostcode:
		in.Postcode = qf.Value
		return nil
	case FieldDifficulty:
		return applyDifficultyFilter(in, qf)
	case FieldSort:
		return applySortFilter(in, qf)
	case FieldPage:
		return applyPositiveInt(&in.Page, qf)
	case FieldLimit:
		if err := applyPositiveInt(&in.Limit, qf); err != nil {
			return err
		}
		if in.Limit > MaxLimit {
			return fmt.Errorf("limit cannot exceed %d", MaxLimit)
		}
		return nil
	case FieldRadius:
		qf.Value = strings.TrimSuffix(strings.ToLower(qf.Value), "km")
		return applyPositiveInt(&in.Radius, qf)
	case FieldPrice:
		return applyPriceFilter(in, qf)
	case FieldAvailable:
		return applyAvailableFilter(in, qf)
	case FieldRating:
		return applyRatingFilter(in, qf)
	default:
		return fmt.Errorf("unknown filter field: %s", qf.Field)
	}
}

func applyStyleFilter(in *Input, qf QueryFilter) error {
	for _, style := range splitList(qf.Value) {
		term := normalizeTerm(style)
		if !domain.IsKnownStyle(term) {
			return fmt.Errorf("invalid style value: %s", style)
		}
		in.Styles = append(in.Styles, term)
	}
	return nil
}

func applyDifficultyFilter(in *Input, qf QueryFilter) error {
	for _, level := range splitList(qf.Value) {
		term := normalizeTerm(level)
		if !domain.IsKnownDifficulty(domain.Difficulty(term)) {
			return fmt.Errorf("invalid difficulty value: %s (must be beginner, intermediate, or advanced)", level)
		}
		in.Difficulty = append(in.Difficulty, term)
	}
	return nil
}

func applySortFilter(in *Input, qf QueryFilter) error {
	mode := SortMode(normalizeTerm(qf.Value))
	if !slices.Contains(SortModes, mode) {
		names := make([]string, len(SortModes))
		for i, m := range SortModes {
			names[i] = string(m)
		}
		return fmt.Errorf("invalid sort value: %s (must be one of %s)", qf.Value, strings.Join(names, ", "))
	}
	in.Sort = string(mode)
	return nil
}

func applyPositiveInt(dst *int, qf QueryFilter) error {
	n, err := strconv.Atoi(strings.TrimSpace(qf.Value))
	if err != nil || n < 1 {
		return fmt.Errorf("invalid %s value: %s (must be a positive number)", qf.Field, qf.Value)
	}
	*dst = n
	return nil
}

// accepts "50-200", "50-", "50+", "-200" and "200" (an upper bound)
func applyPriceFilter(in *Input, qf QueryFilter) error {
	value := strings.TrimPrefix(strings.TrimSpace(qf.Value), "£")
	invalid := fmt.Errorf("invalid price value: %s (use min-max, min+ or max)", qf.Value)

	parse := func(s string) (int, error) {
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(strings.TrimPrefix(s, "£"))
		if err != nil || n < 0 {
			return 0, invalid
		}
		return n, nil
	}

	var minStr, maxStr string
	switch {
	case strings.HasSuffix(value, "+"):
		minStr = strings.TrimSuffix(value, "+")
	case strings.Contains(value, "-"):
		minStr, maxStr, _ = strings.Cut(value, "-")
	default:
		maxStr = value
	}

	minPrice, err := parse(minStr)
	if err != nil {
		return err
	}
	maxPrice, err := parse(maxStr)
	if err != nil {
		return err
	}
	if minPrice == 0 && maxPrice == 0 {
		return invalid
	}

	in.PriceMin, in.PriceMax = minPrice, maxPrice
	return nil
}

func applyAvailableFilter(in *Input, qf QueryFilter) error {
	switch strings.ToLower(qf.Value) {
	case "yes", "y", "true", "1", "now":
		in.Available = true
	case "no", "n", "false", "0", "any":
		in.Available = false
	default:
		return fmt.Errorf("invalid available value: %s (use yes or no)", qf.Value)
	}
	return nil
}

func applyRatingFilter(in *Input, qf QueryFilter) error {
	value := strings.TrimSuffix(strings.TrimSpace(qf.Value), "+")
	r, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(r) || r < 0 || r > MaxRating {
		return fmt.Errorf("invalid rating value: %s (must be between 0 and 5)", qf.Value)
	}
	in.MinRating = r
	return nil
}
