package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	ParamText       = "q"
	ParamStyles     = "styles"
	ParamCity       = "city"
	ParamPostcode   = "postcode"
	ParamDifficulty = "difficulty"
	ParamSort       = "sort"
	ParamPage       = "page"
	ParamLimit      = "limit"
	ParamRadius     = "radius"
	ParamPriceMin   = "price_min"
	ParamPriceMax   = "price_max"
	ParamAvailable  = "available"
	ParamMinRating  = "min_rating"
)

const SearchPath = "/search"

type Param struct {
	Key   string
	Value string
}

// Params keeps the fixed field order so encodings are stable.
type Params []Param

func (p Params) Get(key string) string {
	for _, param := range p {
		if param.Key == key {
			return param.Value
		}
	}
	return ""
}

func (p Params) Has(key string) bool {
	for _, param := range p {
		if param.Key == key {
			return true
		}
	}
	return false
}

func (p Params) Encode() string {
	var sb strings.Builder
	for i, param := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(param.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(param.Value))
	}
	return sb.String()
}

func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for _, param := range p {
		values.Set(param.Key, param.Value)
	}
	return values
}

type keyedField struct {
	param Param
	omit  bool
}

// fields lists every field in key order; omit marks default values
func (q SearchQuery) fields() []keyedField {
	return []keyedField{
		{Param{ParamText, q.text}, q.text == ""},
		{Param{ParamStyles, strings.Join(q.styles, ",")}, len(q.styles) == 0},
		{Param{ParamCity, q.city}, q.city == ""},
		{Param{ParamPostcode, q.postcode}, q.postcode == ""},
		{Param{ParamDifficulty, strings.Join(q.difficulty, ",")}, len(q.difficulty) == 0},
		{Param{ParamSort, string(q.sort)}, q.sort == SortRelevance},
		{Param{ParamPage, strconv.Itoa(q.page)}, q.page == DefaultPage},
		{Param{ParamLimit, strconv.Itoa(q.limit)}, q.limit == DefaultLimit},
		{Param{ParamRadius, strconv.Itoa(q.radius)}, q.radius == 0},
		{Param{ParamPriceMin, strconv.Itoa(q.priceMin)}, q.priceMin == 0},
		{Param{ParamPriceMax, strconv.Itoa(q.priceMax)}, q.priceMax == 0},
		{Param{ParamAvailable, strconv.FormatBool(q.available)}, !q.available},
		{Param{ParamMinRating, formatRating(q.minRating)}, q.minRating == 0},
	}
}

// Parameters returns the request parameters with default-valued fields left
// out.
func (q SearchQuery) Parameters() Params {
	var params Params
	for _, f := range q.fields() {
		if !f.omit {
			params = append(params, f.param)
		}
	}
	return params
}

// CacheKey covers every field, defaults included, in a fixed order.
func (q SearchQuery) CacheKey() string {
	var sb strings.Builder
	for i, f := range q.fields() {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(f.param.Key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(f.param.Value))
	}
	return sb.String()
}

// Target is the navigation path that reproduces this search.
func (q SearchQuery) Target() string {
	encoded := q.Parameters().Encode()
	if encoded == "" {
		return SearchPath
	}
	return SearchPath + "?" + encoded
}

func FromValues(values url.Values) (Input, error) {
	in := Input{
		Text:     values.Get(ParamText),
		City:     values.Get(ParamCity),
		Postcode: values.Get(ParamPostcode),
		Sort:     values.Get(ParamSort),
	}

	if v := values.Get(ParamStyles); v != "" {
		in.Styles = splitList(v)
	}
	if v := values.Get(ParamDifficulty); v != "" {
		in.Difficulty = splitList(v)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{ParamPage, &in.Page},
		{ParamLimit, &in.Limit},
		{ParamRadius, &in.Radius},
		{ParamPriceMin, &in.PriceMin},
		{ParamPriceMax, &in.PriceMax},
	}
	for _, field := range ints {
		v := values.Get(field.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Input{}, fmt.Errorf("invalid %s: %s", field.key, v)
		}
		*field.dst = n
	}

	if v := values.Get(ParamAvailable); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Input{}, fmt.Errorf("invalid %s: %s", ParamAvailable, v)
		}
		in.Available = b
	}

	if v := values.Get(ParamMinRating); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Input{}, fmt.Errorf("invalid %s: %s", ParamMinRating, v)
		}
		in.MinRating = f
	}

	return in, nil
}

// ParseTarget reverses Target.
func ParseTarget(target string) (Input, error) {
	u, err := url.Parse(target)
	if err != nil {
		return Input{}, fmt.Errorf("failed to parse target: %w", err)
	}
	if u.Path != SearchPath {
		return Input{}, fmt.Errorf("not a search target: %s", target)
	}
	return FromValues(u.Query())
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
