package query

import (
	"strings"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		filterCount  int
		checkFilters func(*testing.T, *ParsedQuery)
	}{
		{
			name:        "simple style filter",
			input:       "style:japanese",
			filterCount: 1,
			checkFilters: func(t *testing.T, q *ParsedQuery) {
				if q.Filters[0].Field != FieldStyle {
					t.Errorf("Filter field = %q, expected 'style'", q.Filters[0].Field)
				}
				if q.Filters[0].Value != "japanese" {
					t.Errorf("Filter value = %q, expected 'japanese'", q.Filters[0].Value)
				}
			},
		},
		{
			name:        "multiple filters",
			input:       "style:japanese level:beginner",
			filterCount: 2,
			checkFilters: func(t *testing.T, q *ParsedQuery) {
				if q.Filters[0].Field != FieldStyle || q.Filters[0].Value != "japanese" {
					t.Errorf("First filter incorrect: %+v", q.Filters[0])
				}
				if q.Filters[1].Field != FieldDifficulty || q.Filters[1].Value != "beginner" {
					t.Errorf("Second filter incorrect: %+v", q.Filters[1])
				}
			},
		},
		{
			name:        "@mention is a city",
			input:       "@bristol",
			filterCount: 1,
			checkFilters: func(t *testing.T, q *ParsedQuery) {
				if q.Filters[0].Field != FieldCity {
					t.Errorf("Filter field = %q, expected 'city'", q.Filters[0].Field)
				}
				if q.Filters[0].Value != "bristol" {
					t.Errorf("Filter value = %q, expected 'bristol'", q.Filters[0].Value)
				}
			},
		},
		{
			name:        "free text around filters",
			input:       "koi style:japanese sleeve",
			filterCount: 1,
			checkFilters: func(t *testing.T, q *ParsedQuery) {
				if got := q.Text(); got != "koi sleeve" {
					t.Errorf("Text() = %q, expected 'koi sleeve'", got)
				}
			},
		},
		{
			name:        "quoted text",
			input:       `"sacred heart" city:"new york"`,
			filterCount: 1,
			checkFilters: func(t *testing.T, q *ParsedQuery) {
				if got := q.Text(); got != "sacred heart" {
					t.Errorf("Text() = %q, expected 'sacred heart'", got)
				}
				if q.Filters[0].Value != "new york" {
					t.Errorf("Filter value = %q, expected 'new york'", q.Filters[0].Value)
				}
			},
		},
		{
			name:        "only text",
			input:       "dragon",
			filterCount: 0,
			checkFilters: func(t *testing.T, q *ParsedQuery) {
				if len(q.Terms) != 1 || q.Terms[0] != "dragon" {
					t.Errorf("Terms = %v, expected [dragon]", q.Terms)
				}
			},
		},
		{
			name:        "empty query",
			input:       "",
			filterCount: 0,
		},
		{
			name:        "unknown field",
			input:       "colour:red",
			expectError: true,
		},
		{
			name:        "missing value",
			input:       "style:",
			expectError: true,
		},
		{
			name:        "@ without city",
			input:       "@",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuery(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("ParseQuery() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseQuery() unexpected error: %v", err)
			}

			if len(q.Filters) != tt.filterCount {
				t.Fatalf("ParseQuery() got %d filters, expected %d", len(q.Filters), tt.filterCount)
			}

			if tt.checkFilters != nil {
				tt.checkFilters(t, q)
			}
		})
	}
}

func TestParseQueryCollectsAllErrors(t *testing.T) {
	q, err := ParseQuery("colour:red koi mood:happy")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unknown field 'colour'") {
		t.Errorf("error = %q, expected first error to mention colour", err.Error())
	}
	if len(q.Errors) != 2 {
		t.Errorf("got %d errors, expected 2", len(q.Errors))
	}
	if q.Text() != "koi" {
		t.Errorf("Text() = %q, expected 'koi'", q.Text())
	}
}

func TestParsedQueryHelpers(t *testing.T) {
	q, err := ParseQuery("style:tribal style:floral @leeds")
	if err != nil {
		t.Fatalf("ParseQuery() error = %v", err)
	}

	if !q.HasField(FieldCity) {
		t.Error("HasField(city) = false, want true")
	}
	if q.HasField(FieldPrice) {
		t.Error("HasField(price) = true, want false")
	}
	if f := q.GetField(FieldStyle); f == nil || f.Value != "tribal" {
		t.Errorf("GetField(style) = %v, want tribal", f)
	}
	if got := len(q.GetAllFields(FieldStyle)); got != 2 {
		t.Errorf("GetAllFields(style) = %d, want 2", got)
	}
	if q.HasErrors() {
		t.Error("HasErrors() = true, want false")
	}
}

func TestQueryFilterString(t *testing.T) {
	if got := (QueryFilter{Field: "city", Value: "leeds"}).String(); got != "city:leeds" {
		t.Errorf("String() = %q", got)
	}
	if got := (QueryFilter{Field: "city", Value: "new york"}).String(); got != `city:"new york"` {
		t.Errorf("String() = %q", got)
	}
}
