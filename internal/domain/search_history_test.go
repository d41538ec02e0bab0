package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewHistoryEntry(t *testing.T) {
	entry := NewHistoryEntry("  dragon sleeve ", "/search?q=dragon+sleeve", 4)

	if entry.Label != "dragon sleeve" {
		t.Errorf("expected Label %q, got %q", "dragon sleeve", entry.Label)
	}
	if entry.Target != "/search?q=dragon+sleeve" {
		t.Errorf("expected Target to be kept, got %q", entry.Target)
	}
	if entry.ResultCount != 4 {
		t.Errorf("expected ResultCount 4, got %d", entry.ResultCount)
	}
	if entry.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestHistoryEntry_Validate(t *testing.T) {
	tests := []struct {
		name      string
		entry     *HistoryEntry
		wantError bool
		errorMsg  string
	}{
		{
			name:      "valid entry",
			entry:     &HistoryEntry{Label: "koi", Target: "/search?q=koi"},
			wantError: false,
		},
		{
			name:      "empty label",
			entry:     &HistoryEntry{Label: ""},
			wantError: true,
			errorMsg:  "history label cannot be empty",
		},
		{
			name:      "whitespace label",
			entry:     &HistoryEntry{Label: "   "},
			wantError: true,
			errorMsg:  "history label cannot be empty",
		},
		{
			name:      "label too long",
			entry:     &HistoryEntry{Label: strings.Repeat("a", 201)},
			wantError: true,
			errorMsg:  "history label cannot exceed 200 characters",
		},
		{
			name:      "multi-byte label at limit",
			entry:     &HistoryEntry{Label: strings.Repeat("龍", 200)},
			wantError: false,
		},
		{
			name:      "multi-byte label too long",
			entry:     &HistoryEntry{Label: strings.Repeat("龍", 201)},
			wantError: true,
			errorMsg:  "history label cannot exceed 200 characters",
		},
		{
			name:      "relative target",
			entry:     &HistoryEntry{Label: "koi", Target: "search?q=koi"},
			wantError: true,
			errorMsg:  "history target must be an absolute path",
		},
		{
			name:      "negative result count",
			entry:     &HistoryEntry{Label: "koi", ResultCount: -1},
			wantError: true,
			errorMsg:  "result count cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantError {
				if err == nil {
					t.Errorf("expected error, got nil")
				} else if err.Error() != tt.errorMsg {
					t.Errorf("expected error %q, got %q", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds", 10 * time.Second, "just now"},
		{"one minute", 90 * time.Second, "1 minute ago"},
		{"minutes", 15 * time.Minute, "15 minutes ago"},
		{"one hour", 61 * time.Minute, "1 hour ago"},
		{"hours", 5 * time.Hour, "5 hours ago"},
		{"yesterday", 25 * time.Hour, "yesterday"},
		{"days", 3 * 24 * time.Hour, "3 days ago"},
		{"one week", 8 * 24 * time.Hour, "1 week ago"},
		{"weeks", 15 * 24 * time.Hour, "2 weeks ago"},
		{"one month", 31 * 24 * time.Hour, "1 month ago"},
		{"months", 95 * 24 * time.Hour, "3 months ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(now.Add(-tt.ago), now); got != tt.want {
				t.Errorf("RelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := RelativeTime(time.Time{}, now); got != "" {
		t.Errorf("RelativeTime(zero) = %q, want empty", got)
	}
}

func TestHistoryEntry_GetDisplayText(t *testing.T) {
	entry := &HistoryEntry{Label: "koi", ResultCount: 1, Timestamp: time.Now()}
	if got := entry.GetDisplayText(); got != "koi [1 result] (just now)" {
		t.Errorf("GetDisplayText() = %q", got)
	}

	entry = &HistoryEntry{Label: "koi", ResultCount: 0}
	if got := entry.GetDisplayText(); got != "koi" {
		t.Errorf("GetDisplayText() = %q, want %q", got, "koi")
	}
}
