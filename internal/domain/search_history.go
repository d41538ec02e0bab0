package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxHistoryLabelLength is counted in runes.
const MaxHistoryLabelLength = 200

type HistoryEntry struct {
	Label       string    `json:"label"`
	Target      string    `json:"target"`
	ResultCount int       `json:"resultCount"`
	Timestamp   time.Time `json:"timestamp"`
}

func (h *HistoryEntry) Validate() error {
	if strings.TrimSpace(h.Label) == "" {
		return errors.New("history label cannot be empty")
	}

	if utf8.RuneCountInString(h.Label) > MaxHistoryLabelLength {
		return fmt.Errorf("history label cannot exceed %d characters", MaxHistoryLabelLength)
	}

	if h.Target != "" && !strings.HasPrefix(h.Target, "/") {
		return errors.New("history target must be an absolute path")
	}

	if h.ResultCount < 0 {
		return errors.New("result count cannot be negative")
	}

	return nil
}

func (h *HistoryEntry) GetRelativeTime() string {
	return RelativeTime(h.Timestamp, time.Now())
}

func (h *HistoryEntry) GetDisplayText() string {
	text := h.Label
	if h.ResultCount > 0 {
		noun := "results"
		if h.ResultCount == 1 {
			noun = "result"
		}
		text = fmt.Sprintf("%s [%d %s]", text, h.ResultCount, noun)
	}

	if rel := h.GetRelativeTime(); rel != "" {
		return fmt.Sprintf("%s (%s)", text, rel)
	}
	return text
}

func NewHistoryEntry(label, target string, resultCount int) *HistoryEntry {
	return &HistoryEntry{
		Label:       strings.TrimSpace(label),
		Target:      target,
		ResultCount: resultCount,
		Timestamp:   time.Now(),
	}
}

func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	duration := now.Sub(t)

	seconds := int(duration.Seconds())
	minutes := int(duration.Minutes())
	hours := int(duration.Hours())
	days := int(duration.Hours() / 24)

	switch {
	case seconds < 60:
		return "just now"
	case minutes == 1:
		return "1 minute ago"
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	case hours == 1:
		return "1 hour ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		weeks := days / 7
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		months := days / 30
		if months <= 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}
}
