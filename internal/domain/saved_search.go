package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SavedSearch is a named query the user can run again by name or hot key.
// Query holds the query language form of the search.
type SavedSearch struct {
	ID           int64      `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	Query        string     `db:"query" json:"query"`
	IsFavorite   bool       `db:"is_favorite" json:"is_favorite"`
	HotKey       *int       `db:"hot_key" json:"hot_key,omitempty"`
	LastAccessed *time.Time `db:"last_accessed" json:"last_accessed,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

func (s *SavedSearch) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("saved search name cannot be empty")
	}

	if len(s.Name) > 100 {
		return errors.New("saved search name cannot exceed 100 characters")
	}

	if len(s.Description) > 500 {
		return errors.New("saved search description cannot exceed 500 characters")
	}

	if strings.TrimSpace(s.Query) == "" {
		return errors.New("saved search query cannot be empty")
	}

	if s.HotKey != nil {
		if *s.HotKey < 1 || *s.HotKey > 9 {
			return errors.New("hot key must be between 1 and 9")
		}
	}

	return nil
}

func NewSavedSearch(name, query string) *SavedSearch {
	now := time.Now()
	return &SavedSearch{
		Name:      strings.TrimSpace(name),
		Query:     query,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *SavedSearch) GetHotKeyDisplay() string {
	if s.HotKey == nil {
		return ""
	}
	return fmt.Sprintf("[%d]", *s.HotKey)
}

func (s *SavedSearch) GetFavoriteIndicator() string {
	if s.IsFavorite {
		return "★"
	}
	return ""
}

func (s *SavedSearch) GetLastUsed() string {
	if s.LastAccessed == nil {
		return "never"
	}
	return RelativeTime(*s.LastAccessed, time.Now())
}
