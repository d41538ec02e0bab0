package theme

import (
	"errors"
	"fmt"
)

var (
	ErrThemeNotFound = errors.New("theme not found")
)

type Manager struct {
	themes map[string]*Theme
}

func NewManager() *Manager {
	return &Manager{
		themes: GetPredefinedThemes(),
	}
}

func (m *Manager) GetTheme(name string) (*Theme, error) {
	theme, exists := m.themes[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	return theme, nil
}

// Resolve returns the named theme, falling back to the default for an empty
// or unknown name.
func (m *Manager) Resolve(name string) *Theme {
	if t, err := m.GetTheme(name); err == nil {
		return t
	}
	return m.GetDefaultTheme()
}

func (m *Manager) ListThemes() []string {
	return GetThemeNames()
}

func (m *Manager) ThemeExists(name string) bool {
	_, exists := m.themes[name]
	return exists
}

func (m *Manager) GetDefaultTheme() *Theme {
	return DefaultTheme()
}

var globalManager = NewManager()

func GetTheme(name string) (*Theme, error) {
	return globalManager.GetTheme(name)
}

func Resolve(name string) *Theme {
	return globalManager.Resolve(name)
}

func ListThemes() []string {
	return globalManager.ListThemes()
}

func ThemeExists(name string) bool {
	return globalManager.ThemeExists(name)
}

func GetDefaultTheme() *Theme {
	return globalManager.GetDefaultTheme()
}
