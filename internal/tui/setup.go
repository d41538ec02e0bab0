package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inksearch/internal/display"
	"inksearch/internal/domain"
	"inksearch/internal/theme"
)

// SetupModel picks a theme with a live preview. The chosen name is handed to
// save when the user confirms.
type SetupModel struct {
	themes        []string
	selectedIndex int
	currentTheme  *theme.Theme
	save          func(name string) error
	width         int
	height        int
	quitting      bool
	confirmed     bool
	err           error
}

func NewSetupModel(save func(name string) error) SetupModel {
	themes := theme.ListThemes()

	return SetupModel{
		themes:       themes,
		currentTheme: theme.Resolve(themes[0]),
		save:         save,
		width:        100,
		height:       30,
	}
}

// Selected returns the confirmed theme name, empty when setup was cancelled.
func (m SetupModel) Selected() string {
	if !m.confirmed {
		return ""
	}
	return m.themes[m.selectedIndex]
}

func (m SetupModel) Err() error {
	return m.err
}

func (m SetupModel) Init() tea.Cmd {
	return nil
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"))):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.selectedIndex > 0 {
				m.selectedIndex--
				m.currentTheme = theme.Resolve(m.themes[m.selectedIndex])
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.selectedIndex < len(m.themes)-1 {
				m.selectedIndex++
				m.currentTheme = theme.Resolve(m.themes[m.selectedIndex])
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if m.save != nil {
				m.err = m.save(m.themes[m.selectedIndex])
			}
			m.confirmed = m.err == nil
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	if m.quitting {
		if m.err != nil {
			return fmt.Sprintf("Failed to save theme: %v\n", m.err)
		}
		if m.confirmed {
			return ""
		}
		return "Setup cancelled.\n"
	}

	if m.width < 60 || m.height < 10 {
		return "Terminal too small. Please resize and try again.\n"
	}

	styles := theme.NewStyles(m.currentTheme)

	leftWidth := max(m.width/3, 30)
	rightWidth := max(m.width-leftWidth-4, 30)

	box := func(width int, content string) string {
		return lipgloss.NewStyle().
			Width(width).
			Height(m.height - 4).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(m.currentTheme.BorderColor)).
			Padding(1).
			Render(content)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		box(leftWidth, m.renderThemeList(styles, leftWidth)),
		box(rightWidth, m.renderPreview(styles, rightWidth)),
	)

	header := styles.TUITitle.Render("inksearch setup")
	subtitle := styles.TUISubtitle.Render("Pick a theme")
	help := styles.TUIHelp.Render("↑/k: up • ↓/j: down • enter: confirm • q: quit")

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", header, subtitle, main, help)
}

func (m SetupModel) renderThemeList(styles *theme.Styles, width int) string {
	var b strings.Builder

	b.WriteString(styles.PanelTitle.Render("Themes"))
	b.WriteString("\n\n")

	for i, name := range m.themes {
		line := "  " + name
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.currentTheme.TextSecondary)).
			Width(width - 4)

		if i == m.selectedIndex {
			line = "▶ " + name
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.currentTheme.SelectedFg)).
				Background(lipgloss.Color(m.currentTheme.SelectedBg)).
				Bold(true).
				Width(width - 4)
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

var previewArtists = []domain.Artist{
	{Name: "Ink & Iron", Styles: []string{"traditional", "old_school"}, City: "London", Difficulty: domain.DifficultyBeginner, Rating: 4.8, PriceMin: 80, PriceMax: 150, Available: true},
	{Name: "Koi Studio", Styles: []string{"japanese", "blackwork"}, City: "London", Difficulty: domain.DifficultyAdvanced, Rating: 4.9, PriceMin: 200, PriceMax: 600},
	{Name: "Dot & Line", Styles: []string{"dotwork", "geometric"}, City: "Manchester", Difficulty: domain.DifficultyIntermediate, Rating: 4.2, PriceMin: 100, PriceMax: 250, Available: true},
}

func (m SetupModel) renderPreview(styles *theme.Styles, width int) string {
	var b strings.Builder

	b.WriteString(styles.PanelTitle.Render("Preview"))
	b.WriteString("\n\n")

	sep := styles.Separator.Render(strings.Repeat("─", max(width-4, 1)))

	for i, a := range previewArtists {
		if i > 0 {
			b.WriteString(sep)
			b.WriteString("\n")
		}

		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.currentTheme.TextPrimary)).
			Bold(true).
			Render(display.GetAvailabilityIcon(a.Available) + " " + a.Name))
		b.WriteString("\n")

		fmt.Fprintf(&b, "  %s | %s | %s\n",
			styles.GetDifficultyStyle(a.Difficulty).Render(string(a.Difficulty)),
			styles.RatingText.Render(display.FormatRating(a.Rating)),
			styles.GetAvailabilityStyle(a.Available).Render(display.FormatPrice(a.PriceMin, a.PriceMax)),
		)
		fmt.Fprintf(&b, "  %s  %s\n\n",
			styles.Info.Render(a.City),
			styles.Muted.Render(display.FormatStyles(a.Styles)),
		)
	}

	return b.String()
}
