package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"inksearch/internal/display"
	"inksearch/internal/domain"
	"inksearch/internal/search"
)

// facet values shown per dimension
const facetLimit = 5

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.TUITitle.Render("  inksearch  "))
	b.WriteString("\n\n")
	b.WriteString(m.styles.SearchBox.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	switch {
	case m.focus == focusHistory:
		b.WriteString(m.renderHistory())
	case m.showDetail:
		b.WriteString(m.renderDetail())
	default:
		b.WriteString(m.renderBody())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderStatusBar() string {
	s := m.state

	if m.parseErr != "" {
		return m.styles.Error.Render("✗ " + m.parseErr)
	}

	var status string
	switch s.Phase {
	case search.PhaseIdle:
		status = m.styles.Muted.Render("Type to search artists")
	case search.PhaseDebouncing:
		status = m.styles.Muted.Render("…")
	case search.PhaseFetching:
		status = m.spinner.View() + " " + m.styles.Info.Render("Searching")
	case search.PhaseSucceeded:
		status = m.styles.Success.Render(fmt.Sprintf("%d artist(s)", s.TotalCount))
		if pages := pageCount(s.TotalCount, m.current.Limit()); pages > 1 {
			status += m.styles.Muted.Render(fmt.Sprintf("  page %d/%d", m.current.Page(), pages))
		}
		status += m.styles.Muted.Render(fmt.Sprintf("  %s", s.Duration.Round(time.Millisecond)))
		if s.CacheHit {
			status += m.styles.Muted.Render("  cached")
		}
	case search.PhaseFailed:
		if s.Error != nil {
			status = m.styles.GetErrorStyle(s.Error.Kind).Render("✗ " + s.Error.UserMessage())
			if detail := s.Error.Detail(); detail != "" {
				status += m.styles.Muted.Render("  " + detail)
			}
			if s.Error.Retryable() {
				status += m.styles.Muted.Render(fmt.Sprintf("  %s to retry", m.keys.Retry.Help().Key))
			}
		}
	}

	if m.message != "" {
		status += "  " + m.styles.Info.Render(m.message)
	}

	return status
}

func (m Model) renderBody() string {
	var b strings.Builder

	if len(m.state.Items) > 0 {
		b.WriteString(m.table.View())
		b.WriteString("\n")

		if f := m.renderFacets(); f != "" {
			b.WriteString("\n")
			b.WriteString(f)
			b.WriteString("\n")
		}
	} else if m.state.Phase == search.PhaseSucceeded {
		b.WriteString(m.styles.Subtitle.Render("No artists match this search."))
		b.WriteString("\n")
	}

	if sg := m.renderSuggestions(); sg != "" {
		b.WriteString("\n")
		b.WriteString(sg)
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderFacets() string {
	var cols []string

	for _, field := range domain.FacetFields {
		values := m.state.Facets[field]
		if len(values) == 0 {
			continue
		}

		var b strings.Builder
		b.WriteString(m.styles.PanelTitle.Render(facetTitle(field)))
		for i, v := range values {
			if i == facetLimit {
				b.WriteString("\n" + m.styles.Muted.Render(fmt.Sprintf("+%d more", len(values)-facetLimit)))
				break
			}
			b.WriteString("\n")
			b.WriteString(m.styles.FacetValue.Render(facetLabel(field, v.Value)))
			b.WriteString(" ")
			b.WriteString(m.styles.FacetCount.Render(fmt.Sprintf("%d", v.Count)))
		}
		cols = append(cols, m.styles.Panel.Render(b.String()))
	}

	if len(cols) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderSuggestions() string {
	if len(m.state.Suggestions) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render("Suggestions"))
	for i, s := range m.state.Suggestions {
		if i == 9 {
			break
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d ", i+1)))
		b.WriteString(m.styles.Suggestion.Render(s.Label))
		if s.IsQuery() {
			b.WriteString(m.styles.Muted.Render("  " + s.Query))
		}
	}
	return b.String()
}

func (m Model) renderHistory() string {
	var b strings.Builder

	title := "Recent searches"
	if !m.session.HistoryDurable() {
		title += " (not saved)"
	}
	b.WriteString(m.styles.PanelTitle.Render(title))
	b.WriteString("\n\n")

	if len(m.history) == 0 {
		b.WriteString(m.styles.Muted.Render("Nothing yet."))
		return m.styles.Panel.Render(b.String())
	}

	for i, e := range m.history {
		prefix := "  "
		if i == m.historyCursor {
			prefix = "▶ "
		}
		line := fmt.Sprintf("%s%-40s %4d  %s", prefix, display.Truncate(e.Label, 40), e.ResultCount, e.GetRelativeTime())
		if i == m.historyCursor {
			line = m.styles.Info.Bold(true).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return m.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderDetail() string {
	a, ok := m.selectedArtist()
	if !ok {
		return ""
	}

	label := m.styles.PanelTitle
	row := func(name, value string) string {
		return label.Render(fmt.Sprintf("%-12s", name)) + " " + value + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.UnsetPadding().Render(a.Name))
	b.WriteString("\n\n")
	b.WriteString(row("Styles", display.FormatStyles(a.Styles)))
	b.WriteString(row("Location", display.FormatLocation(a.City, a.Postcode)))
	b.WriteString(row("Level", m.styles.GetDifficultyStyle(a.Difficulty).Render(orDash(string(a.Difficulty)))))
	b.WriteString(row("Rating", m.styles.RatingText.Render(display.FormatRating(a.Rating))))
	b.WriteString(row("Price", display.FormatPrice(a.PriceMin, a.PriceMax)))

	open := "Fully booked"
	if a.Available {
		open = "Taking bookings"
	}
	b.WriteString(row("Bookings", m.styles.GetAvailabilityStyle(a.Available).Render(open)))

	return m.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func facetTitle(field domain.FacetField) string {
	switch field {
	case domain.FacetStyle:
		return "Style"
	case domain.FacetLocation:
		return "Location"
	case domain.FacetDifficulty:
		return "Level"
	case domain.FacetAvailability:
		return "Bookings"
	default:
		return string(field)
	}
}

func facetLabel(field domain.FacetField, value string) string {
	if field == domain.FacetStyle {
		return domain.StyleLabel(value)
	}
	return value
}

func pageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
