package theme

import (
	"github.com/charmbracelet/lipgloss"

	"inksearch/internal/domain"
)

type Styles struct {
	// cli
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Separator lipgloss.Style
	Muted     lipgloss.Style

	// tui
	TUITitle    lipgloss.Style
	TUISubtitle lipgloss.Style
	TUIHelp     lipgloss.Style
	SearchBox   lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	FacetValue  lipgloss.Style
	FacetCount  lipgloss.Style
	Suggestion  lipgloss.Style

	// artist attributes
	BeginnerText     lipgloss.Style
	IntermediateText lipgloss.Style
	AdvancedText     lipgloss.Style
	AvailableText    lipgloss.Style
	BookedText       lipgloss.Style
	RatingText       lipgloss.Style
}

// creates all styles based on the given theme
func NewStyles(t *Theme) *Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &Styles{
		Success: fg(t.Success).Bold(true),
		Error:   fg(t.Error).Bold(true),
		Warning: fg(t.Warning),
		Info:    fg(t.Primary),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Secondary)).
			PaddingTop(1).
			PaddingBottom(1),

		Subtitle: fg(t.SubtitleText).Italic(true),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.HeaderFg)).
			Background(lipgloss.Color(t.HeaderBg)).
			PaddingLeft(1).
			PaddingRight(1),

		Cell: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1),

		Separator: fg(t.Separator),
		Muted:     fg(t.TextMuted),

		TUITitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.TextPrimary)).
			Background(lipgloss.Color(t.HeaderBg)).
			Padding(0, 1),

		TUISubtitle: fg(t.TextSecondary),
		TUIHelp:     fg(t.HelpText),

		SearchBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderColor)).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Separator)).
			Padding(0, 1),

		PanelTitle: fg(t.Primary).Bold(true),
		FacetValue: fg(t.TextPrimary),
		FacetCount: fg(t.TextMuted),
		Suggestion: fg(t.Info).Underline(true),

		BeginnerText:     fg(t.Beginner),
		IntermediateText: fg(t.Intermediate),
		AdvancedText:     fg(t.Advanced).Bold(true),
		AvailableText:    fg(t.Available),
		BookedText:       fg(t.Booked),
		RatingText:       fg(t.Rating),
	}
}

func (s *Styles) GetDifficultyStyle(d domain.Difficulty) lipgloss.Style {
	switch d {
	case domain.DifficultyBeginner:
		return s.BeginnerText
	case domain.DifficultyIntermediate:
		return s.IntermediateText
	case domain.DifficultyAdvanced:
		return s.AdvancedText
	default:
		return s.Muted
	}
}

func (s *Styles) GetAvailabilityStyle(available bool) lipgloss.Style {
	if available {
		return s.AvailableText
	}
	return s.BookedText
}

// GetErrorStyle picks how loudly a failure is shown; transient kinds are
// warnings, the rest errors.
func (s *Styles) GetErrorStyle(kind domain.ErrorKind) lipgloss.Style {
	switch kind {
	case domain.ErrorRateLimit, domain.ErrorNetwork:
		return s.Warning
	default:
		return s.Error
	}
}
