package theme

// Theme is a named palette. Colours are lipgloss colour strings, either hex
// or ANSI 256 codes.
type Theme struct {
	Name string

	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Info      string

	TextPrimary   string
	TextSecondary string
	TextMuted     string

	Beginner     string
	Intermediate string
	Advanced     string

	Available string
	Booked    string
	Rating    string

	BorderColor   string
	SelectedBg    string
	SelectedFg    string
	HeaderBg      string
	HeaderFg      string
	Separator     string
	HelpText      string
	SubtitleText  string
	TableSelected string
}
