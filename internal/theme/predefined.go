package theme

// themes in the order they are listed
var themeNames = []string{
	"default",
	"dark",
	"light",
	"dracula",
	"nord",
	"gruvbox",
}

func GetPredefinedThemes() map[string]*Theme {
	return map[string]*Theme{
		"default": DefaultTheme(),
		"dark":    DarkTheme(),
		"light":   LightTheme(),
		"dracula": DraculaTheme(),
		"nord":    NordTheme(),
		"gruvbox": GruvboxTheme(),
	}
}

func GetThemeNames() []string {
	names := make([]string, len(themeNames))
	copy(names, themeNames)
	return names
}

func DefaultTheme() *Theme {
	return &Theme{
		Name: "default",

		Primary:   "#7D56F4",
		Secondary: "#8aa4eb",
		Success:   "#04B575",
		Error:     "#FF0000",
		Warning:   "#FF8800",
		Info:      "#0088FF",

		TextPrimary:   "#FAFAFA",
		TextSecondary: "#888888",
		TextMuted:     "#6C6C6C",

		// skill level
		Beginner:     "#04B575",
		Intermediate: "#FF8800",
		Advanced:     "#FF0000",

		// booking
		Available: "#04B575",
		Booked:    "#888888",
		Rating:    "#FFD700",

		BorderColor:   "#7D56F4",
		SelectedBg:    "#7D56F4",
		SelectedFg:    "#FAFAFA",
		HeaderBg:      "#7D56F4",
		HeaderFg:      "#FAFAFA",
		Separator:     "#444444",
		HelpText:      "#888888",
		SubtitleText:  "#6C6C6C",
		TableSelected: "57",
	}
}

func DarkTheme() *Theme {
	return &Theme{
		Name: "dark",

		Primary:   "#BB9AF7",
		Secondary: "#7AA2F7",
		Success:   "#9ECE6A",
		Error:     "#F7768E",
		Warning:   "#E0AF68",
		Info:      "#7DCFFF",

		TextPrimary:   "#C0CAF5",
		TextSecondary: "#9AA5CE",
		TextMuted:     "#565F89",

		// skill level
		Beginner:     "#9ECE6A",
		Intermediate: "#FF9E64",
		Advanced:     "#F7768E",

		// booking
		Available: "#9ECE6A",
		Booked:    "#565F89",
		Rating:    "#E0AF68",

		BorderColor:   "#BB9AF7",
		SelectedBg:    "#BB9AF7",
		SelectedFg:    "#1A1B26",
		HeaderBg:      "#BB9AF7",
		HeaderFg:      "#1A1B26",
		Separator:     "#3B4261",
		HelpText:      "#565F89",
		SubtitleText:  "#565F89",
		TableSelected: "55",
	}
}

func LightTheme() *Theme {
	return &Theme{
		Name: "light",

		Primary:   "#5B3CC4",
		Secondary: "#2563EB",
		Success:   "#059669",
		Error:     "#DC2626",
		Warning:   "#D97706",
		Info:      "#0284C7",

		TextPrimary:   "#1F2937",
		TextSecondary: "#6B7280",
		TextMuted:     "#9CA3AF",

		// skill level
		Beginner:     "#059669",
		Intermediate: "#EA580C",
		Advanced:     "#DC2626",

		// booking
		Available: "#059669",
		Booked:    "#6B7280",
		Rating:    "#D97706",

		BorderColor:   "#5B3CC4",
		SelectedBg:    "#5B3CC4",
		SelectedFg:    "#FFFFFF",
		HeaderBg:      "#5B3CC4",
		HeaderFg:      "#FFFFFF",
		Separator:     "#D1D5DB",
		HelpText:      "#6B7280",
		SubtitleText:  "#9CA3AF",
		TableSelected: "57",
	}
}

func DraculaTheme() *Theme {
	return &Theme{
		Name: "dracula",

		Primary:   "#BD93F9",
		Secondary: "#8BE9FD",
		Success:   "#50FA7B",
		Error:     "#FF5555",
		Warning:   "#FFB86C",
		Info:      "#8BE9FD",

		TextPrimary:   "#F8F8F2",
		TextSecondary: "#6272A4",
		TextMuted:     "#44475A",

		// skill level
		Beginner:     "#50FA7B",
		Intermediate: "#FFB86C",
		Advanced:     "#FF5555",

		// booking
		Available: "#50FA7B",
		Booked:    "#6272A4",
		Rating:    "#F1FA8C",

		BorderColor:   "#BD93F9",
		SelectedBg:    "#BD93F9",
		SelectedFg:    "#282A36",
		HeaderBg:      "#BD93F9",
		HeaderFg:      "#282A36",
		Separator:     "#44475A",
		HelpText:      "#6272A4",
		SubtitleText:  "#6272A4",
		TableSelected: "141",
	}
}

func NordTheme() *Theme {
	return &Theme{
		Name: "nord",

		Primary:   "#88C0D0",
		Secondary: "#81A1C1",
		Success:   "#A3BE8C",
		Error:     "#BF616A",
		Warning:   "#EBCB8B",
		Info:      "#5E81AC",

		TextPrimary:   "#ECEFF4",
		TextSecondary: "#D8DEE9",
		TextMuted:     "#4C566A",

		// skill level
		Beginner:     "#A3BE8C",
		Intermediate: "#D08770",
		Advanced:     "#BF616A",

		// booking
		Available: "#A3BE8C",
		Booked:    "#4C566A",
		Rating:    "#EBCB8B",

		BorderColor:   "#88C0D0",
		SelectedBg:    "#88C0D0",
		SelectedFg:    "#2E3440",
		HeaderBg:      "#88C0D0",
		HeaderFg:      "#2E3440",
		Separator:     "#434C5E",
		HelpText:      "#4C566A",
		SubtitleText:  "#4C566A",
		TableSelected: "73",
	}
}

func GruvboxTheme() *Theme {
	return &Theme{
		Name: "gruvbox",

		Primary:   "#D3869B",
		Secondary: "#83A598",
		Success:   "#B8BB26",
		Error:     "#FB4934",
		Warning:   "#FABD2F",
		Info:      "#83A598",

		TextPrimary:   "#EBDBB2",
		TextSecondary: "#A89984",
		TextMuted:     "#665C54",

		// skill level
		Beginner:     "#B8BB26",
		Intermediate: "#FE8019",
		Advanced:     "#FB4934",

		// booking
		Available: "#B8BB26",
		Booked:    "#928374",
		Rating:    "#FABD2F",

		BorderColor:   "#D3869B",
		SelectedBg:    "#D3869B",
		SelectedFg:    "#282828",
		HeaderBg:      "#D3869B",
		HeaderFg:      "#282828",
		Separator:     "#504945",
		HelpText:      "#928374",
		SubtitleText:  "#665C54",
		TableSelected: "175",
	}
}
