package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"inksearch/internal/config"
	"inksearch/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage application theme",
	Long: `Manage application theme settings.

Run without arguments to launch the interactive theme picker.

Examples:
  inksearch theme              # Launch interactive picker
  inksearch theme set dracula  # Set theme directly
  inksearch theme list         # List available themes
  inksearch theme show         # Show current theme`,
	RunE: runThemeTUI,
}

var themeSetCmd = &cobra.Command{
	Use:   "set [theme-name]",
	Short: "Set application theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeSet,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	RunE:  runThemeList,
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current theme",
	Long:  `Display the currently selected theme and its color palette.`,
	RunE:  runThemeShow,
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeShowCmd)
}

func runThemeTUI(cmd *cobra.Command, args []string) error {
	selected, err := runThemePicker()
	if err != nil {
		return err
	}

	if selected != "" {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to '%s'\n", selected)
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	themeName := args[0]

	if !theme.ThemeExists(themeName) {
		return fmt.Errorf("theme '%s' not found. Run 'inksearch theme list' to see available themes", themeName)
	}

	if err := config.UpdateTheme(themeName); err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to '%s'\n", themeName)
	return nil
}

func currentThemeName() string {
	cfg, err := config.LoadConfig()
	if err != nil || cfg.ThemeName == "" {
		return "default"
	}
	return cfg.ThemeName
}

func runThemeList(cmd *cobra.Command, args []string) error {
	current := currentThemeName()
	styles := theme.NewStyles(theme.Resolve(current))
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Header.Render(" Available Themes "))
	fmt.Fprintln(w)

	for _, name := range theme.ListThemes() {
		prefix := "  "
		if name == current {
			prefix = "▶ "
			name = styles.Success.Render(name + " (current)")
		}
		fmt.Fprintf(w, "%s%s\n", prefix, name)
	}

	fmt.Fprintln(w)
	return nil
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	current := currentThemeName()
	themeObj, err := theme.GetTheme(current)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	styles := theme.NewStyles(themeObj)
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Header.Render(fmt.Sprintf(" Current Theme: %s ", current)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Info.Render("Color Palette:"))
	fmt.Fprintln(w)

	colors := []struct {
		name  string
		color string
	}{
		{"Primary", themeObj.Primary},
		{"Success", themeObj.Success},
		{"Error", themeObj.Error},
		{"Warning", themeObj.Warning},
		{"Beginner", themeObj.Beginner},
		{"Intermediate", themeObj.Intermediate},
		{"Advanced", themeObj.Advanced},
		{"Rating", themeObj.Rating},
		{"Border", themeObj.BorderColor},
	}

	for _, c := range colors {
		sample := styles.Cell.
			Background(lipgloss.Color(c.color)).
			Foreground(lipgloss.Color(c.color)).
			Render("  ████  ")
		fmt.Fprintf(w, "  %-14s %s %s\n", c.name+":", sample, c.color)
	}

	fmt.Fprintln(w)
	return nil
}
