package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"inksearch/internal/config"
	"inksearch/internal/theme"
	"inksearch/internal/tui"
)

var (
	// global flags
	logLevel string
	dbPath   string
)

var rootCmd = &cobra.Command{
	Use:   "inksearch",
	Short: "inksearch - find tattoo artists from your terminal",
	Long: `inksearch searches a catalogue of tattoo artists by name, style, place,
level, price and rating. Results are cached, recent searches are remembered
and every search can run against the local catalogue or a remote service.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkAndRunSetup(); err != nil {
			return err
		}
		displayWelcome()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the catalogue database; overrides the config file")
}

// Command returns the root command.
func Command() *cobra.Command {
	return rootCmd
}

// Execute runs the command line; ctx is cancelled on interrupt.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func displayWelcome() {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.GetDefaultConfig()
	}

	styles := theme.NewStyles(theme.Resolve(cfg.ThemeName))

	title := styles.Title.Render(`
		------------------------------------------------------

		                I N K S E A R C H

		------------------------------------------------------
	`)
	subtitle := styles.Subtitle.Render("Find the right artist for your next piece")

	fmt.Println()
	fmt.Println(title)
	fmt.Println(subtitle)
	fmt.Println()
	fmt.Println("Run 'inksearch search <query>' or 'inksearch tui' to get started.")
	fmt.Println("Run 'inksearch --help' to see available commands.")
	fmt.Println()
}

// runs the theme picker the first time inksearch starts
func checkAndRunSetup() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.ThemeName != "" {
		return nil
	}

	fmt.Println()
	fmt.Println("Welcome to inksearch! Let's pick a theme.")
	fmt.Println()

	selected, err := runThemePicker()
	if err != nil {
		return err
	}

	fmt.Println()
	if selected != "" {
		fmt.Printf("✓ Theme configured: '%s'\n", selected)
	} else {
		fmt.Println("No theme picked, using the default.")
	}
	fmt.Println()

	return nil
}

func runThemePicker() (string, error) {
	p := tea.NewProgram(tui.NewSetupModel(config.UpdateTheme), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run theme picker: %w", err)
	}

	m, ok := final.(tui.SetupModel)
	if !ok {
		return "", nil
	}
	if err := m.Err(); err != nil {
		return "", fmt.Errorf("failed to save theme: %w", err)
	}
	return m.Selected(), nil
}
