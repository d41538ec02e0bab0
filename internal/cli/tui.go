package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"inksearch/internal/repository/sqlite"
	"inksearch/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [query]",
	Short: "Launch interactive search",
	Long: `Launch the interactive search interface. Results update as you type.

Keyboard shortcuts:
  Search box:
    tab       Move to results
    esc       Clear the search
    ctrl+h    Recent searches
    ctrl+r    Refresh (drop cached results)
    ctrl+l    Reset

  Results:
    ↑/k ↓/j   Move
    enter     Artist details
    [ ]       Previous / next page
    s         Cycle sort
    a         Toggle available only
    F         Clear filters
    r         Retry
    1-9       Use a suggestion
    h         Recent searches
    ?         Toggle help
    q         Quit

Examples:
  inksearch tui
  inksearch tui "style:japanese @london"
  inksearch tui --saved 1`,
	RunE: runTUI,
}

var tuiSaved string

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiSaved, "saved", "", "Start from a saved search (name or hot key)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctrl, err := a.controller()
	if err != nil {
		return err
	}
	defer ctrl.Close()

	initial := strings.Join(args, " ")
	if tuiSaved != "" {
		repo := sqlite.NewSavedSearchRepository(a.db)
		saved, err := lookupSavedSearch(cmd.Context(), repo, tuiSaved)
		if err != nil {
			return err
		}
		if err := repo.RecordAccess(cmd.Context(), saved.ID); err != nil {
			a.log.Warn().Err(err).Str("saved_search", saved.Name).Msg("failed to record saved search access")
		}
		initial = strings.TrimSpace(saved.Query + " " + initial)
	}

	model := tui.New(ctrl, a.theme, initial)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
