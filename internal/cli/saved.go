package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"inksearch/internal/display"
	"inksearch/internal/domain"
	"inksearch/internal/export"
	"inksearch/internal/query"
	"inksearch/internal/repository"
	"inksearch/internal/repository/sqlite"
	"inksearch/internal/theme"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved searches",
	Long: `Manage saved searches for quick access to queries you run often.

Saved searches can be run by name or by hot key (1-9). Each one stores a
query in the query language.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	savedDescription string
	savedFavorite    bool
	savedHotKey      string
	savedFavorites   bool
	savedSort        string
	savedFormat      string
	savedRename      string
	savedQuery       string
)

var savedAddCmd = &cobra.Command{
	Use:   "add <name> <query>",
	Short: "Save a query under a name",
	Long: `Save a query under a name for quick access.

Examples:
  inksearch saved add "London Japanese" "style:japanese @london"
  inksearch saved add budget "fineline price:-150 available:yes" --hotkey 1 --favorite`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSavedAdd,
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches",
	RunE:  runSavedList,
}

var savedRunCmd = &cobra.Command{
	Use:   "run <name|hotkey>",
	Short: "Run a saved search",
	Long: `Run a saved search and print its results.

Examples:
  inksearch saved run "London Japanese"
  inksearch saved run 1 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSavedRun,
}

var savedUpdateCmd = &cobra.Command{
	Use:   "update <name|hotkey>",
	Short: "Update a saved search",
	Long: `Update properties of an existing saved search.

Examples:
  inksearch saved update budget --query "fineline price:-120"
  inksearch saved update 1 --name cheap --hotkey clear`,
	Args: cobra.ExactArgs(1),
	RunE: runSavedUpdate,
}

var savedDeleteCmd = &cobra.Command{
	Use:   "delete <name|hotkey>",
	Short: "Delete a saved search",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedDelete,
}

var savedFavoriteCmd = &cobra.Command{
	Use:   "favorite <name|hotkey>",
	Short: "Toggle favorite status for a saved search",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedFavorite,
}

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedRunCmd)
	savedCmd.AddCommand(savedUpdateCmd)
	savedCmd.AddCommand(savedDeleteCmd)
	savedCmd.AddCommand(savedFavoriteCmd)

	savedAddCmd.Flags().StringVarP(&savedDescription, "description", "d", "", "Description")
	savedAddCmd.Flags().BoolVar(&savedFavorite, "favorite", false, "Mark as favorite")
	savedAddCmd.Flags().StringVarP(&savedHotKey, "hotkey", "k", "", "Hot key (1-9)")

	savedListCmd.Flags().BoolVar(&savedFavorites, "favorites", false, "Only favorites")
	savedListCmd.Flags().StringVar(&savedSort, "sort", "", "Sort by name or last_accessed (default: hot key order)")

	savedRunCmd.Flags().StringVarP(&savedFormat, "format", "f", "table", "Output format (table, json, csv, markdown)")

	savedUpdateCmd.Flags().StringVar(&savedRename, "name", "", "New name")
	savedUpdateCmd.Flags().StringVarP(&savedQuery, "query", "q", "", "New query")
	savedUpdateCmd.Flags().StringVarP(&savedDescription, "description", "d", "", "New description")
	savedUpdateCmd.Flags().StringVarP(&savedHotKey, "hotkey", "k", "", "New hot key (1-9, or 'clear')")
}

func runSavedAdd(cmd *cobra.Command, args []string) error {
	canonical, err := canonicalQuery(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	hotKey, err := parseHotKey(savedHotKey)
	if err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s := domain.NewSavedSearch(args[0], canonical)
	s.Description = savedDescription
	s.IsFavorite = savedFavorite
	s.HotKey = hotKey

	if err := sqlite.NewSavedSearchRepository(a.db).Create(cmd.Context(), s); err != nil {
		return fmt.Errorf("failed to save search: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render(fmt.Sprintf("✓ Saved '%s' as %s", s.Name, s.Query)))
	return nil
}

func runSavedList(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	filter := repository.SavedSearchFilter{SortBy: savedSort}
	if savedFavorites {
		fav := true
		filter.IsFavorite = &fav
	}

	searches, err := sqlite.NewSavedSearchRepository(a.db).List(cmd.Context(), filter)
	if err != nil {
		return err
	}

	displaySavedSearches(cmd.OutOrStdout(), searches, a.styles)
	return nil
}

func displaySavedSearches(w io.Writer, searches []*domain.SavedSearch, styles *theme.Styles) {
	fmt.Fprintln(w)

	if len(searches) == 0 {
		fmt.Fprintln(w, styles.Info.Render("No saved searches. Add one with 'inksearch saved add <name> <query>'."))
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w, styles.Title.Render("Saved Searches"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Header.Render(fmt.Sprintf("%-4s %-24s %-40s %-12s %s", "Key", "Name", "Query", "Last Used", "★")))
	fmt.Fprintln(w, styles.Separator.Render(strings.Repeat("─", 90)))

	for _, s := range searches {
		hotKey := s.GetHotKeyDisplay()
		if hotKey == "" {
			hotKey = "-"
		}
		fmt.Fprintf(w, "%-4s %-24s %-40s %-12s %s\n",
			hotKey,
			display.Truncate(s.Name, 24),
			display.Truncate(s.Query, 40),
			s.GetLastUsed(),
			styles.RatingText.Render(s.GetFavoriteIndicator()),
		)
		if s.Description != "" {
			fmt.Fprintf(w, "     %s\n", styles.Muted.Render(display.Truncate(s.Description, 80)))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d saved search(es)\n", len(searches))
	fmt.Fprintln(w)
}

func runSavedRun(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(savedFormat)
	if err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	repo := sqlite.NewSavedSearchRepository(a.db)
	s, err := lookupSavedSearch(cmd.Context(), repo, args[0])
	if err != nil {
		return err
	}

	in, err := query.Parse(s.Query)
	if err != nil {
		return fmt.Errorf("saved search '%s' has an invalid query: %w", s.Name, err)
	}

	if err := repo.RecordAccess(cmd.Context(), s.ID); err != nil {
		a.log.Warn().Err(err).Str("saved_search", s.Name).Msg("failed to record saved search access")
	}

	return executeSearch(cmd, a, in, format, false)
}

func runSavedUpdate(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	repo := sqlite.NewSavedSearchRepository(a.db)
	s, err := lookupSavedSearch(cmd.Context(), repo, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		s.Name = strings.TrimSpace(savedRename)
	}
	if flags.Changed("query") {
		canonical, err := canonicalQuery(savedQuery)
		if err != nil {
			return err
		}
		s.Query = canonical
	}
	if flags.Changed("description") {
		s.Description = savedDescription
	}
	if flags.Changed("hotkey") {
		s.HotKey, err = parseHotKey(savedHotKey)
		if err != nil {
			return err
		}
	}

	if err := repo.Update(cmd.Context(), s); err != nil {
		return fmt.Errorf("failed to update saved search: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render(fmt.Sprintf("✓ Saved search '%s' updated", s.Name)))
	return nil
}

func runSavedDelete(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	repo := sqlite.NewSavedSearchRepository(a.db)
	s, err := lookupSavedSearch(cmd.Context(), repo, args[0])
	if err != nil {
		return err
	}

	if err := repo.Delete(cmd.Context(), s.ID); err != nil {
		return fmt.Errorf("failed to delete saved search: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render(fmt.Sprintf("✓ Saved search '%s' deleted", s.Name)))
	return nil
}

func runSavedFavorite(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	repo := sqlite.NewSavedSearchRepository(a.db)
	s, err := lookupSavedSearch(cmd.Context(), repo, args[0])
	if err != nil {
		return err
	}

	newFavorite := !s.IsFavorite
	if err := repo.SetFavorite(cmd.Context(), s.ID, newFavorite); err != nil {
		return fmt.Errorf("failed to update favorite: %w", err)
	}

	if newFavorite {
		fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render(fmt.Sprintf("✓ '%s' marked as favorite (★)", s.Name)))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render(fmt.Sprintf("✓ '%s' unmarked as favorite", s.Name)))
	}
	return nil
}
