package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"inksearch/internal/display"
	"inksearch/internal/domain"
	"inksearch/internal/theme"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show and manage recent searches",
	Long: `Show recent searches, newest first. Each search is remembered once by
its label; searching it again moves it back to the top.

Examples:
  inksearch history
  inksearch history remove "Artists in Leeds"
  inksearch history clear`,
	RunE: runHistoryList,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove [label]",
	Short: "Forget one search",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRemove,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every search",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print history as JSON")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	entries := a.history(cmd.Context()).List()

	if historyJSON {
		return writeHistoryJSON(cmd.OutOrStdout(), entries)
	}
	displayHistory(cmd.OutOrStdout(), entries, a.styles)
	return nil
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.history(cmd.Context()).Remove(cmd.Context(), args[0]) {
		return fmt.Errorf("no search named %q in history", args[0])
	}

	fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render(fmt.Sprintf("✓ Removed '%s' from history", args[0])))
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	store := a.history(cmd.Context())
	n := store.Len()
	store.Clear(cmd.Context())

	fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render(fmt.Sprintf("✓ Cleared %d search(es)", n)))
	return nil
}

func displayHistory(w io.Writer, entries []domain.HistoryEntry, styles *theme.Styles) {
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, styles.Info.Render("No recent searches."))
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w, styles.Header.Render(fmt.Sprintf("%-36s %8s  %-12s %s", "Search", "Results", "When", "Target")))
	for _, e := range entries {
		fmt.Fprintf(w, " %-36s %8d  %-12s %s\n",
			display.Truncate(e.Label, 36),
			e.ResultCount,
			e.GetRelativeTime(),
			styles.Muted.Render(e.Target),
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d search(es)\n", len(entries))
	fmt.Fprintln(w)
}

func writeHistoryJSON(w io.Writer, entries []domain.HistoryEntry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}
