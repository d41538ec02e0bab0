package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"inksearch/internal/domain"
	"inksearch/internal/repository/sqlite"
	"inksearch/internal/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalogue statistics",
	Long: `Display statistics about the local artist catalogue.

Provides an overview of:
  - Artist counts and availability
  - Level distribution
  - Ratings and price range
  - Most common styles and cities

Examples:
  inksearch stats              # Show catalogue statistics
  inksearch stats --top 10     # Show the top 10 styles and cities
  inksearch stats --json       # Machine-readable output`,
	RunE: runStats,
}

var (
	statsTopLimit int
	statsJSON     bool
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsTopLimit, "top", 5, "Number of top styles and cities to show")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := sqlite.NewStatisticsRepository(a.db).GetCatalogueStatistics(cmd.Context(), statsTopLimit)
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}

	if statsJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats)
	}

	displayCatalogueStatistics(cmd.OutOrStdout(), stats, a.styles)
	return nil
}

func displayCatalogueStatistics(w io.Writer, stats *domain.CatalogueStats, styles *theme.Styles) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Title.Render("📊 Catalogue Statistics"))
	fmt.Fprintln(w)

	if !stats.HasArtists() {
		fmt.Fprintln(w, styles.Info.Render("The catalogue is empty. Run 'inksearch catalog import <file>' to add artists."))
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w, styles.Subtitle.Render("Artists"))
	fmt.Fprintf(w, "  Total:      %s\n", styles.Info.Render(fmt.Sprintf("%d", stats.TotalArtists)))
	fmt.Fprintf(w, "  Available:  %s (%.1f%%)\n", styles.AvailableText.Render(fmt.Sprintf("%d", stats.AvailableArtists)), stats.GetAvailabilityRate())
	fmt.Fprintf(w, "  Recent:     %s (last 7 days)\n", styles.Info.Render(fmt.Sprintf("%d", stats.RecentArtists)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Subtitle.Render("Level Distribution"))
	levels := []struct {
		label string
		level domain.Difficulty
		fill  string
	}{
		{"Beginner:    ", domain.DifficultyBeginner, "░"},
		{"Intermediate:", domain.DifficultyIntermediate, "▒"},
		{"Advanced:    ", domain.DifficultyAdvanced, "▓"},
		{"Unset:       ", "", "·"},
	}
	for _, l := range levels {
		pct := stats.GetLevelShare(l.level)
		fmt.Fprintf(w, "  %s %s %s\n", l.label,
			styles.GetDifficultyStyle(l.level).Render(renderBar(int(pct/5), 20, l.fill)),
			fmt.Sprintf("%d (%.1f%%)", stats.CountForLevel(l.level), pct))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Subtitle.Render("Ratings & Prices"))
	fmt.Fprintf(w, "  Average Rating:  %s\n", styles.RatingText.Render(fmt.Sprintf("%.2f", stats.AverageRating)))
	fmt.Fprintf(w, "  Price Range:     %s\n", styles.Info.Render(fmt.Sprintf("£%d - £%d", stats.LowestPrice, stats.HighestPrice)))
	fmt.Fprintln(w)

	displayRanking(w, "Styles", stats.TopStyles, styles)
	displayRanking(w, "Cities", stats.TopCities, styles)

	fmt.Fprintf(w, "Calculated at: %s\n", stats.CalculatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w)
}

func displayRanking(w io.Writer, title string, counts []domain.NamedCount, styles *theme.Styles) {
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(w, styles.Subtitle.Render(fmt.Sprintf("Top %d %s", len(counts), title)))
	for i, nc := range counts {
		fmt.Fprintf(w, "  %d. %-18s %s %s\n", i+1, nc.Name, renderBar(nc.Count, 20, "█"),
			styles.Muted.Render(fmt.Sprintf("(%d)", nc.Count)))
	}
	fmt.Fprintln(w)
}

// renders a fixed-width bar with filled cells clamped to width
func renderBar(filled, width int, char string) string {
	filled = max(0, min(filled, width))
	return strings.Repeat(char, filled) + strings.Repeat(" ", width-filled)
}
