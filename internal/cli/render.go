package cli

import (
	"fmt"
	"io"
	"strings"

	"inksearch/internal/display"
	"inksearch/internal/domain"
	"inksearch/internal/search"
	"inksearch/internal/theme"
)

func displayResults(w io.Writer, state search.SearchState, styles *theme.Styles) {
	fmt.Fprintln(w)

	if state.Failed() {
		if state.Error != nil {
			line := styles.GetErrorStyle(state.Error.Kind).Render("✗ " + state.Error.UserMessage())
			if detail := state.Error.Detail(); detail != "" {
				line += styles.Muted.Render("  " + detail)
			}
			fmt.Fprintln(w, line)
		}
		displaySuggestions(w, state.Suggestions, styles)
		return
	}

	if len(state.Items) == 0 {
		fmt.Fprintln(w, styles.Info.Render("No artists found."))
		displaySuggestions(w, state.Suggestions, styles)
		return
	}

	displayArtistsTable(w, state.Items, styles)

	q := state.Query
	first := (q.Page()-1)*q.Limit() + 1
	last := first + len(state.Items) - 1
	fmt.Fprintf(w, "Showing %d-%d of %d artist(s)", first, last, state.TotalCount)
	if state.CacheHit {
		fmt.Fprint(w, styles.Muted.Render(" (cached)"))
	}
	fmt.Fprintln(w)

	displayFacets(w, state.Facets, styles)
	displaySuggestions(w, state.Suggestions, styles)
	fmt.Fprintln(w)
}

func displayArtistsTable(w io.Writer, artists []domain.Artist, styles *theme.Styles) {
	headers := []string{
		styles.Header.Render(fmt.Sprintf("%-24s", "Artist")),
		styles.Header.Render(fmt.Sprintf("%-28s", "Styles")),
		styles.Header.Render(fmt.Sprintf("%-18s", "Location")),
		styles.Header.Render(fmt.Sprintf("%-14s", "Level")),
		styles.Header.Render(fmt.Sprintf("%-11s", "Rating")),
		styles.Header.Render(fmt.Sprintf("%-12s", "Price")),
		styles.Header.Render("Open"),
	}
	fmt.Fprintln(w, strings.Join(headers, " "))
	fmt.Fprintln(w, styles.Separator.Render(strings.Repeat("─", 130)))

	for _, a := range artists {
		printArtistRow(w, a, styles)
	}

	fmt.Fprintln(w)
}

func printArtistRow(w io.Writer, a domain.Artist, styles *theme.Styles) {
	level := display.GetDifficultyIcon(a.Difficulty) + " " + string(a.Difficulty)
	if a.Difficulty == "" {
		level = "-"
	}

	cells := []string{
		styles.Cell.Render(fmt.Sprintf("%-24s", display.Truncate(a.Name, 24))),
		styles.Cell.Render(fmt.Sprintf("%-28s", display.Truncate(display.FormatStyles(a.Styles), 28))),
		styles.Cell.Render(fmt.Sprintf("%-18s", display.Truncate(display.FormatLocation(a.City, a.Postcode), 18))),
		styles.GetDifficultyStyle(a.Difficulty).Render(styles.Cell.Render(fmt.Sprintf("%-14s", level))),
		styles.RatingText.Render(styles.Cell.Render(fmt.Sprintf("%-11s", display.FormatRating(a.Rating)))),
		styles.Cell.Render(fmt.Sprintf("%-12s", display.FormatPrice(a.PriceMin, a.PriceMax))),
		styles.GetAvailabilityStyle(a.Available).Render(styles.Cell.Render(display.GetAvailabilityIcon(a.Available))),
	}

	fmt.Fprintln(w, strings.Join(cells, " "))
}

func displayFacets(w io.Writer, facets domain.Facets, styles *theme.Styles) {
	for _, field := range domain.FacetFields {
		values := facets[field]
		if len(values) == 0 {
			continue
		}

		parts := make([]string, len(values))
		for i, v := range values {
			label := v.Value
			if field == domain.FacetStyle {
				label = domain.StyleLabel(v.Value)
			}
			parts[i] = fmt.Sprintf("%s %s", label, styles.Muted.Render(fmt.Sprintf("(%d)", v.Count)))
		}

		fmt.Fprintf(w, "%s %s\n", styles.Info.Render(fmt.Sprintf("%-13s", string(field)+":")), strings.Join(parts, ", "))
	}
}

func displaySuggestions(w io.Writer, suggestions []domain.Suggestion, styles *theme.Styles) {
	if len(suggestions) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Subtitle.Render("Suggestions:"))
	for _, s := range suggestions {
		if s.IsQuery() {
			fmt.Fprintf(w, "  • %s  %s\n", s.Label, styles.Muted.Render("inksearch search "+quoteArg(s.Query)))
		} else {
			fmt.Fprintf(w, "  • %s\n", s.Label)
		}
	}
}

func quoteArg(s string) string {
	if strings.ContainsAny(s, " \"'") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
