package export

import (
	"fmt"
	"io"
	"strings"

	"inksearch/internal/display"
	"inksearch/internal/domain"
	"inksearch/internal/history"
)

type MarkdownExporter struct{}

func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

func (e *MarkdownExporter) ExportResults(w io.Writer, r Results) error {
	title := history.Label(r.Query)
	if r.Query.IsEmpty() {
		title = "All artists"
	}

	fmt.Fprintf(w, "# %s\n\n", title)
	fmt.Fprintf(w, "%d result(s), page %d\n\n", r.Result.TotalCount, r.Query.Page())

	if len(r.Result.Items) > 0 {
		fmt.Fprintln(w, "| Artist | Styles | Location | Level | Rating | Price | Open |")
		fmt.Fprintln(w, "|---|---|---|---|---|---|---|")
		for _, a := range r.Result.Items {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
				escapeCell(a.Name),
				escapeCell(display.FormatStyles(a.Styles)),
				escapeCell(display.FormatLocation(a.City, a.Postcode)),
				orDash(string(a.Difficulty)),
				display.FormatRating(a.Rating),
				display.FormatPrice(a.PriceMin, a.PriceMax),
				yesNo(a.Available),
			)
		}
		fmt.Fprintln(w)
	}

	e.writeFacets(w, r.Result.Facets)

	if len(r.Suggestions) > 0 {
		fmt.Fprintln(w, "## Suggestions")
		fmt.Fprintln(w)
		for _, s := range r.Suggestions {
			if s.Query != "" {
				fmt.Fprintf(w, "- %s (`%s`)\n", s.Label, s.Query)
			} else {
				fmt.Fprintf(w, "- %s\n", s.Label)
			}
		}
		fmt.Fprintln(w)
	}

	return nil
}

func (e *MarkdownExporter) writeFacets(w io.Writer, f domain.Facets) {
	if len(f) == 0 {
		return
	}

	var sections []string
	for _, field := range domain.FacetFields {
		values := f[field]
		if len(values) == 0 {
			continue
		}
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = fmt.Sprintf("%s (%d)", orDash(v.Value), v.Count)
		}
		sections = append(sections, fmt.Sprintf("- **%s**: %s", field, strings.Join(parts, ", ")))
	}

	if len(sections) == 0 {
		return
	}

	fmt.Fprintln(w, "## Facets")
	fmt.Fprintln(w)
	for _, s := range sections {
		fmt.Fprintln(w, s)
	}
	fmt.Fprintln(w)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
