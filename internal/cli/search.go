package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"inksearch/internal/domain"
	"inksearch/internal/export"
	"inksearch/internal/query"
	"inksearch/internal/search"
)

var (
	// search command flags
	searchStyles    []string
	searchCity      string
	searchPostcode  string
	searchLevels    []string
	searchSort      string
	searchPage      int
	searchLimit     int
	searchRadius    int
	searchPriceMin  int
	searchPriceMax  int
	searchAvailable bool
	searchMinRating float64
	searchFormat    string
	searchMetrics   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for artists",
	Long: `Search the catalogue. The query uses the query language (see
'inksearch query help'); flags add to or override what the query says.

Examples:
  inksearch search koi
  inksearch search "sleeve style:japanese @london"
  inksearch search --style fineline --city bristol --available
  inksearch search dotwork --price-max 200 --sort rating --format json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addSearchFlags(searchCmd)
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&searchStyles, "style", "s", nil, "Filter by style (comma-separated, any match)")
	cmd.Flags().StringVarP(&searchCity, "city", "c", "", "Filter by city")
	cmd.Flags().StringVar(&searchPostcode, "postcode", "", "Filter by postcode prefix")
	cmd.Flags().StringSliceVarP(&searchLevels, "level", "l", nil, "Filter by level (beginner, intermediate, advanced)")
	cmd.Flags().StringVar(&searchSort, "sort", "", "Sort by relevance, rating, price_asc, price_desc, distance or newest")
	cmd.Flags().IntVarP(&searchPage, "page", "p", 0, "Result page")
	cmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Results per page")
	cmd.Flags().IntVar(&searchRadius, "radius", 0, "Search radius in km")
	cmd.Flags().IntVar(&searchPriceMin, "price-min", 0, "Minimum price")
	cmd.Flags().IntVar(&searchPriceMax, "price-max", 0, "Maximum price")
	cmd.Flags().BoolVarP(&searchAvailable, "available", "a", false, "Only artists taking bookings")
	cmd.Flags().Float64Var(&searchMinRating, "min-rating", 0, "Minimum rating (0-5)")
	cmd.Flags().StringVarP(&searchFormat, "format", "f", "table", "Output format (table, json, csv, markdown)")
	cmd.Flags().BoolVar(&searchMetrics, "metrics", false, "Print search metrics after the results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	in, err := buildSearchInput(cmd, args)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(searchFormat)
	if err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return executeSearch(cmd, a, in, format, searchMetrics)
}

// executeSearch runs one search through a fresh session and writes the
// outcome. A failed search is reported as its error after the output.
func executeSearch(cmd *cobra.Command, a *app, in query.Input, format export.ExportFormat, withMetrics bool) error {
	reg := prometheus.NewRegistry()
	ctrl, err := a.controller(search.WithRegisterer(reg))
	if err != nil {
		return err
	}
	defer ctrl.Close()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	cfg := ctrl.Config()
	ctx, cancel := context.WithTimeout(parent, cfg.Debounce+a.cfg.BackendTimeout()+5*time.Second)
	defer cancel()

	state, err := awaitSearch(ctx, ctrl, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := writeResults(out, format, state, a); err != nil {
		return err
	}

	if withMetrics {
		if err := writeMetrics(out, reg); err != nil {
			return err
		}
	}

	if state.Failed() {
		return state.Error
	}
	return nil
}

// merges the query text with any flags that were set
func buildSearchInput(cmd *cobra.Command, args []string) (query.Input, error) {
	in, err := query.Parse(strings.Join(args, " "))
	if err != nil {
		return query.Input{}, fmt.Errorf("invalid query: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("style") {
		in.Styles = append(in.Styles, searchStyles...)
	}
	if flags.Changed("city") {
		in.City = searchCity
	}
	if flags.Changed("postcode") {
		in.Postcode = searchPostcode
	}
	if flags.Changed("level") {
		in.Difficulty = append(in.Difficulty, searchLevels...)
	}
	if flags.Changed("sort") {
		in.Sort = searchSort
	}
	if flags.Changed("page") {
		in.Page = searchPage
	}
	if flags.Changed("limit") {
		in.Limit = searchLimit
	}
	if flags.Changed("radius") {
		in.Radius = searchRadius
	}
	if flags.Changed("price-min") {
		in.PriceMin = searchPriceMin
	}
	if flags.Changed("price-max") {
		in.PriceMax = searchPriceMax
	}
	if flags.Changed("available") {
		in.Available = searchAvailable
	}
	if flags.Changed("min-rating") {
		in.MinRating = searchMinRating
	}

	return in, nil
}

// awaitSearch runs one search through the session and waits for it to
// settle.
func awaitSearch(ctx context.Context, ctrl *search.Controller, in query.Input) (search.SearchState, error) {
	q := query.Normalize(in)
	if q.IsEmpty() {
		return search.SearchState{}, errors.New("nothing to search for: give some text or a filter")
	}

	done := make(chan search.SearchState, 1)
	token := ctrl.Subscribe(func(s search.SearchState) {
		if (s.Phase == search.PhaseSucceeded || s.Phase == search.PhaseFailed) && s.Query.Equal(q) {
			select {
			case done <- s:
			default:
			}
		}
	})
	defer ctrl.Unsubscribe(token)

	ctrl.ExecuteQuery(q)

	select {
	case s := <-done:
		return s, nil
	case <-ctx.Done():
		return search.SearchState{}, fmt.Errorf("search did not finish: %w", ctx.Err())
	}
}

func writeResults(w io.Writer, format export.ExportFormat, state search.SearchState, a *app) error {
	if format == export.FormatTable {
		displayResults(w, state, a.styles)
		return nil
	}

	if state.Failed() {
		return nil
	}

	r := export.Results{
		Query: state.Query,
		Result: domain.SearchResult{
			Items:      state.Items,
			TotalCount: state.TotalCount,
			Facets:     state.Facets,
		},
		Suggestions: state.Suggestions,
		GeneratedAt: state.UpdatedAt,
	}

	switch format {
	case export.FormatJSON:
		return export.NewJSONExporter().ExportResults(w, r)
	case export.FormatCSV:
		return export.NewCSVExporter().ExportResults(w, r)
	case export.FormatMarkdown:
		return export.NewMarkdownExporter().ExportResults(w, r)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writes gathered metrics in the Prometheus text format
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
