package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"inksearch/internal/history"
	"inksearch/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query language help and utilities",
	Long:  `Display query language syntax help and inspect how a query is understood.`,
}

var queryHelpCmd = &cobra.Command{
	Use:   "help",
	Short: "Display query language syntax reference",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), queryHelp+"\n")
	},
}

var queryParseCmd = &cobra.Command{
	Use:   "parse [query]",
	Short: "Show how a query is normalized",
	Long: `Show the canonical form of a query: the text it formats back to, the
parameters sent to a remote backend and the key its results are cached by.

Example:
  inksearch query parse "Koi  style:Japanese,blackwork @London price:300-100"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return describeQuery(cmd.OutOrStdout(), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(queryHelpCmd)
	queryCmd.AddCommand(queryParseCmd)
}

func describeQuery(w io.Writer, raw string) error {
	in, err := query.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	q := query.Normalize(in)

	fmt.Fprintf(w, "query:      %s\n", query.Format(q))
	fmt.Fprintf(w, "label:      %s\n", history.Label(q))
	fmt.Fprintf(w, "target:     %s\n", q.Target())
	fmt.Fprintf(w, "cache key:  %s\n", q.CacheKey())

	switch {
	case q.IsEmpty():
		fmt.Fprintln(w, "status:     empty, nothing would be searched")
	case q.Validate() != nil:
		fmt.Fprintf(w, "status:     invalid, %v\n", q.Validate())
	default:
		fmt.Fprintln(w, "status:     ok")
	}
	return nil
}

const queryHelp = `
Query Language Syntax Reference

Free words are matched against artist names, cities and styles. Every word
must match. Filters narrow the search further.
Use it with: inksearch search "your query here"

FIELD FILTERS:
  style:<s>[,<s>...]       Any of these styles (also: styles)
  city:<name>              City (also: in)
  @<name>                  City shorthand
  postcode:<prefix>        Postcode prefix (also: zip, near)
  radius:<km>              Search radius, e.g. radius:10km (also: within)
  level:<l>[,<l>...]       beginner, intermediate, advanced (also: difficulty)
  price:<min>-<max>        Price range; also price:100+ or price:200 (upper bound)
  available:yes            Only artists taking bookings (also: open)
  rating:<n>               Minimum rating 0-5, e.g. rating:4.5 (also: stars)

RESULTS:
  sort:<mode>              relevance, rating, price_asc, price_desc, distance, newest
  page:<n>                 Result page, from 1
  limit:<n>                Results per page, up to 100

QUOTING:
  Values with spaces need quotes: city:"milton keynes"

EXAMPLES:
  inksearch search "koi style:japanese @london"
    → Japanese-style artists in London matching "koi"

  inksearch search "style:fineline,floral price:-150 available:yes"
    → Fine line or floral artists up to £150 taking bookings

  inksearch search "near:BS1 level:beginner sort:rating"
    → Beginner-friendly artists around BS1, best rated first

TIPS:
  - Fields and values are case-insensitive
  - Styles use underscores: old_school, neo_traditional, trash_polka
  - Run 'inksearch query parse "..."' to see how a query is read
`
