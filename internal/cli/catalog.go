package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inksearch/internal/export"
	"inksearch/internal/repository"
)

var catalogConflict string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local artist catalogue",
	Long: `Manage the local artist catalogue searched by the local backend.

Examples:
  inksearch catalog import artists.json
  inksearch catalog import artists.json --conflict skip
  inksearch catalog export backup.json
  inksearch catalog count`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import artists from a JSON file",
	Long: `Import artists from a JSON file. The file is either a catalogue export
({"version": "1.0", "artists": [...]}) or a plain array of artists. Artists
are matched by slug, derived from the name when missing.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the catalogue as JSON",
	Long:  `Export every artist in the catalogue. Writes to stdout unless a file is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogExport,
}

var catalogCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count artists in the catalogue",
	RunE:  runCatalogCount,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogCountCmd)

	catalogImportCmd.Flags().StringVar(&catalogConflict, "conflict", "overwrite", "What to do with artists that already exist (skip, overwrite)")
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	strategy, err := export.ParseConflictStrategy(catalogConflict)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := export.NewImporter(a.artists).ImportCatalog(cmd.Context(), f, strategy)
	if err != nil {
		return fmt.Errorf("import failed after %d artist(s): %w", stats.Imported, err)
	}

	a.log.Info().Int("imported", stats.Imported).Int("skipped", stats.Skipped).Str("file", args[0]).Msg("catalogue imported")

	fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render(
		fmt.Sprintf("✓ Imported %d artist(s), skipped %d", stats.Imported, stats.Skipped)))
	return nil
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	w := cmd.OutOrStdout()
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.NewJSONExporter().ExportCatalog(cmd.Context(), w, a.artists); err != nil {
		return err
	}

	if len(args) == 1 {
		fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render(fmt.Sprintf("✓ Catalogue exported to %s", args[0])))
	}
	return nil
}

func runCatalogCount(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.artists.Count(cmd.Context(), repository.ArtistFilter{})
	if err != nil {
		return fmt.Errorf("failed to count artists: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d artist(s) in %s\n", n, a.cfg.DBPath)
	return nil
}
