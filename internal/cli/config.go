package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"inksearch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long: `Show the effective configuration: the config file with INKSEARCH_*
environment overrides applied.`,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigFile())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.ConfigExists() {
			return fmt.Errorf("config file already exists: %s", config.GetConfigFile())
		}
		if err := config.SaveConfig(config.GetDefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", config.GetConfigFile())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	printConfig(cmd.OutOrStdout(), cfg)
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	token := ""
	if cfg.BackendToken != "" {
		token = "(set)"
	}

	fmt.Fprintf(w, "config file:            %s\n", config.GetConfigFile())
	fmt.Fprintf(w, "log file:               %s\n", config.GetLogFile())
	fmt.Fprintf(w, "db_path:                %s\n", cfg.DBPath)
	fmt.Fprintf(w, "theme_name:             %s\n", cfg.ThemeName)
	fmt.Fprintf(w, "log_level:              %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "backend:                %s\n", cfg.Backend)
	fmt.Fprintf(w, "backend_url:            %s\n", cfg.BackendURL)
	fmt.Fprintf(w, "backend_token:          %s\n", token)
	fmt.Fprintf(w, "backend_timeout_ms:     %d\n", cfg.BackendTimeoutMs)
	fmt.Fprintf(w, "search.debounce_ms:     %d\n", cfg.Search.DebounceMs)
	fmt.Fprintf(w, "search.cache_ttl_ms:    %d\n", cfg.Search.CacheTTLMs)
	fmt.Fprintf(w, "search.cache_capacity:  %d\n", cfg.Search.CacheCapacity)
	fmt.Fprintf(w, "search.history_capacity: %d\n", cfg.Search.HistoryCapacity)
	fmt.Fprintf(w, "search.few_results_threshold: %d\n", cfg.Search.FewResultsThreshold)
}
