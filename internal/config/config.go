package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"inksearch/internal/search"
)

const (
	BackendLocal = "local"
	BackendHTTP  = "http"

	envPrefix = "INKSEARCH"
)

type Config struct {
	DBPath           string         `mapstructure:"db_path"`
	ThemeName        string         `mapstructure:"theme_name"`
	Backend          string         `mapstructure:"backend"`
	BackendURL       string         `mapstructure:"backend_url"`
	BackendToken     string         `mapstructure:"backend_token"`
	BackendTimeoutMs int            `mapstructure:"backend_timeout_ms"`
	LogLevel         string         `mapstructure:"log_level"`
	Search           SearchSettings `mapstructure:"search"`
}

// tunables of the search controller, in milliseconds where they are durations
type SearchSettings struct {
	DebounceMs          int `mapstructure:"debounce_ms"`
	CacheTTLMs          int `mapstructure:"cache_ttl_ms"`
	CacheCapacity       int `mapstructure:"cache_capacity"`
	HistoryCapacity     int `mapstructure:"history_capacity"`
	FewResultsThreshold int `mapstructure:"few_results_threshold"`
}

var (
	configDir  string
	configFile string
)

func init() {
	// get home dir
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}

	configDir = filepath.Join(homeDir, ".inksearch")
	configFile = filepath.Join(configDir, "config.yaml")
}

func GetConfigFile() string {
	return configFile
}

func GetLogFile() string {
	return filepath.Join(configDir, "inksearch.log")
}

func ConfigExists() bool {
	_, err := os.Stat(configFile)
	return err == nil
}

func EnsureConfigDir() error {
	return os.MkdirAll(configDir, 0755)
}

// returns default config
func GetDefaultConfig() *Config {
	defaults := search.DefaultConfig()

	return &Config{
		DBPath:           filepath.Join(configDir, "inksearch.db"),
		ThemeName:        "",
		Backend:          BackendLocal,
		BackendTimeoutMs: 10000,
		LogLevel:         "info",
		Search: SearchSettings{
			DebounceMs:          int(defaults.Debounce / time.Millisecond),
			CacheTTLMs:          int(defaults.CacheTTL / time.Millisecond),
			CacheCapacity:       defaults.CacheCapacity,
			HistoryCapacity:     defaults.HistoryCapacity,
			FewResultsThreshold: defaults.FewResultsThreshold,
		},
	}
}

func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("theme_name", cfg.ThemeName)
	v.SetDefault("backend", cfg.Backend)
	v.SetDefault("backend_url", cfg.BackendURL)
	v.SetDefault("backend_token", cfg.BackendToken)
	v.SetDefault("backend_timeout_ms", cfg.BackendTimeoutMs)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("search.debounce_ms", cfg.Search.DebounceMs)
	v.SetDefault("search.cache_ttl_ms", cfg.Search.CacheTTLMs)
	v.SetDefault("search.cache_capacity", cfg.Search.CacheCapacity)
	v.SetDefault("search.history_capacity", cfg.Search.HistoryCapacity)
	v.SetDefault("search.few_results_threshold", cfg.Search.FewResultsThreshold)

	// INKSEARCH_BACKEND_URL, INKSEARCH_SEARCH_DEBOUNCE_MS, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// loads config from file, environment overrides win
func LoadConfig() (*Config, error) {
	if err := EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(GetDefaultConfig())

	if ConfigExists() {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(configDir, "inksearch.db")
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendLocal
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// saves config to file
func SaveConfig(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("db_path", cfg.DBPath)
	v.Set("theme_name", cfg.ThemeName)
	v.Set("backend", cfg.Backend)
	v.Set("backend_url", cfg.BackendURL)
	v.Set("backend_token", cfg.BackendToken)
	v.Set("backend_timeout_ms", cfg.BackendTimeoutMs)
	v.Set("log_level", cfg.LogLevel)
	v.Set("search.debounce_ms", cfg.Search.DebounceMs)
	v.Set("search.cache_ttl_ms", cfg.Search.CacheTTLMs)
	v.Set("search.cache_capacity", cfg.Search.CacheCapacity)
	v.Set("search.history_capacity", cfg.Search.HistoryCapacity)
	v.Set("search.few_results_threshold", cfg.Search.FewResultsThreshold)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
	case BackendHTTP:
		if strings.TrimSpace(c.BackendURL) == "" {
			return errors.New("backend_url is required for the http backend")
		}
	default:
		return fmt.Errorf("unknown backend %q: must be %s or %s", c.Backend, BackendLocal, BackendHTTP)
	}

	if c.BackendTimeoutMs <= 0 {
		return errors.New("backend_timeout_ms must be positive")
	}

	if err := c.SearchConfig().Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	return nil
}

// SearchConfig converts the file settings into controller configuration.
func (c *Config) SearchConfig() search.Config {
	return search.Config{
		Debounce:            time.Duration(c.Search.DebounceMs) * time.Millisecond,
		CacheTTL:            time.Duration(c.Search.CacheTTLMs) * time.Millisecond,
		CacheCapacity:       c.Search.CacheCapacity,
		HistoryCapacity:     c.Search.HistoryCapacity,
		FewResultsThreshold: c.Search.FewResultsThreshold,
	}
}

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutMs) * time.Millisecond
}

// updates theme in config file
func UpdateTheme(themeName string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ThemeName = themeName
	return SaveConfig(cfg)
}
