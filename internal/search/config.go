package search

import (
	"errors"
	"time"

	"inksearch/internal/cache"
	"inksearch/internal/history"
	"inksearch/internal/scheduler"
	"inksearch/internal/suggest"
)

// Config enumerates every tunable of a Controller.
type Config struct {
	Debounce            time.Duration
	CacheTTL            time.Duration
	CacheCapacity       int
	HistoryCapacity     int
	FewResultsThreshold int
}

func DefaultConfig() Config {
	return Config{
		Debounce:            scheduler.DefaultDelay,
		CacheTTL:            cache.DefaultTTL,
		CacheCapacity:       cache.DefaultCapacity,
		HistoryCapacity:     history.DefaultCapacity,
		FewResultsThreshold: suggest.DefaultFewResultsThreshold,
	}
}

func (c Config) Validate() error {
	if c.Debounce < 0 {
		return errors.New("debounce cannot be negative")
	}
	if c.CacheTTL <= 0 {
		return errors.New("cache ttl must be positive")
	}
	if c.CacheCapacity < 1 {
		return errors.New("cache capacity must be at least 1")
	}
	if c.HistoryCapacity < 1 {
		return errors.New("history capacity must be at least 1")
	}
	if c.FewResultsThreshold < 0 {
		return errors.New("few results threshold cannot be negative")
	}
	return nil
}
