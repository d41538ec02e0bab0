package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"inksearch/internal/history"
	"inksearch/internal/scheduler"
	"inksearch/internal/suggest"
)

type options struct {
	log       zerolog.Logger
	storage   history.Storage
	now       func() time.Time
	timerFunc scheduler.TimerFunc
	registry  prometheus.Registerer
	popular   []suggest.PopularSearch
}

type Option func(*options)

func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithStorage persists search history. Without it history lives in memory
// for the lifetime of the controller.
func WithStorage(storage history.Storage) Option {
	return func(o *options) { o.storage = storage }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithTimerFunc(fn scheduler.TimerFunc) Option {
	return func(o *options) { o.timerFunc = fn }
}

func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registry = reg }
}

// WithPopular replaces the pool of popular searches offered as suggestions.
func WithPopular(popular []suggest.PopularSearch) Option {
	return func(o *options) { o.popular = popular }
}
