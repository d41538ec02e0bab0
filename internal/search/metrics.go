package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"inksearch/internal/domain"
)

const metricsNamespace = "inksearch"

type metrics struct {
	searches       prometheus.Counter
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	staleDiscarded prometheus.Counter
	backendErrors  *prometheus.CounterVec
	backendLatency prometheus.Histogram
}

// a nil registerer builds working collectors that are never exported
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)

	return &metrics{
		searches: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "searches_total",
			Help:      "Searches that reached execution after the debounce window.",
		}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hits_total",
			Help:      "Searches answered from the result cache.",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_misses_total",
			Help:      "Searches that had to call the backend.",
		}),
		staleDiscarded: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stale_responses_total",
			Help:      "Backend responses dropped because a newer search superseded them.",
		}),
		backendErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "backend_errors_total",
				Help:      "Failed searches by error kind.",
			},
			[]string{"kind"},
		),
		backendLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "backend_latency_seconds",
			Help:      "Time spent waiting for the search backend.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *metrics) observeError(kind domain.ErrorKind) {
	m.backendErrors.WithLabelValues(string(kind)).Inc()
}
