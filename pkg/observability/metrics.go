package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the search
// pipeline and its outbound API clients.
type Metrics struct {
	SearchesTotal  prometheus.Counter
	SearchDuration prometheus.Histogram
	EventsReturned prometheus.Histogram

	APIRequests     *prometheus.CounterVec // labels: service={ticketmaster,lastfm}, outcome={success,error}
	PopularityCache *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "concert_finder",
			Name:      "searches_total",
			Help:      "Total search runs triggered.",
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "concert_finder",
			Name:      "search_duration_seconds",
			Help:      "Duration of a complete expand-search-rank-format run.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EventsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "concert_finder",
			Name:      "events_returned",
			Help:      "Number of events a search run returned after filtering.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concert_finder",
			Name:      "api_requests_total",
			Help:      "Outbound API requests by service and outcome.",
		}, []string{"service", "outcome"}),
		PopularityCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concert_finder",
			Name:      "popularity_cache_total",
			Help:      "Popularity cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.SearchesTotal,
		m.SearchDuration,
		m.EventsReturned,
		m.APIRequests,
		m.PopularityCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SearchesTotal:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "concert_finder", Name: "searches_total"}),
		SearchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "concert_finder", Name: "search_duration_seconds"}),
		EventsReturned:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "concert_finder", Name: "events_returned"}),
		APIRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "concert_finder", Name: "api_requests_total"}, []string{"service", "outcome"}),
		PopularityCache: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "concert_finder", Name: "popularity_cache_total"}, []string{"result"}),
	}
}
