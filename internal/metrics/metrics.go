// Package metrics exposes build and preview-server Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all rustbible Prometheus collectors on an isolated registry,
// so tests and multiple servers in one process never collide.
type Metrics struct {
	Registry *prometheus.Registry

	// Build metrics
	BuildsTotal            *prometheus.CounterVec
	BuildDurationSeconds   prometheus.Histogram
	DocumentsScannedTotal  *prometheus.CounterVec
	DocumentsChangedTotal  prometheus.Counter
	SearchEntries          *prometheus.GaugeVec
	ChaptersPerBookMaximum prometheus.Gauge

	// Search metrics
	SearchQueriesTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	// Build info
	BuildInfo *prometheus.GaugeVec
}

// New creates a Metrics instance with every collector registered. version
// and goVersion are recorded as labels on rustbible_info.
func New(version, goVersion string) *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		BuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rustbible_builds_total",
				Help: "Total number of artifact builds by result.",
			},
			[]string{"result"},
		),
		BuildDurationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rustbible_build_duration_seconds",
				Help:    "Duration of artifact builds in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
		),
		DocumentsScannedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rustbible_documents_scanned_total",
				Help: "Total markdown documents read by builds.",
			},
			[]string{"kind"},
		),
		DocumentsChangedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "rustbible_documents_changed_total",
				Help: "Total documents whose content hash changed between builds.",
			},
		),
		SearchEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rustbible_search_entries",
				Help: "Search entries in the last built index by type.",
			},
			[]string{"type"},
		),
		ChaptersPerBookMaximum: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "rustbible_chapters_per_book_max",
				Help: "Largest chapter count of any book in the last build.",
			},
		),

		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rustbible_search_queries_total",
				Help: "Total search queries by result.",
			},
			[]string{"result"},
		),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rustbible_http_requests_total",
				Help: "Total number of preview server requests.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rustbible_http_request_duration_seconds",
				Help:    "Duration of preview server requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),

		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rustbible_info",
				Help: "Build information for the running rustbible binary.",
			},
			[]string{"version", "go_version"},
		),
	}

	reg.MustRegister(
		m.BuildsTotal,
		m.BuildDurationSeconds,
		m.DocumentsScannedTotal,
		m.DocumentsChangedTotal,
		m.SearchEntries,
		m.ChaptersPerBookMaximum,
		m.SearchQueriesTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.BuildInfo,
	)

	// Always 1, labels carry the data
	m.BuildInfo.WithLabelValues(version, goVersion).Set(1)

	return m
}

// Handler returns an http.Handler that serves the Prometheus metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveSearch counts a search query as a hit or a miss.
func (m *Metrics) ObserveSearch(results int) {
	if m == nil {
		return
	}
	result := "hit"
	if results == 0 {
		result = "miss"
	}
	m.SearchQueriesTotal.WithLabelValues(result).Inc()
}
