package providers

import (
	"snappy/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncSnapshots(status string)
	IncCases(status string)
	ObserveRunDuration(duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	Flush() error
}

type MetricsProvider struct {
	registry            *prometheus.Registry
	textfile            string
	snapshotsTotal      *prometheus.CounterVec
	casesTotal          *prometheus.CounterVec
	runDuration         prometheus.Histogram
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncSnapshots(status string) {
	m.snapshotsTotal.WithLabelValues(status).Inc()
}

func (m *MetricsProvider) IncCases(status string) {
	m.casesTotal.WithLabelValues(status).Inc()
}

func (m *MetricsProvider) ObserveRunDuration(duration time.Duration) {
	m.runDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

// Flush writes the registry in text exposition format for a node exporter
// textfile collector. Without a configured textfile it does nothing.
func (m *MetricsProvider) Flush() error {
	if m.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(m.textfile, m.registry)
}

func (m *MetricsProvider) Gatherer() prometheus.Gatherer {
	return m.registry
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &MetricsProvider{
		registry: reg,
		textfile: conf.Metrics.Textfile,

		snapshotsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snappy_snapshots_total",
			Help: "Total number of snapshot assertions by outcome",
		}, []string{"status"}),

		casesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snappy_cases_total",
			Help: "Total number of test cases run by outcome",
		}, []string{"status"}),

		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "snappy_run_duration_seconds",
			Help:    "Duration of a full run in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "snappy_header_cache_hits_total",
			Help: "Total number of snapshot header cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "snappy_header_cache_misses_total",
			Help: "Total number of snapshot header cache misses",
		}),

		persistenceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "snappy_persistence_duration_seconds",
			Help:    "Duration of pending snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncSnapshots(_ string)                      {}
func (n *noopMetrics) IncCases(_ string)                          {}
func (n *noopMetrics) ObserveRunDuration(_ time.Duration)         {}
func (n *noopMetrics) IncCacheHits()                              {}
func (n *noopMetrics) IncCacheMisses()                            {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration) {}
func (n *noopMetrics) Flush() error                               { return nil }
