// Package metrics provides Prometheus metrics for the standings builder.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Match outcomes recorded by the aggregator.
const (
	OutcomeAccepted           = "accepted"
	OutcomeDuplicate          = "duplicate"
	OutcomeNoDate             = "no_date"
	OutcomeBadDate            = "bad_date"
	OutcomeBeforeSeason       = "before_season"
	OutcomeWrongMode          = "wrong_mode"
	OutcomeUnresolvedCPU      = "unresolved_cpu"
	OutcomeUnknownParticipant = "unknown_participant"
	OutcomeInvalidScore       = "invalid_score"
	OutcomeSelfMatch          = "self_match"
)

// Manager owns the Prometheus collectors of the standings builder.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Fetch
	pagesFetched *prometheus.CounterVec
	fetchErrors  *prometheus.CounterVec
	fetchLatency prometheus.Histogram

	// Aggregation
	matches     *prometheus.CounterVec
	teams       prometheus.Gauge
	builds      prometheus.Counter
	buildLatest prometheus.Gauge
	buildTime   prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "sdc",
		subsystem:        "standings",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.pagesFetched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_pages_fetched_total",
		Help:      "Game history pages retrieved, by participant",
	}, []string{"participant"})

	m.fetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_fetch_errors_total",
		Help:      "Game history page requests that failed, by participant",
	}, []string{"participant"})

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_fetch_latency_seconds",
		Help:      "Latency of a single game history page request",
		Buckets:   m.histogramBuckets,
	})

	m.matches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_total",
		Help:      "Match records seen by the aggregator, by outcome",
	}, []string{"outcome"})

	m.teams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams",
		Help:      "Number of rows in the latest standings table",
	})

	m.builds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "builds_total",
		Help:      "Completed standings builds",
	})

	m.buildLatest = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_last_unix",
		Help:      "Unix timestamp of the latest completed build",
	})

	m.buildTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_duration_seconds",
		Help:      "Wall time of a full standings build",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordPageFetched counts a retrieved history page for participant.
func RecordPageFetched(participant string) {
	globalManager.pagesFetched.WithLabelValues(participant).Inc()
}

// RecordFetchError counts a failed history page request for participant.
func RecordFetchError(participant string) {
	globalManager.fetchErrors.WithLabelValues(participant).Inc()
}

// RecordFetchLatency observes the duration of one page request.
func RecordFetchLatency(d time.Duration) {
	globalManager.fetchLatency.Observe(d.Seconds())
}

// RecordMatch counts one match record by aggregation outcome.
func RecordMatch(outcome string) {
	globalManager.matches.WithLabelValues(outcome).Inc()
}

// UpdateTeams sets the number of rows in the latest table.
func UpdateTeams(count int) {
	globalManager.teams.Set(float64(count))
}

// RecordBuild records a completed build that finished at now.
func RecordBuild(d time.Duration, now time.Time) {
	globalManager.builds.Inc()
	globalManager.buildTime.Observe(d.Seconds())
	globalManager.buildLatest.Set(float64(now.Unix()))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current metrics to path in the text exposition
// format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
