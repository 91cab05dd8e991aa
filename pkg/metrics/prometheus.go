// Package metrics provides Prometheus metrics for the playerboard service.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultRefreshInterval = 10 * time.Second

// Result labels for feed fetches.
const (
	FetchOK    = "ok"
	FetchError = "error"
	FetchEmpty = "empty"
)

// visibleBuckets sizes the visible-collection histogram.
var visibleBuckets = []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500}

// Manager owns every Prometheus collector used by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          atomic.Bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Feed
	feedFetches       *prometheus.CounterVec
	feedFetchDuration prometheus.Histogram
	feedPayloadBytes  prometheus.Gauge

	// Board
	playersTotal    prometheus.Gauge
	playersLoadedAt prometheus.Gauge
	searches        *prometheus.CounterVec
	visiblePlayers  prometheus.Histogram
	imageRequests   *prometheus.CounterVec

	// Repository
	repositoryQueryLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out of /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "playerboard",
		subsystem:        "board",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	m.enabled.Store(true)
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.feedFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("feed_fetches_total"),
		Help:        "Player feed fetches by result",
		ConstLabels: labels,
	}, []string{"result"})

	m.feedFetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("feed_fetch_duration_milliseconds"),
		Help:        "Duration of player feed fetches in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.feedPayloadBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("feed_payload_bytes"),
		Help:        "Size of the last player feed payload",
		ConstLabels: labels,
	})

	m.playersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("players_total"),
		Help:        "Players in the authoritative collection",
		ConstLabels: labels,
	})

	m.playersLoadedAt = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("players_loaded_timestamp_seconds"),
		Help:        "Unix time the authoritative collection was stored",
		ConstLabels: labels,
	})

	m.searches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("searches_total"),
		Help:        "Visible collection derivations by query kind (empty or text)",
		ConstLabels: labels,
	}, []string{"kind"})

	m.visiblePlayers = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("visible_players"),
		Help:        "Size of the visible collection per derivation",
		Buckets:     visibleBuckets,
		ConstLabels: labels,
	})

	m.imageRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("image_requests_total"),
		Help:        "Player image requests by outcome (hit or fallback)",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.repositoryQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("repository_query_latency_milliseconds"),
		Help:        "Latency of authoritative collection reads in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "HTTP requests by endpoint, method and status code",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_component_total"),
		Help:        "Errors by component and type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_type_total"),
		Help:        "Errors by type and severity",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "Errors by endpoint, method and type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("error_latency_milliseconds"),
		Help:        "Latency of operations that ended in an error",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("memory_usage_bytes"),
		Help:        "Heap bytes allocated",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("goroutines"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("gc_pause_milliseconds"),
		Help:        "Average GC pause in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled.Load() }

// RefreshInterval is how often gauges sampled from runtime state are refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Feed metrics.

// RecordFeedFetch counts a feed fetch with its result label and duration.
func RecordFeedFetch(result string, durationMs float64) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.feedFetches.WithLabelValues(result).Inc()
	globalManager.feedFetchDuration.Observe(durationMs)
}

// UpdateFeedPayloadBytes sets the size of the last feed payload.
func UpdateFeedPayloadBytes(n int64) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.feedPayloadBytes.Set(float64(n))
}

// Board metrics.

// UpdatePlayersTotal sets the size of the authoritative collection.
func UpdatePlayersTotal(count int) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.playersTotal.Set(float64(count))
}

// UpdatePlayersLoadedAt records when the authoritative collection was stored.
func UpdatePlayersLoadedAt(t time.Time) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.playersLoadedAt.Set(float64(t.Unix()))
}

// RecordSearch records one visible-collection derivation.
func RecordSearch(query string, visible int) {
	if !globalManager.Enabled() {
		return
	}
	kind := "text"
	if query == "" {
		kind = "empty"
	}
	globalManager.searches.WithLabelValues(kind).Inc()
	globalManager.visiblePlayers.Observe(float64(visible))
}

// RecordImageRequest counts a player image request; outcome is "hit" or "fallback".
func RecordImageRequest(outcome string) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.imageRequests.WithLabelValues(outcome).Inc()
}

// RecordRepositoryQueryLatency records the latency of a collection read.
func RecordRepositoryQueryLatency(latencyMs float64) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// HTTP metrics.

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that ended in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System metrics.

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !globalManager.Enabled() {
		return
	}
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval returns how often system metrics should be sampled.
func RefreshInterval() time.Duration {
	return globalManager.RefreshInterval()
}

// SetEnabled turns the global recorders on or off. Collectors stay
// registered; disabled recorders simply stop updating them.
func SetEnabled(enabled bool) {
	globalManager.enabled.Store(enabled)
}
