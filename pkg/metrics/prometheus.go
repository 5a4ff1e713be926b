// Package metrics provides Prometheus metrics for the memedash dashboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Upstream Metrics - calls to the score API
	upstreamRequests       *prometheus.CounterVec
	upstreamRequestLatency *prometheus.HistogramVec
	upstreamThrottleWait   prometheus.Histogram

	// Dashboard State Metrics
	refreshes        *prometheus.CounterVec
	refreshSkipped   prometheus.Counter
	entitiesLoaded   prometheus.Gauge
	snapshotVersion  prometheus.Gauge
	lastRefreshUnix  prometheus.Gauge
	viewRecomputes   prometheus.Counter
	detailCacheHits  prometheus.Counter
	detailCacheMiss  prometheus.Counter
	chartRenderError *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "memedash",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.upstreamRequests = auto.NewCounterVec(
		m.counterOpts("upstream_requests_total", "Upstream score API calls by operation and outcome"),
		[]string{"operation", "outcome"},
	)
	m.upstreamRequestLatency = auto.NewHistogramVec(
		m.histogramOpts("upstream_request_latency_milliseconds", "Upstream score API latency in milliseconds"),
		[]string{"operation"},
	)
	m.upstreamThrottleWait = auto.NewHistogram(
		m.histogramOpts("upstream_throttle_wait_milliseconds", "Time spent waiting on the upstream rate limiter"),
	)

	m.refreshes = auto.NewCounterVec(
		m.counterOpts("refreshes_total", "Score list refreshes by outcome"),
		[]string{"outcome"},
	)
	m.refreshSkipped = auto.NewCounter(
		m.counterOpts("refreshes_skipped_total", "Refresh calls dropped because one was already in flight"),
	)
	m.entitiesLoaded = auto.NewGauge(
		m.gaugeOpts("entities_loaded", "Number of scored entities currently held"),
	)
	m.snapshotVersion = auto.NewGauge(
		m.gaugeOpts("snapshot_version", "Version of the current score list"),
	)
	m.lastRefreshUnix = auto.NewGauge(
		m.gaugeOpts("last_refresh_unix", "Unix timestamp of the last completed refresh"),
	)
	m.viewRecomputes = auto.NewCounter(
		m.counterOpts("view_recomputes_total", "Number of aggregate view recomputations"),
	)
	m.detailCacheHits = auto.NewCounter(
		m.counterOpts("detail_cache_hits_total", "Detail lookups served from cache"),
	)
	m.detailCacheMiss = auto.NewCounter(
		m.counterOpts("detail_cache_misses_total", "Detail lookups that went upstream"),
	)
	m.chartRenderError = auto.NewCounterVec(
		m.counterOpts("chart_render_errors_total", "Chart image render failures by chart"),
		[]string{"chart"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
}

// RecordUpstreamRequest counts an upstream call and observes its latency.
func RecordUpstreamRequest(operation, outcome string, latencyMs float64) {
	globalManager.upstreamRequests.WithLabelValues(operation, outcome).Inc()
	globalManager.upstreamRequestLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordUpstreamThrottleWait observes time spent waiting for the rate limiter.
func RecordUpstreamThrottleWait(waitMs float64) {
	globalManager.upstreamThrottleWait.Observe(waitMs)
}

// RecordRefresh counts a completed refresh with its outcome (succeeded/failed).
func RecordRefresh(outcome string, unixTime int64) {
	globalManager.refreshes.WithLabelValues(outcome).Inc()
	globalManager.lastRefreshUnix.Set(float64(unixTime))
}

// RecordRefreshSkipped counts a refresh dropped by the single-flight guard.
func RecordRefreshSkipped() {
	globalManager.refreshSkipped.Inc()
}

// UpdateEntitiesLoaded sets the number of entities currently held.
func UpdateEntitiesLoaded(count int) {
	globalManager.entitiesLoaded.Set(float64(count))
}

// UpdateSnapshotVersion sets the current list version.
func UpdateSnapshotVersion(version uint64) {
	globalManager.snapshotVersion.Set(float64(version))
}

// RecordViewRecompute counts an aggregate view recomputation.
func RecordViewRecompute() {
	globalManager.viewRecomputes.Inc()
}

// RecordDetailCacheHit counts a detail lookup served from cache.
func RecordDetailCacheHit() {
	globalManager.detailCacheHits.Inc()
}

// RecordDetailCacheMiss counts a detail lookup that went upstream.
func RecordDetailCacheMiss() {
	globalManager.detailCacheMiss.Inc()
}

// RecordChartRenderError counts a failed chart image render.
func RecordChartRenderError(chart string) {
	globalManager.chartRenderError.WithLabelValues(chart).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
