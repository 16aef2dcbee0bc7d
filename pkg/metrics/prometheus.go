// Package metrics provides Prometheus metrics for the Apex Speed Run service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Ingestion Metrics - sheet fetch and row parsing
	sheetsFetched    *prometheus.CounterVec
	sheetsFailed     *prometheus.CounterVec
	sheetFetchBytes  *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	rowsParsed       *prometheus.CounterVec
	rowsDropped      *prometheus.CounterVec
	headersNotFound  *prometheus.CounterVec
	keyCollisions    prometheus.Counter
	ambiguousSetters prometheus.Counter

	// Aggregation Metrics - pipeline runs and snapshot publishing
	aggregationDuration prometheus.Histogram
	aggregationRuns     prometheus.Counter
	snapshotLastUnix    prometheus.Gauge
	snapshotAthletes    prometheus.Gauge
	snapshotCourses     prometheus.Gauge
	snapshotSetters     prometheus.Gauge
	snapshotBoards      prometheus.Gauge
	pipelineState       *prometheus.GaugeVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "apexspeedrun",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Ingestion Metrics
	m.sheetsFetched = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "sheets_fetched_total",
			Help:      "Total number of successful sheet fetches by sheet name",
		},
		[]string{"sheet"},
	)

	m.sheetsFailed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "sheets_failed_total",
			Help:      "Total number of failed sheet fetches by sheet name",
		},
		[]string{"sheet"},
	)

	m.sheetFetchBytes = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "sheet_fetch_bytes_total",
			Help:      "Total bytes downloaded per sheet",
		},
		[]string{"sheet"},
	)

	m.fetchDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "sheet_fetch_duration_milliseconds",
			Help:      "Sheet fetch duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"sheet"},
	)

	m.rowsParsed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "rows_parsed_total",
			Help:      "Total number of data rows parsed by table",
		},
		[]string{"table"},
	)

	m.rowsDropped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "rows_dropped_total",
			Help:      "Total number of rows dropped for missing or invalid required fields",
		},
		[]string{"table"},
	)

	m.headersNotFound = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "headers_not_found_total",
			Help:      "Total number of tables whose header row could not be located",
		},
		[]string{"table"},
	)

	m.keyCollisions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "athlete_key_collisions_total",
		Help:      "Total number of athlete key collisions across distinct raw names",
	})

	m.ambiguousSetters = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ambiguous_setter_links_total",
		Help:      "Total number of setter-to-course links resolved only by fuzzy matching",
	})

	// Aggregation Metrics
	m.aggregationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_duration_milliseconds",
		Help:      "Full pipeline aggregation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.aggregationRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_runs_total",
		Help:      "Total number of pipeline aggregation runs",
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix timestamp of the last published snapshot",
	})

	m.snapshotAthletes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_athletes",
		Help:      "Number of athletes in the current snapshot",
	})

	m.snapshotCourses = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_courses",
		Help:      "Number of registered courses in the current snapshot",
	})

	m.snapshotSetters = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_setters",
		Help:      "Number of setters in the current snapshot",
	})

	m.snapshotBoards = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_leaderboards",
		Help:      "Number of per-gender course leaderboards in the current snapshot",
	})

	m.pipelineState = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "pipeline_state",
			Help:      "Pipeline state flags (1 = active) by state: ok, partial, failed",
		},
		[]string{"state"},
	)

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total errors by component and error type",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total errors by endpoint, method and error type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of failed operations in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Current memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers operating on the global manager.

// RecordSheetFetched records a successful sheet fetch.
func RecordSheetFetched(sheet string, bytes int, durationMs float64) {
	globalManager.sheetsFetched.WithLabelValues(sheet).Inc()
	globalManager.sheetFetchBytes.WithLabelValues(sheet).Add(float64(bytes))
	globalManager.fetchDuration.WithLabelValues(sheet).Observe(durationMs)
}

// RecordSheetFailed records a failed sheet fetch.
func RecordSheetFailed(sheet string) {
	globalManager.sheetsFailed.WithLabelValues(sheet).Inc()
}

// RecordRowsParsed adds to the parsed-row counter for a table.
func RecordRowsParsed(table string, n int) {
	globalManager.rowsParsed.WithLabelValues(table).Add(float64(n))
}

// RecordRowsDropped adds to the dropped-row counter for a table.
func RecordRowsDropped(table string, n int) {
	globalManager.rowsDropped.WithLabelValues(table).Add(float64(n))
}

// RecordHeaderNotFound records a table whose header row was not located.
func RecordHeaderNotFound(table string) {
	globalManager.headersNotFound.WithLabelValues(table).Inc()
}

// RecordKeyCollision records an athlete key collision.
func RecordKeyCollision() {
	globalManager.keyCollisions.Inc()
}

// RecordAmbiguousSetterLink records a fuzzy-only setter link.
func RecordAmbiguousSetterLink() {
	globalManager.ambiguousSetters.Inc()
}

// RecordAggregation records one pipeline run with its duration.
func RecordAggregation(durationMs float64) {
	globalManager.aggregationRuns.Inc()
	globalManager.aggregationDuration.Observe(durationMs)
}

// UpdateSnapshot updates the snapshot gauges after a publish.
func UpdateSnapshot(athletes, courses, setters, boards int) {
	globalManager.snapshotLastUnix.Set(float64(time.Now().Unix()))
	globalManager.snapshotAthletes.Set(float64(athletes))
	globalManager.snapshotCourses.Set(float64(courses))
	globalManager.snapshotSetters.Set(float64(setters))
	globalManager.snapshotBoards.Set(float64(boards))
}

// UpdatePipelineState sets exactly one pipeline state flag.
func UpdatePipelineState(state string) {
	for _, s := range []string{"ok", "partial", "failed"} {
		v := 0.0
		if s == state {
			v = 1.0
		}
		globalManager.pipelineState.WithLabelValues(s).Set(v)
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage updates the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause observation.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
