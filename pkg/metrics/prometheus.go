// Package metrics provides Prometheus metrics for the teamforge service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the service exposes.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Build pipeline metrics.
	buildPasses    prometheus.Counter
	buildRejected  prometheus.Counter
	rankingLatency prometheus.Histogram
	suggestions    prometheus.Counter

	// Selection metrics.
	selectionOverrides prometheus.Counter

	// Operational health metrics.
	poolSize      prometheus.Gauge
	proposalCount prometheus.Gauge
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	queueEnqueues prometheus.Counter
	queueDequeues prometheus.Counter
	queueRefusals prometheus.Counter
	workerCount   prometheus.Gauge
	workerLatency prometheus.Histogram
	workerErrors  prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "teamforge",
		subsystem:        "matching",
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

	m.buildPasses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_passes_total",
		Help:      "Total number of completed team build passes",
	})

	m.buildRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_rejected_total",
		Help:      "Total number of build requests refused because a pass was already in flight",
	})

	m.rankingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_latency_milliseconds",
		Help:      "Histogram of full ranking pass latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.suggestions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestions_generated_total",
		Help:      "Total number of ranked candidate rows generated",
	})

	m.selectionOverrides = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "selection_overrides_total",
		Help:      "Total number of manual selection overrides",
	})

	m.poolSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_size",
		Help:      "Number of resources in the talent pool",
	})

	m.proposalCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "proposal_count",
		Help:      "Number of proposals held in memory",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of queued build jobs",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Configured build job queue capacity",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueues_total",
		Help:      "Total number of build jobs accepted onto the queue",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeues_total",
		Help:      "Total number of build jobs handed to workers",
	})

	m.queueRefusals = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_refusals_total",
		Help:      "Total number of build jobs refused by a full or closed queue",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Current number of build workers",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_latency_milliseconds",
		Help:      "Histogram of per-job worker processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Total number of build jobs that failed",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration by endpoint, method and status",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status"})
}

// RecordBuildPass increments the completed build pass counter.
func RecordBuildPass() {
	globalManager.buildPasses.Inc()
}

// RecordBuildRejected increments the in-flight refusal counter.
func RecordBuildRejected() {
	globalManager.buildRejected.Inc()
}

// RecordRankingLatency records a full ranking pass latency in milliseconds.
func RecordRankingLatency(latencyMs float64) {
	globalManager.rankingLatency.Observe(latencyMs)
}

// RecordSuggestions adds to the generated suggestion counter.
func RecordSuggestions(count int) {
	globalManager.suggestions.Add(float64(count))
}

// RecordSelectionOverride increments the manual override counter.
func RecordSelectionOverride() {
	globalManager.selectionOverrides.Inc()
}

// UpdatePoolSize sets the pool size gauge.
func UpdatePoolSize(size int) {
	globalManager.poolSize.Set(float64(size))
}

// UpdateProposalCount sets the proposal count gauge.
func UpdateProposalCount(count int) {
	globalManager.proposalCount.Set(float64(count))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the configured queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the accepted job counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueues.Inc()
}

// RecordQueueDequeue increments the delivered job counter.
func RecordQueueDequeue() {
	globalManager.queueDequeues.Inc()
}

// RecordQueueRefusal increments the refused job counter.
func RecordQueueRefusal() {
	globalManager.queueRefusals.Inc()
}

// UpdateWorkerCount sets the worker count gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerLatency records a per-job processing latency in milliseconds.
func RecordWorkerLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the failed job counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records one HTTP request's duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by the service.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
