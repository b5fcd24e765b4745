// Package metrics provides Prometheus metrics for the tariff service.
package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeLegal   = "legal"
	OutcomeIllegal = "illegal"
)

// Manager manages all Prometheus metrics for the tariff service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Core evaluation metrics
	validations       *prometheus.CounterVec
	evaluations       *prometheus.CounterVec
	illegalPasses     prometheus.Counter
	bonusesAwarded    prometheus.Counter
	evaluationLatency prometheus.Histogram
	quizzesGenerated  prometheus.Counter

	// Cache metrics
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	cacheEntries prometheus.Gauge

	// Storage and catalog
	savedTariffs    prometheus.Gauge
	catalogElements prometheus.Gauge

	// Batch evaluation metrics
	queueSize       prometheus.Gauge
	queueRejected   *prometheus.CounterVec
	activeWorkers   prometheus.Gauge
	jobsProcessed   prometheus.Counter
	workerLatency   prometheus.Histogram
	batchesReceived prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	errorRateByComponent *prometheus.CounterVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tariff",
		subsystem:        "service",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		customLabels:     make(map[string]string),
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
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     m.histogramBuckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.validations = auto.NewCounterVec(
		m.counterOpts("validations_total", "Pass pair validations by outcome"),
		[]string{"outcome"},
	)
	m.evaluations = auto.NewCounterVec(
		m.counterOpts("evaluations_total", "Tariff sheet evaluations by outcome"),
		[]string{"outcome"},
	)
	m.illegalPasses = auto.NewCounter(m.counterOpts("illegal_passes_total", "Passes holding at least one illegal slot"))
	m.bonusesAwarded = auto.NewCounter(m.counterOpts("bonuses_awarded_total", "Element bonuses awarded"))
	m.evaluationLatency = auto.NewHistogram(m.histogramOpts("evaluation_latency_milliseconds", "Sheet evaluation latency in milliseconds"))
	m.quizzesGenerated = auto.NewCounter(m.counterOpts("quizzes_generated_total", "Quiz question sets generated"))

	m.cacheHits = auto.NewCounter(m.counterOpts("cache_hits_total", "Evaluation cache hits"))
	m.cacheMisses = auto.NewCounter(m.counterOpts("cache_misses_total", "Evaluation cache misses"))
	m.cacheEntries = auto.NewGauge(m.gaugeOpts("cache_entries", "Evaluations currently cached"))

	m.savedTariffs = auto.NewGauge(m.gaugeOpts("saved_tariffs", "Tariff sheets currently stored"))
	m.catalogElements = auto.NewGauge(m.gaugeOpts("catalog_elements", "Elements in the loaded catalog"))

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Batch jobs waiting for a worker"))
	m.queueRejected = auto.NewCounterVec(
		m.counterOpts("queue_rejected_total", "Batch jobs rejected by the queue"),
		[]string{"reason"},
	)
	m.activeWorkers = auto.NewGauge(m.gaugeOpts("worker_active_count", "Batch workers currently running"))
	m.jobsProcessed = auto.NewCounter(m.counterOpts("worker_jobs_processed_total", "Batch jobs evaluated by workers"))
	m.workerLatency = auto.NewHistogram(m.histogramOpts("worker_processing_latency_milliseconds", "Per-job worker latency in milliseconds"))
	m.batchesReceived = auto.NewCounter(m.counterOpts("batches_total", "Batch evaluations requested"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap memory in use in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
}

func outcome(legal bool) string {
	if legal {
		return OutcomeLegal
	}
	return OutcomeIllegal
}

// RecordValidation counts a pass pair validation.
func RecordValidation(legal bool) {
	globalManager.validations.WithLabelValues(outcome(legal)).Inc()
}

// RecordEvaluation counts a sheet evaluation.
func RecordEvaluation(legal bool) {
	globalManager.evaluations.WithLabelValues(outcome(legal)).Inc()
}

// RecordIllegalPasses adds n passes holding illegal slots.
func RecordIllegalPasses(n int) {
	if n > 0 {
		globalManager.illegalPasses.Add(float64(n))
	}
}

// RecordBonusesAwarded adds n awarded element bonuses.
func RecordBonusesAwarded(n int) {
	if n > 0 {
		globalManager.bonusesAwarded.Add(float64(n))
	}
}

// RecordEvaluationLatency records evaluation latency in milliseconds.
func RecordEvaluationLatency(latencyMs float64) {
	globalManager.evaluationLatency.Observe(latencyMs)
}

// RecordQuizGenerated increments the quiz counter.
func RecordQuizGenerated() {
	globalManager.quizzesGenerated.Inc()
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// UpdateCacheEntries sets the number of cached evaluations.
func UpdateCacheEntries(count int) {
	globalManager.cacheEntries.Set(float64(count))
}

// UpdateSavedTariffs sets the number of stored tariff sheets.
func UpdateSavedTariffs(count int) {
	globalManager.savedTariffs.Set(float64(count))
}

// UpdateCatalogElements sets the catalog size.
func UpdateCatalogElements(count int) {
	globalManager.catalogElements.Set(float64(count))
}

// UpdateQueueSize sets the number of pending batch jobs.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// RecordQueueRejected counts a job the queue refused.
func RecordQueueRejected(reason string) {
	globalManager.queueRejected.WithLabelValues(reason).Inc()
}

// UpdateActiveWorkers sets the number of running batch workers.
func UpdateActiveWorkers(count int) {
	globalManager.activeWorkers.Set(float64(count))
}

// RecordJobProcessed counts a batch job evaluated by a worker.
func RecordJobProcessed() {
	globalManager.jobsProcessed.Inc()
}

// RecordWorkerLatency records per-job latency in milliseconds.
func RecordWorkerLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordBatch counts a batch evaluation request.
func RecordBatch() {
	globalManager.batchesReceived.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMetrics samples heap usage and goroutine count.
func UpdateSystemMetrics() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	globalManager.systemMemoryUsage.Set(float64(ms.HeapInuse))
	globalManager.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
