package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Assessment metrics
	assessments   *prometheus.CounterVec
	estimates     *prometheus.CounterVec
	bpCategories  *prometheus.CounterVec
	invalidInputs *prometheus.CounterVec

	// Prediction metrics
	predictions        *prometheus.CounterVec
	predictionLatency  prometheus.Histogram
	predictionErrors   *prometheus.CounterVec
	predictionDisabled prometheus.Counter
	predictorAvailable prometheus.Gauge
	breakerState       *prometheus.GaugeVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "diarisk",
		subsystem:        "service",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		constLabels:      map[string]string{},
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

	m.assessments = auto.NewCounterVec(
		m.counterOpts("assessments_total", "Total number of processed forms by mode (derive, assess)"),
		[]string{"mode"},
	)
	m.estimates = auto.NewCounterVec(
		m.counterOpts("estimates_total", "Total number of derived input values by field"),
		[]string{"field"},
	)
	m.bpCategories = auto.NewCounterVec(
		m.counterOpts("bp_category_total", "Blood pressure readings by category"),
		[]string{"category"},
	)
	m.invalidInputs = auto.NewCounterVec(
		m.counterOpts("invalid_inputs_total", "Forms rejected by range validation, by field"),
		[]string{"field"},
	)

	m.predictions = auto.NewCounterVec(
		m.counterOpts("predictions_total", "Total number of predictions by class"),
		[]string{"class"},
	)
	m.predictionLatency = auto.NewHistogram(
		m.histogramOpts("prediction_latency_milliseconds", "Histogram of predictor latency in milliseconds"),
	)
	m.predictionErrors = auto.NewCounterVec(
		m.counterOpts("prediction_errors_total", "Predictor failures by kind"),
		[]string{"kind"},
	)
	m.predictionDisabled = auto.NewCounter(
		m.counterOpts("prediction_disabled_total", "Prediction requests refused because artifacts are not loaded"),
	)
	m.predictorAvailable = auto.NewGauge(
		m.gaugeOpts("predictor_available", "1 when model and scaler are loaded, 0 otherwise"),
	)
	m.breakerState = auto.NewGaugeVec(
		m.gaugeOpts("breaker_state", "Circuit breaker state (0 closed, 1 half-open, 2 open)"),
		[]string{"name"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRateLimited = auto.NewCounterVec(
		m.counterOpts("http_rate_limited_total", "Requests rejected by the rate limiter"),
		[]string{"endpoint"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("memory_usage_bytes", "Current heap allocation in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("goroutines", "Current number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("gc_pause_milliseconds", "Average GC pause time in milliseconds"),
	)
}

// RecordAssessment counts a processed form.
func RecordAssessment(mode string) {
	globalManager.assessments.WithLabelValues(mode).Inc()
}

// RecordEstimate counts a derived field value.
func RecordEstimate(field string) {
	globalManager.estimates.WithLabelValues(field).Inc()
}

// RecordBPCategory counts a categorized blood pressure reading.
func RecordBPCategory(category string) {
	globalManager.bpCategories.WithLabelValues(category).Inc()
}

// RecordInvalidInput counts a form rejected on field.
func RecordInvalidInput(field string) {
	globalManager.invalidInputs.WithLabelValues(field).Inc()
}

// RecordPrediction counts a prediction by class.
func RecordPrediction(class string) {
	globalManager.predictions.WithLabelValues(class).Inc()
}

// RecordPredictionLatency records predictor latency in milliseconds.
func RecordPredictionLatency(latencyMs float64) {
	globalManager.predictionLatency.Observe(latencyMs)
}

// RecordPredictionError counts a predictor failure.
func RecordPredictionError(kind string) {
	globalManager.predictionErrors.WithLabelValues(kind).Inc()
}

// RecordPredictionDisabled counts a refused prediction.
func RecordPredictionDisabled() {
	globalManager.predictionDisabled.Inc()
}

// UpdatePredictorAvailable sets the availability gauge.
func UpdatePredictorAvailable(available bool) {
	v := 0.0
	if available {
		v = 1
	}
	globalManager.predictorAvailable.Set(v)
}

// UpdateBreakerState sets the state gauge of a named circuit breaker.
func UpdateBreakerState(name string, state int) {
	globalManager.breakerState.WithLabelValues(name).Set(float64(state))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
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

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
