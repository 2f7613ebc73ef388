// Package metrics provides Prometheus metrics for the IGNITE analytics service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "ignite"
	defaultSubsystem = "analytics"
)

// Manager manages all Prometheus metrics for the IGNITE service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Training Metrics - model fitting runs and their quality
	trainingRuns     *prometheus.CounterVec
	trainingErrors   *prometheus.CounterVec
	trainingDuration *prometheus.HistogramVec
	modelScore       *prometheus.GaugeVec
	featuresUsed     *prometheus.GaugeVec

	// Pipeline Metrics - feature building and label synthesis
	featureRows       prometheus.Gauge
	unknownCategories *prometheus.CounterVec
	labelPositiveRate prometheus.Gauge

	// Risk Metrics - what the population looks like after scoring
	predictions       prometheus.Counter
	highRiskEmployees prometheus.Gauge
	riskCategory      *prometheus.GaugeVec

	// Register Metrics - ranked risk store
	registerRecords      prometheus.Gauge
	registerQueryLatency prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
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
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.trainingRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_runs_total",
		Help:      "Total number of completed model training runs",
	}, []string{"model"})

	m.trainingErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_errors_total",
		Help:      "Total number of failed model training runs",
	}, []string{"model"})

	m.trainingDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_duration_milliseconds",
		Help:      "Model training duration in milliseconds",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"model"})

	m.modelScore = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_score",
		Help:      "Latest evaluation score per model, metric and data split",
	}, []string{"model", "metric", "split"})

	m.featuresUsed = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_features_used",
		Help:      "Number of input features used by the latest trained model",
	}, []string{"model"})

	m.featureRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feature_rows",
		Help:      "Rows produced by the latest feature build",
	})

	m.unknownCategories = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unknown_categories_total",
		Help:      "Categorical values not seen when the encoder was fitted",
	}, []string{"column"})

	m.labelPositiveRate = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "synthetic_label_positive_ratio",
		Help:      "Share of synthesized training labels marked as turnover",
	})

	m.predictions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "risk_predictions_total",
		Help:      "Total number of employee risk predictions served",
	})

	m.highRiskEmployees = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "high_risk_employees",
		Help:      "Employees whose latest turnover risk is above the high-risk threshold",
	})

	m.riskCategory = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "employees_by_risk_category",
		Help:      "Employees per turnover risk category",
	}, []string{"category"})

	m.registerRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "register_records_total",
		Help:      "Employees tracked in the risk register",
	})

	m.registerQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "register_query_latency_milliseconds",
		Help:      "Risk register query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Total number of errors by component",
	}, []string{"component", "error_type"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of errors by endpoint",
	}, []string{"endpoint", "method", "error_type"})
}

// Training Metrics Functions.

// RecordTrainingRun counts a completed training run and its duration.
func RecordTrainingRun(model string, took time.Duration) {
	globalManager.trainingRuns.WithLabelValues(model).Inc()
	globalManager.trainingDuration.WithLabelValues(model).Observe(float64(took.Milliseconds()))
}

// RecordTrainingError counts a failed training run.
func RecordTrainingError(model string) {
	globalManager.trainingErrors.WithLabelValues(model).Inc()
}

// UpdateModelScore publishes an evaluation score, e.g. ("turnover", "accuracy", "test").
func UpdateModelScore(model, metric, split string, value float64) {
	globalManager.modelScore.WithLabelValues(model, metric, split).Set(value)
}

// UpdateFeaturesUsed sets the number of features the model was fitted on.
func UpdateFeaturesUsed(model string, n int) {
	globalManager.featuresUsed.WithLabelValues(model).Set(float64(n))
}

// Pipeline Metrics Functions.

// UpdateFeatureRows sets the number of rows produced by the feature builder.
func UpdateFeatureRows(n int) {
	globalManager.featureRows.Set(float64(n))
}

// RecordUnknownCategory counts an unseen categorical value for column.
func RecordUnknownCategory(column string) {
	globalManager.unknownCategories.WithLabelValues(column).Inc()
}

// UpdateLabelPositiveRate sets the share of positive synthetic labels.
func UpdateLabelPositiveRate(positives, total int) {
	if total == 0 {
		globalManager.labelPositiveRate.Set(0)
		return
	}
	globalManager.labelPositiveRate.Set(float64(positives) / float64(total))
}

// Risk Metrics Functions.

// RecordPredictions adds n served predictions.
func RecordPredictions(n int) {
	globalManager.predictions.Add(float64(n))
}

// UpdateHighRiskEmployees sets the high-risk headcount.
func UpdateHighRiskEmployees(n int) {
	globalManager.highRiskEmployees.Set(float64(n))
}

// UpdateRiskCategory sets the headcount of one risk category.
func UpdateRiskCategory(category string, n int) {
	globalManager.riskCategory.WithLabelValues(category).Set(float64(n))
}

// Register Metrics Functions.

// UpdateRegisterRecords sets the number of employees in the risk register.
func UpdateRegisterRecords(n int) {
	globalManager.registerRecords.Set(float64(n))
}

// RecordRegisterQueryLatency records register query latency.
func RecordRegisterQueryLatency(latencyMs float64) {
	globalManager.registerQueryLatency.Observe(latencyMs)
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
