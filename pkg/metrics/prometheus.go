// Package metrics provides Prometheus metrics for the goalkeep service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the goalkeep service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Oracle Metrics - per-zone save-probability queries
	oracleQueries      *prometheus.CounterVec
	oracleLatency      prometheus.Histogram
	oracleBreakerState prometheus.Gauge

	// Degraded Computation Metrics - silent fallbacks made visible
	zoneFallbacks       *prometheus.CounterVec
	attackGridFallbacks prometheus.Counter

	// Decision Metrics - what the service tells the bench
	assessments        *prometheus.CounterVec
	assessmentDuration *prometheus.HistogramVec
	decisionTiers      *prometheus.CounterVec
	recommendations    *prometheus.CounterVec
	rosterSize         prometheus.Gauge

	// Repository Metrics
	repositoryQueryLatency *prometheus.HistogramVec

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
		namespace:        "goalkeep",
		subsystem:        "decision",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
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

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.oracleQueries = auto.NewCounterVec(
		m.counterOpts("oracle_queries_total", "Per-zone oracle queries by outcome"),
		[]string{"outcome"},
	)
	m.oracleLatency = auto.NewHistogram(m.histogramOpts(
		"oracle_latency_milliseconds",
		"Latency of a single per-zone oracle query in milliseconds",
		[]float64{1, 5, 10, 25, 50, 100, 150, 250, 500, 1000, 2500},
	))
	m.oracleBreakerState = auto.NewGauge(m.gaugeOpts(
		"oracle_breaker_state",
		"Remote oracle circuit breaker state (0 closed, 1 half-open, 2 open)",
	))

	m.zoneFallbacks = auto.NewCounterVec(
		m.counterOpts("zone_fallbacks_total", "Zones defaulted to the neutral probability after an oracle failure"),
		[]string{"zone"},
	)
	m.attackGridFallbacks = auto.NewCounter(m.counterOpts(
		"attack_grid_fallbacks_total",
		"Compatibility scores computed as an unweighted mean because the attack grid was empty",
	))

	m.assessments = auto.NewCounterVec(
		m.counterOpts("assessments_total", "Completed assessments by kind"),
		[]string{"kind"},
	)
	m.assessmentDuration = auto.NewHistogramVec(
		m.histogramOpts("assessment_duration_milliseconds", "End-to-end assessment duration in milliseconds", m.histogramBuckets),
		[]string{"kind"},
	)
	m.decisionTiers = auto.NewCounterVec(
		m.counterOpts("decision_tiers_total", "Substitution decisions by tier"),
		[]string{"tier"},
	)
	m.recommendations = auto.NewCounterVec(
		m.counterOpts("recommendations_total", "Tactical recommendations emitted by priority"),
		[]string{"priority"},
	)
	m.rosterSize = auto.NewGauge(m.gaugeOpts("roster_size", "Goalkeepers evaluated in the last ranking pass"))

	m.repositoryQueryLatency = auto.NewHistogramVec(
		m.histogramOpts("repository_query_latency_milliseconds", "Repository query latency in milliseconds", m.histogramBuckets),
		[]string{"query"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by HTTP endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordOracleQuery counts a per-zone oracle query by outcome (ok, error, malformed).
func RecordOracleQuery(outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.oracleQueries.WithLabelValues(outcome).Inc()
}

// RecordOracleLatency records a single oracle query latency in milliseconds.
func RecordOracleLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.oracleLatency.Observe(latencyMs)
}

// UpdateOracleBreakerState sets the circuit breaker state gauge.
func UpdateOracleBreakerState(state int) {
	if !globalManager.enabled {
		return
	}
	globalManager.oracleBreakerState.Set(float64(state))
}

// RecordZoneFallback counts a zone defaulted after an oracle failure.
func RecordZoneFallback(zone string) {
	if !globalManager.enabled {
		return
	}
	globalManager.zoneFallbacks.WithLabelValues(zone).Inc()
}

// RecordAttackGridFallback counts an unweighted-mean compatibility score.
func RecordAttackGridFallback() {
	if !globalManager.enabled {
		return
	}
	globalManager.attackGridFallbacks.Inc()
}

// RecordAssessment counts a completed assessment and its duration.
func RecordAssessment(kind string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.assessments.WithLabelValues(kind).Inc()
	globalManager.assessmentDuration.WithLabelValues(kind).Observe(durationMs)
}

// RecordDecisionTier counts a substitution decision.
func RecordDecisionTier(tier string) {
	if !globalManager.enabled {
		return
	}
	globalManager.decisionTiers.WithLabelValues(tier).Inc()
}

// RecordRecommendation counts an emitted recommendation.
func RecordRecommendation(priority string) {
	if !globalManager.enabled {
		return
	}
	globalManager.recommendations.WithLabelValues(priority).Inc()
}

// UpdateRosterSize sets the number of goalkeepers in the last ranking pass.
func UpdateRosterSize(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.rosterSize.Set(float64(count))
}

// RecordRepositoryQueryLatency records a repository query latency in milliseconds.
func RecordRepositoryQueryLatency(query string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.repositoryQueryLatency.WithLabelValues(query).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records errors by component.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records errors by HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
