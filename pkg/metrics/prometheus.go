// Package metrics provides Prometheus metrics for the scoreline service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// RPC dispatch
	methodCalls        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	authFailures       prometheus.Counter

	// Scoring and store
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	scoresComputed  prometheus.Counter
	interestLookups prometheus.Counter
	storeFailures   *prometheus.CounterVec
}

// Global metrics manager with its own registry, so the default Go collector
// noise stays out of the exposition.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoreline",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.methodCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "method_calls_total",
		Help:      "Total RPC method dispatches by method name and result code",
	}, []string{"rpc_method", "code"})

	m.validationFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Total schema validation failures by schema name",
	}, []string{"schema"})

	m.authFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "auth_failures_total",
		Help:      "Total rejected tokens",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_cache_hits_total",
		Help:      "Total score reads served from cache",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_cache_misses_total",
		Help:      "Total score reads that fell through to computation",
	})

	m.scoresComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_computed_total",
		Help:      "Total scores computed from profile weights",
	})

	m.interestLookups = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "interest_lookups_total",
		Help:      "Total client interest lookups",
	})

	m.storeFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_failures_total",
		Help:      "Total key-value store failures by operation",
	}, []string{"op"})
}

// Registry returns the manager's registry for exposition.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Package-level helpers recording on the global manager.

// GetRegistry returns the global metrics registry.
func GetRegistry() *prometheus.Registry { return globalManager.Registry() }

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request latency in seconds.
func RecordHTTPRequestDuration(endpoint, method string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}

// RecordMethodCall counts one RPC dispatch outcome.
func RecordMethodCall(method, code string) {
	globalManager.methodCalls.WithLabelValues(method, code).Inc()
}

// RecordValidationFailure counts one failed schema validation.
func RecordValidationFailure(schema string) {
	globalManager.validationFailures.WithLabelValues(schema).Inc()
}

// RecordAuthFailure counts one rejected token.
func RecordAuthFailure() { globalManager.authFailures.Inc() }

// RecordCacheHit counts one score served from cache.
func RecordCacheHit() { globalManager.cacheHits.Inc() }

// RecordCacheMiss counts one score cache miss.
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

// RecordScoreComputed counts one computed score.
func RecordScoreComputed() { globalManager.scoresComputed.Inc() }

// RecordInterestsLookup counts one interests read.
func RecordInterestsLookup() { globalManager.interestLookups.Inc() }

// RecordStoreFailure counts one store failure for the given operation.
func RecordStoreFailure(op string) {
	globalManager.storeFailures.WithLabelValues(op).Inc()
}
