// Package prometheus registers and exposes the service metrics.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var defaultDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Metrics holds every collector the service exports.  It satisfies
// settlement.Metrics for the engine-level observations.
type Metrics struct {
	registry *prometheus.Registry

	recommendationsTotal       *prometheus.CounterVec
	recommendationDuration     prometheus.Histogram
	recommendationsUnavailable prometheus.Counter

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	cacheHitsTotal   prometheus.Counter
	cacheMissesTotal prometheus.Counter
}

// NewMetrics builds and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		recommendationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unioniq_recommendations_total",
			Help: "Settlement recommendations generated, by outcome and risk level.",
		}, []string{"outcome", "risk_level"}),
		recommendationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "unioniq_recommendation_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration.",
			Buckets: defaultDurationBuckets,
		}),
		recommendationsUnavailable: factory.NewCounter(prometheus.CounterOpts{
			Name: "unioniq_recommendations_unavailable_total",
			Help: "Requests where no recommendation was possible.",
		}),

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unioniq_http_requests_total",
			Help: "HTTP requests, by method, path, and status code.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "unioniq_http_request_duration_seconds",
			Help:    "HTTP request duration.",
			Buckets: defaultDurationBuckets,
		}, []string{"method", "path"}),

		cacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "unioniq_clause_cache_hits_total",
			Help: "Clause library cache hits.",
		}),
		cacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "unioniq_clause_cache_misses_total",
			Help: "Clause library cache misses.",
		}),
	}
}

// ObserveRecommendation records one generated recommendation.
func (m *Metrics) ObserveRecommendation(outcome, riskLevel string, duration time.Duration) {
	m.recommendationsTotal.WithLabelValues(outcome, riskLevel).Inc()
	m.recommendationDuration.Observe(duration.Seconds())
}

// RecommendationUnavailable records a nil-result request.
func (m *Metrics) RecommendationUnavailable() {
	m.recommendationsUnavailable.Inc()
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// CacheHit and CacheMiss record clause-library cache outcomes.
func (m *Metrics) CacheHit()  { m.cacheHitsTotal.Inc() }
func (m *Metrics) CacheMiss() { m.cacheMissesTotal.Inc() }

// Handler returns the /metrics scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
