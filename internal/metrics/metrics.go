// Package metrics holds the Prometheus collectors for the enrichment
// pipeline, the AI provider calls and the HTTP surface. Collectors are
// registered on the default registry and served by /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Enrichment Metrics
	EnrichmentRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bonglore_enrichment_runs_total",
			Help: "Total number of enrichment runs by outcome",
		},
		[]string{"outcome"}, // success, invalid, in_progress, not_found, forbidden, analysis_failed, persist_failed, error
	)

	EnrichmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bonglore_enrichment_duration_seconds",
			Help:    "Duration of enrichment runs in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	EnrichmentsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bonglore_enrichments_in_flight",
			Help: "Number of enrichments currently running",
		},
	)

	EmbeddingOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bonglore_embedding_outcomes_total",
			Help: "Embedding derivations by kind and outcome",
		},
		[]string{"kind", "outcome"}, // outcome: success, failure, skipped
	)

	// Tag Suggestion Metrics
	TagSuggestions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bonglore_tag_suggestions_total",
			Help: "Total number of tag suggestion requests",
		},
	)

	TagStoreFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bonglore_tag_store_fallbacks_total",
			Help: "Suggestions answered from the curated catalog after a tag store failure",
		},
	)

	// AI Provider Metrics
	AICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bonglore_ai_call_duration_seconds",
			Help:    "Duration of AI provider calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)

	AICallErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bonglore_ai_call_errors_total",
			Help: "Total number of failed AI provider calls",
		},
		[]string{"provider", "operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bonglore_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bonglore_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bonglore_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// API Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bonglore_api_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordEnrichment records one enrichment run.
func RecordEnrichment(outcome string, duration time.Duration) {
	EnrichmentRuns.WithLabelValues(outcome).Inc()
	EnrichmentDuration.Observe(duration.Seconds())
}

// RecordEmbedding records one embedding derivation outcome.
func RecordEmbedding(kind, outcome string) {
	EmbeddingOutcomes.WithLabelValues(kind, outcome).Inc()
}

// RecordAICall records an AI provider call.
func RecordAICall(provider, operation string, duration time.Duration, err error) {
	AICallDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
	if err != nil {
		AICallErrors.WithLabelValues(provider, operation).Inc()
	}
}

// RecordAPIRequest records an HTTP request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}
