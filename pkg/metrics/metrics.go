// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LLMRequestDuration tracks chat backend round-trip duration.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Chat backend request duration",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"model", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// ActionsTotal tracks dispatched actions by name and outcome.
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_actions_total",
			Help: "Total actions dispatched through the registry",
		},
		[]string{"action", "status"},
	)

	// ProposalsTotal tracks proposals by lifecycle stage.
	ProposalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_proposals_total",
			Help: "Total proposals raised, accepted and discarded",
		},
		[]string{"stage"},
	)

	// ConversationsActive tracks conversations with stored context.
	ConversationsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_conversations_active",
			Help: "Number of conversations with stored context",
		},
	)

	// UploadsTotal tracks attachment uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_uploads_total",
			Help: "Total attachment uploads",
		},
		[]string{"status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLLMRequest records metrics for one chat backend round trip.
func RecordLLMRequest(model, status string, duration float64, tokensIn, tokensOut int) {
	LLMRequestDuration.WithLabelValues(model, status).Observe(duration)
	LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}
