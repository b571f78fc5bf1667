// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the collectors used by the HTTP layer, the LLM client and
// event ingestion.
type Metrics struct {
	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	LLMRequests *prometheus.CounterVec
	LLMDuration *prometheus.HistogramVec

	Decisions       *prometheus.CounterVec
	MessagesCreated *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is what tests want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engage_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engage_http_request_duration_seconds",
				Help:    "Histogram of response durations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		LLMRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engage_llm_requests_total",
				Help: "Completions by provider, origin of the answer (llm or mock) and result kind",
			},
			[]string{"provider", "source", "kind"},
		),
		LLMDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engage_llm_request_duration_seconds",
				Help:    "Duration of completion calls including mock fallbacks",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engage_agent_decisions_total",
				Help: "Agent decisions by outcome (engage, skip, suppressed)",
			},
			[]string{"outcome"},
		),
		MessagesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engage_messages_created_total",
				Help: "Outbound messages stored, by channel",
			},
			[]string{"channel"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.RequestCount, m.RequestDuration,
			m.LLMRequests, m.LLMDuration,
			m.Decisions, m.MessagesCreated,
		)
	}
	return m
}
