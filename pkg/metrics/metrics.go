package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector with Prometheus metrics registered
// on a private registry.
type PrometheusCollector struct {
	callsTotal         *prometheus.CounterVec
	callDuration       *prometheus.HistogramVec
	attempts           *prometheus.HistogramVec
	parseFailuresTotal *prometheus.CounterVec
	tokensTotal        *prometheus.CounterVec
	registry           *prometheus.Registry
}

// NewCollector creates a Prometheus collector.
func NewCollector() *PrometheusCollector {
	registry := prometheus.NewRegistry()

	callsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptfunc_calls_total",
			Help: "Total number of prompt function calls by function and status",
		},
		[]string{"function", "status"},
	)

	callDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptfunc_call_duration_seconds",
			Help:    "Duration of prompt function calls",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		},
		[]string{"function"},
	)

	attempts := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptfunc_call_attempts",
			Help:    "Provider round trips per prompt function call",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
		[]string{"function"},
	)

	parseFailuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptfunc_parse_failures_total",
			Help: "Total number of answer extraction or coercion failures",
		},
		[]string{"function"},
	)

	tokensTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptfunc_tokens_total",
			Help: "Total tokens used by prompt function calls, by direction",
		},
		[]string{"function", "direction"},
	)

	registry.MustRegister(callsTotal, callDuration, attempts, parseFailuresTotal, tokensTotal)

	return &PrometheusCollector{
		callsTotal:         callsTotal,
		callDuration:       callDuration,
		attempts:           attempts,
		parseFailuresTotal: parseFailuresTotal,
		tokensTotal:        tokensTotal,
		registry:           registry,
	}
}

// Registry exposes the private registry so callers can mount it on an
// HTTP handler or gather metrics programmatically.
func (m *PrometheusCollector) Registry() *prometheus.Registry {
	return m.registry
}

func (m *PrometheusCollector) RecordCall(ctx context.Context, function string, status string, durationMs int64) {
	m.callsTotal.WithLabelValues(function, status).Inc()
	m.callDuration.WithLabelValues(function).Observe(float64(durationMs) / 1000.0)
}

func (m *PrometheusCollector) RecordAttempts(ctx context.Context, function string, attempts int) {
	m.attempts.WithLabelValues(function).Observe(float64(attempts))
}

func (m *PrometheusCollector) RecordParseFailure(ctx context.Context, function string) {
	m.parseFailuresTotal.WithLabelValues(function).Inc()
}

func (m *PrometheusCollector) RecordTokens(ctx context.Context, function string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		m.tokensTotal.WithLabelValues(function, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		m.tokensTotal.WithLabelValues(function, "completion").Add(float64(completionTokens))
	}
}
