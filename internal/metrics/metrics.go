// Package metrics exposes Prometheus counters and histograms for model calls,
// HTTP requests and comparison entries.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/llm"
)

// MetricsCollector provides Prometheus metrics collection on its own registry.
type MetricsCollector struct {
	llmCalls          *prometheus.CounterVec
	llmDuration       *prometheus.HistogramVec
	llmTokens         *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	comparisonEntries *prometheus.CounterVec
	registry          *prometheus.Registry
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	llmCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptlab_llm_calls_total",
			Help: "Model calls by provider, family, technique and outcome code",
		},
		[]string{"provider", "family", "technique", "code"},
	)

	llmDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptlab_llm_call_duration_seconds",
			Help:    "Model call latency by provider and technique",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "technique"},
	)

	llmTokens := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptlab_llm_tokens_total",
			Help: "Tokens reported by the provider, by model and technique",
		},
		[]string{"model", "technique"},
	)

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptlab_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptlab_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	comparisonEntries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptlab_comparison_entries_total",
			Help: "Comparison entries by technique and status",
		},
		[]string{"technique", "status"},
	)

	registry.MustRegister(llmCalls, llmDuration, llmTokens, httpRequests, httpDuration, comparisonEntries)
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &MetricsCollector{
		llmCalls:          llmCalls,
		llmDuration:       llmDuration,
		llmTokens:         llmTokens,
		httpRequests:      httpRequests,
		httpDuration:      httpDuration,
		comparisonEntries: comparisonEntries,
		registry:          registry,
	}
}

// ObserveCall records one model call.
func (m *MetricsCollector) ObserveCall(ctx context.Context, c llm.Call) {
	code := "ok"
	if c.Err != nil {
		code = apperr.Code(c.Err)
	}
	m.llmCalls.WithLabelValues(c.Provider, c.Labels.Family, c.Labels.Technique, code).Inc()
	m.llmDuration.WithLabelValues(c.Provider, c.Labels.Technique).Observe(c.Duration.Seconds())
	if c.TokensUsed > 0 {
		m.llmTokens.WithLabelValues(c.Model, c.Labels.Technique).Add(float64(c.TokensUsed))
	}
}

// RecordRequest records a finished HTTP request. route is the matched
// pattern, not the raw path.
func (m *MetricsCollector) RecordRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// RecordComparisonEntry counts one comparison arm.
func (m *MetricsCollector) RecordComparisonEntry(ctx context.Context, technique string, ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	m.comparisonEntries.WithLabelValues(technique, status).Inc()
}

// Registry returns the Prometheus registry for HTTP exposure
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
