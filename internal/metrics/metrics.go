// Package metrics exposes Prometheus collectors for key checks and the HTTP
// surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	outcomesTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	promptTokens     *prometheus.HistogramVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a metrics instance backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		outcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyprobe_outcomes_total",
				Help: "Classified outcomes by operation, category and returned status",
			},
			[]string{"operation", "category", "status"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keyprobe_upstream_duration_seconds",
				Help:    "Latency of upstream provider calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		promptTokens: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keyprobe_prompt_tokens",
				Help:    "Estimated prompt tokens sent per chat probe",
				Buckets: prometheus.LinearBuckets(0, 8, 8),
			},
			[]string{"operation"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyprobe_http_requests_total",
				Help: "Total number of inbound HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keyprobe_http_request_duration_seconds",
				Help:    "Inbound HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.outcomesTotal,
		m.upstreamDuration,
		m.promptTokens,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)

	return m
}

// RecordOutcome counts one classified outcome.
func (m *Metrics) RecordOutcome(operation, category string, status int) {
	if m == nil {
		return
	}
	if category == "" {
		category = "success"
	}
	m.outcomesTotal.WithLabelValues(operation, category, strconv.Itoa(status)).Inc()
}

// ObserveUpstream records the latency of one upstream call.
func (m *Metrics) ObserveUpstream(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObservePromptTokens records a prompt token estimate. Zero means no
// estimate and is skipped.
func (m *Metrics) ObservePromptTokens(operation string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.promptTokens.WithLabelValues(operation).Observe(float64(n))
}

// RecordHTTPRequest records an inbound HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler returns the Prometheus metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
