// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aboh"

// Metrics contains the application collectors and the registry they live in.
type Metrics struct {
	registry        *prometheus.Registry
	AuthAttempts    *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	SessionsCreated prometheus.Counter
}

// New creates a private registry with Go and process collectors plus the
// application metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total number of registration and login attempts by result",
			},
			[]string{"operation", "result"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SessionsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "work_sessions_created_total",
				Help:      "Total number of work sessions recorded",
			},
		),
	}

	registry.MustRegister(m.AuthAttempts, m.HTTPRequests, m.HTTPDuration, m.SessionsCreated)

	return m
}

// RecordAuthAttempt counts one register or login outcome.
func (m *Metrics) RecordAuthAttempt(operation, result string) {
	m.AuthAttempts.WithLabelValues(operation, result).Inc()
}

// RecordSessionCreated counts one stored work session.
func (m *Metrics) RecordSessionCreated() {
	m.SessionsCreated.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
