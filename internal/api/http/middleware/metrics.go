package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dtroode/aboh-server/internal/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics records request count and latency per route pattern.
type Metrics struct {
	metrics *metrics.Metrics
}

// NewMetrics creates a new Metrics middleware.
func NewMetrics(m *metrics.Metrics) *Metrics {
	return &Metrics{metrics: m}
}

// Handle must wrap the ServeMux so the matched pattern is known after the
// request completes.
func (m *Metrics) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)

		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}

		m.metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
