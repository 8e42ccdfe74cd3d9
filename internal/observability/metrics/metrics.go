// Package metrics exposes prometheus instruments for the HTTP layer and the
// plan-gating decisions. Everything is served from /metrics via promhttp.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics instruments inbound HTTP requests.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	gateDecisions *prometheus.CounterVec
	trialSweeps   prometheus.Counter
}

// NewHTTPMetrics registers the instruments on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vetcita_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vetcita_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vetcita_gate_decisions_total",
			Help: "Plan/trial gate decisions by requirement and outcome.",
		}, []string{"requirement", "outcome"}),
		trialSweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vetcita_trial_sweep_expired_total",
			Help: "Trial subscriptions moved to UNPAID by the periodic sweep.",
		}),
	}

	prometheus.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.gateDecisions,
		m.trialSweeps,
	)
	return m
}

// RecordGateDecision counts one guard evaluation.
func (m *HTTPMetrics) RecordGateDecision(requirement string, allowed bool) {
	if m == nil {
		return
	}
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	m.gateDecisions.WithLabelValues(strings.TrimSpace(requirement), outcome).Inc()
}

// RecordTrialSweep counts subscriptions expired by the sweep.
func (m *HTTPMetrics) RecordTrialSweep(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.trialSweeps.Add(float64(count))
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
