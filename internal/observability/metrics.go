package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors exposed on /metrics.
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	authDecisions    *prometheus.CounterVec
}

// NewMetrics registers collectors on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		authDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_decisions_total",
			Help: "Terminal request outcomes grouped by error code.",
		}, []string{"path", "method", "code"}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.requestsInFlight,
		m.authDecisions,
	)
	return m
}

// RecordRequest observes a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, seconds float64) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestsTotal.WithLabelValues(method, path, code).Inc()
	m.requestDuration.WithLabelValues(method, path, code).Observe(seconds)
}

// RecordError counts a request rejected with a taxonomy code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.authDecisions.WithLabelValues(path, method, code).Inc()
}

// TrackInFlight adjusts the in-flight gauge by delta.
func (m *Metrics) TrackInFlight(delta float64) {
	if m == nil {
		return
	}
	m.requestsInFlight.Add(delta)
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
