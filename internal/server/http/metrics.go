package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	OperationsTotal *prometheus.CounterVec
	AuthFailures    prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calcapi_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calcapi_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calcapi_operations_total",
				Help: "Total number of arithmetic operations performed",
			},
			[]string{"operation"},
		),
		AuthFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "calcapi_auth_failures_total",
				Help: "Total number of rejected credentials or bearer tokens",
			},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.OperationsTotal, m.AuthFailures)

	return m
}
