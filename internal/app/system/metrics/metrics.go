// internal/app/system/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "attendhub"

// Metrics owns a private Prometheus registry for the application counters.
// Request latency and the Go/process collectors come from WAFFLE's metrics
// package on the default registry; Handler serves both.
type Metrics struct {
	registry *prometheus.Registry

	GateDecisions *prometheus.CounterVec
	LoginAttempts *prometheus.CounterVec
}

// New registers the application collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		GateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Route gate decisions by route class and outcome.",
		}, []string{"route", "outcome"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login form submissions by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.GateDecisions, m.LoginAttempts)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveDecision counts one gate decision.
func (m *Metrics) ObserveDecision(route, outcome string) {
	if m == nil {
		return
	}
	m.GateDecisions.WithLabelValues(route, outcome).Inc()
}

// ObserveLogin counts one login attempt. result is "success", "failure",
// "invalid" or "limited".
func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// Handler serves the application registry together with the default
// registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(
		prometheus.Gatherers{m.registry, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{},
	)
}
