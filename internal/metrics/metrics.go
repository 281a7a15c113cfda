// Package metrics provides Prometheus metrics for the standup agent.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the agent.
type Metrics struct {
	RunsTotal         *prometheus.CounterVec
	PullRequestsTotal prometheus.Counter
	StoreErrorsTotal  prometheus.Counter
	DeliveryFailures  prometheus.Counter
	TrackedTasks      prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "standup_runs_total",
				Help: "Report pipeline runs by outcome.",
			},
			[]string{"result"},
		),
		PullRequestsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "standup_pull_requests_total",
				Help: "Pull requests processed into report blocks.",
			},
		),
		StoreErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "standup_store_errors_total",
				Help: "Duration store failures during report synthesis.",
			},
		),
		DeliveryFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "standup_delivery_failures_total",
				Help: "Failed report deliveries to notification targets.",
			},
		),
		TrackedTasks: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "standup_tracked_tasks",
				Help: "Task duration records currently in the store.",
			},
		),
		registry: reg,
	}

	reg.MustRegister(m.RunsTotal, m.PullRequestsTotal, m.StoreErrorsTotal, m.DeliveryFailures, m.TrackedTasks)
	return m
}

// Handler returns the HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
