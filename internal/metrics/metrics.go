// Package metrics exposes prometheus collectors for the risk service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sentinel"

// Metrics owns a private registry so tests and multiple servers never share
// collectors.
type Metrics struct {
	registry *prometheus.Registry

	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec
	SimulatedDraws     prometheus.Counter
	DecisionsTotal     *prometheus.CounterVec
	JobRunsTotal       *prometheus.CounterVec
}

// New creates and registers all collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		SimulationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "simulations_total",
				Help:      "Total number of portfolio simulations by outcome",
			},
			[]string{"outcome"},
		),

		SimulationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "simulation_duration_seconds",
				Help:      "Time spent running one portfolio simulation",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"outcome"},
		),

		SimulatedDraws: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "simulated_draws_total",
				Help:      "Total number of daily return draws sampled by successful simulations",
			},
		),

		DecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fusion_decisions_total",
				Help:      "Total number of fusion decisions by profile, decision and guard",
			},
			[]string{"profile", "decision", "guard"},
		),

		JobRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "job_runs_total",
				Help:      "Total number of scheduled job runs by job and status",
			},
			[]string{"job", "status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SimulationsTotal,
		m.SimulationDuration,
		m.SimulatedDraws,
		m.DecisionsTotal,
		m.JobRunsTotal,
	)

	return m
}

// ObserveSimulation records one simulation run
func (m *Metrics) ObserveSimulation(outcome string, assets, simulations, horizonDays int, elapsed time.Duration) {
	m.SimulationsTotal.WithLabelValues(outcome).Inc()
	m.SimulationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if outcome == "ok" {
		m.SimulatedDraws.Add(float64(assets) * float64(simulations) * float64(horizonDays))
	}
}

// ObserveDecision records one fusion decision. An empty guard is labelled "none".
func (m *Metrics) ObserveDecision(profile, decision, guard string) {
	if guard == "" {
		guard = "none"
	}
	m.DecisionsTotal.WithLabelValues(profile, decision, guard).Inc()
}

// ObserveJob records one scheduled job run
func (m *Metrics) ObserveJob(job string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.JobRunsTotal.WithLabelValues(job, status).Inc()
}

// Registry returns the registry backing Handler
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
