// Package metrics exports reconciliation counters and instance gauges in
// the Prometheus format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tessro/ffl/internal/lifecycle"
)

// Metrics holds the launcher's Prometheus collectors. Each Metrics has its
// own registry so several can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	ActionsTotal  *prometheus.CounterVec
	FailuresTotal *prometheus.CounterVec
	Instances     *prometheus.GaugeVec
	TicksTotal    prometheus.Counter
}

// New creates and registers the collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		Registry: reg,
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ffl_actions_total",
				Help: "Actions issued by the reconciler",
			},
			[]string{"action"},
		),
		FailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ffl_action_failures_total",
				Help: "Actions that failed to start",
			},
			[]string{"action"},
		),
		Instances: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ffl_instances",
				Help: "Managed profiles by lifecycle state",
			},
			[]string{"state"},
		),
		TicksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ffl_ticks_total",
				Help: "Reconciliation passes",
			},
		),
	}

	for _, a := range lifecycle.Actions {
		m.ActionsTotal.WithLabelValues(a.String())
	}
	for _, s := range lifecycle.States {
		m.Instances.WithLabelValues(s.String())
	}
	return m
}

// ObserveTransition counts issued and failed actions. Subscribe it to a
// lifecycle.Reconciler.
func (m *Metrics) ObserveTransition(t lifecycle.Transition) {
	switch {
	case t.Err != nil:
		m.FailuresTotal.WithLabelValues(t.Action.String()).Inc()
	case t.Action != lifecycle.ActionNone:
		m.ActionsTotal.WithLabelValues(t.Action.String()).Inc()
	}
}

// ObserveTick records one reconciliation pass and the resulting state of
// every instance.
func (m *Metrics) ObserveTick(instances []*lifecycle.Instance) {
	m.TicksTotal.Inc()

	counts := make(map[lifecycle.State]int, len(lifecycle.States))
	for _, in := range instances {
		counts[in.State]++
	}
	for _, s := range lifecycle.States {
		m.Instances.WithLabelValues(s.String()).Set(float64(counts[s]))
	}
}
