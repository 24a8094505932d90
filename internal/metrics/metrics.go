// Package metrics records solve statistics in a dedicated Prometheus
// registry. The CLI writes the registry in the node_exporter textfile format
// since the process exits after planning.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bartolsthoorn/chipnet/internal/network"
)

type Recorder struct {
	// Registry holds only the chipnet collectors.
	Registry *prometheus.Registry

	solves    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	objective *prometheus.GaugeVec
	modelSize *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "chipnet_solves_total", Help: "Solves by scenario and solver status."},
			[]string{"scenario", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "chipnet_solve_duration_seconds", Help: "Wall time of a solve in seconds.", Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300}},
			[]string{"scenario"},
		),
		objective: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "chipnet_objective_value", Help: "Objective of the last feasible solve."},
			[]string{"scenario"},
		),
		modelSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "chipnet_model_size", Help: "Variables and constraints of the last solved model."},
			[]string{"scenario", "dimension"},
		),
	}
	r.Registry.MustRegister(r.solves, r.duration, r.objective, r.modelSize)
	return r
}

// Observe records one outcome.
func (r *Recorder) Observe(o *network.Outcome) {
	r.solves.WithLabelValues(o.Scenario, o.Status).Inc()
	r.duration.WithLabelValues(o.Scenario).Observe(o.Duration.Seconds())
	r.modelSize.WithLabelValues(o.Scenario, "variables").Set(float64(o.Variables))
	r.modelSize.WithLabelValues(o.Scenario, "constraints").Set(float64(o.Constraints))
	if o.Feasible() {
		r.objective.WithLabelValues(o.Scenario).Set(o.Objective)
	}
}

// WriteTextfile writes the registry to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
