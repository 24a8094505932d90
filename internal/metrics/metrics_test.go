package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartolsthoorn/chipnet/internal/milp"
	"github.com/bartolsthoorn/chipnet/internal/network"
)

func outcome(status string, objective float64) *network.Outcome {
	o := &network.Outcome{
		Scenario:    "bc",
		Status:      status,
		Objective:   objective,
		Variables:   157,
		Constraints: 43,
		Duration:    250 * time.Millisecond,
	}
	if status == "Optimal" {
		o.Assignments = []milp.Assignment{{Name: "Open_A", Value: 1}}
	}
	return o
}

func TestObserve(t *testing.T) {
	r := NewRecorder()
	r.Observe(outcome("Optimal", 1234.5))
	r.Observe(outcome("Infeasible", 0))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.solves.WithLabelValues("bc", "Optimal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.solves.WithLabelValues("bc", "Infeasible")))
	// The infeasible solve leaves the last objective alone.
	assert.Equal(t, 1234.5, testutil.ToFloat64(r.objective.WithLabelValues("bc")))
	assert.Equal(t, 157.0, testutil.ToFloat64(r.modelSize.WithLabelValues("bc", "variables")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Observe(outcome("Optimal", 10))

	path := filepath.Join(t.TempDir(), "chipnet.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `chipnet_solves_total{scenario="bc",status="Optimal"} 1`)
	assert.Contains(t, string(data), `chipnet_objective_value{scenario="bc"} 10`)
}
