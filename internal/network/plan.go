// Package network formulates the direct and the distribution network
// planning problems as MILPs and turns solver results into outcomes.
package network

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bartolsthoorn/chipnet/highs"
	"github.com/bartolsthoorn/chipnet/internal/milp"
	"github.com/bartolsthoorn/chipnet/internal/scenario"
)

// Line is one labelled figure of an outcome summary.
type Line struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Plan is a formulated scenario ready to solve.
type Plan struct {
	Scenario *scenario.Scenario
	Problem  *milp.Problem

	summarize func(*milp.Result) ([]string, []Line)
}

// Build formulates s according to its kind.
func Build(s *scenario.Scenario) (*Plan, error) {
	switch s.Kind {
	case scenario.KindDirect:
		return BuildDirect(s)
	case scenario.KindDistribution:
		return BuildDistribution(s)
	default:
		return nil, fmt.Errorf("build %q: unsupported kind %q", s.Name, s.Kind)
	}
}

// Outcome is the result of solving one plan.
type Outcome struct {
	RunID       string            `json:"run_id"`
	Scenario    string            `json:"scenario"`
	Kind        scenario.Kind     `json:"kind"`
	Status      string            `json:"status"`
	Objective   float64           `json:"objective"`
	MIPGap      float64           `json:"mip_gap"`
	Variables   int               `json:"variables"`
	Constraints int               `json:"constraints"`
	Open        []string          `json:"open,omitempty"`
	Assignments []milp.Assignment `json:"assignments,omitempty"`
	Summary     []Line            `json:"summary,omitempty"`
	StartedAt   time.Time         `json:"started_at"`
	Duration    time.Duration     `json:"duration_ns"`
}

// Feasible reports whether the outcome carries a plan.
func (o *Outcome) Feasible() bool {
	return o.Status == milp.StatusOptimal.String() || len(o.Assignments) > 0
}

// Solve runs the solver on the plan.
func (p *Plan) Solve(ctx context.Context, opts ...highs.SolveOption) (*Outcome, error) {
	out := &Outcome{
		RunID:       uuid.NewString(),
		Scenario:    p.Scenario.Name,
		Kind:        p.Scenario.Kind,
		Variables:   p.Problem.NumVars(),
		Constraints: p.Problem.NumConstraints(),
		StartedAt:   time.Now().UTC(),
	}

	res, err := p.Problem.Solve(ctx, opts...)
	if err != nil {
		return nil, err
	}
	out.Duration = time.Since(out.StartedAt)
	out.Status = res.Status.String()
	out.Objective = res.Objective
	out.MIPGap = res.MIPGap

	if res.HasSolution() {
		out.Assignments = res.NonZero()
		out.Open, out.Summary = p.summarize(res)
	}
	return out, nil
}
