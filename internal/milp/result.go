package milp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bartolsthoorn/chipnet/highs"
)

// Status summarises a solve in the vocabulary of the planning reports.
type Status int

const (
	StatusNotSolved Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusUndefined
)

func (s Status) String() string {
	switch s {
	case StatusNotSolved:
		return "Not Solved"
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	default:
		return "Undefined"
	}
}

func statusFromModel(s highs.ModelStatus) Status {
	switch s {
	case highs.ModelStatusOptimal, highs.ModelStatusModelEmpty:
		return StatusOptimal
	case highs.ModelStatusInfeasible:
		return StatusInfeasible
	case highs.ModelStatusUnbounded:
		return StatusUnbounded
	case highs.ModelStatusTimeLimit, highs.ModelStatusIterationLimit,
		highs.ModelStatusObjectiveBound, highs.ModelStatusObjectiveTarget,
		highs.ModelStatusNotSet:
		return StatusNotSolved
	default:
		return StatusUndefined
	}
}

// integralTol is how far a value reported for an integer variable may be
// from the nearest integer and still be rounded to it.
const integralTol = 1e-6

// zeroTol is the magnitude below which a value counts as zero.
const zeroTol = 1e-9

// Assignment is a variable name and its solved value.
type Assignment struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Result is the outcome of Problem.Solve.
type Result struct {
	Status       Status
	SolverStatus highs.ModelStatus
	Objective    float64
	MIPGap       float64
	Elapsed      time.Duration

	vars   []*Var
	values []float64
}

// HasSolution reports whether variable values are available. A time limit
// may leave a feasible incumbent with status Not Solved.
func (r *Result) HasSolution() bool {
	return r.SolverStatus.HasSolution() && len(r.values) == len(r.vars)
}

// Value returns the solved value of v, or 0 without a solution.
func (r *Result) Value(v *Var) float64 {
	if v == nil || v.index >= len(r.values) {
		return 0
	}
	return r.values[v.index]
}

// Total returns Σ Value(v).
func (r *Result) Total(vars ...*Var) float64 {
	var sum float64
	for _, v := range vars {
		sum += r.Value(v)
	}
	return sum
}

// Eval evaluates e at the solution.
func (r *Result) Eval(e Expr) float64 {
	sum := e.Constant
	for _, t := range e.Terms {
		sum += t.Coef * r.Value(t.Var)
	}
	return sum
}

// NonZero returns every variable with a nonzero value, sorted by name.
func (r *Result) NonZero() []Assignment {
	var out []Assignment
	for _, v := range r.vars {
		if val := r.Value(v); val != 0 {
			out = append(out, Assignment{Name: v.name, Value: val})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Solve compiles and solves the problem. A deadline on ctx becomes the
// solver time limit; the solve itself cannot be interrupted once started.
// Infeasible and unbounded problems are reported through Result.Status,
// not as errors.
func (p *Problem) Solve(ctx context.Context, opts ...highs.SolveOption) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model, err := p.Model()
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline).Seconds()
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		opts = append(opts[:len(opts):len(opts)], highs.WithTimeLimit(remaining))
	}

	start := time.Now()
	sol, err := model.Solve(opts...)
	if err != nil {
		return nil, fmt.Errorf("solve %q: %w", p.name, err)
	}

	res := &Result{
		Status:       statusFromModel(sol.Status),
		SolverStatus: sol.Status,
		Objective:    sol.Objective,
		MIPGap:       sol.MIPGap,
		Elapsed:      time.Since(start),
		vars:         p.vars,
	}
	if len(p.vars) == 0 {
		return res, nil
	}
	if !sol.Status.HasSolution() {
		return res, nil
	}
	if len(sol.ColValues) != len(p.vars) {
		return nil, errors.New("milp: solver returned a solution of the wrong size")
	}

	res.values = make([]float64, len(p.vars))
	for i, v := range p.vars {
		res.values[i] = clean(sol.ColValues[i], v.integral())
	}
	return res, nil
}

func clean(val float64, integral bool) float64 {
	if math.Abs(val) < zeroTol {
		return 0
	}
	if integral {
		if r := math.Round(val); math.Abs(val-r) <= integralTol {
			if r == 0 {
				return 0
			}
			return r
		}
	}
	return val
}
