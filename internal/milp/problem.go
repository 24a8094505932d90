package milp

import (
	"errors"
	"fmt"
	"math"

	"github.com/bartolsthoorn/chipnet/highs"
)

// Direction is the objective sense.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// Sense is the relation of a constraint.
type Sense int

const (
	LE Sense = iota
	GE
	EQ
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "?"
	}
}

var (
	// ErrDuplicateName is returned when two variables or two constraints
	// share a name.
	ErrDuplicateName = errors.New("milp: duplicate name")
	// ErrForeignVar is returned when an expression uses a variable created
	// by another problem.
	ErrForeignVar = errors.New("milp: variable belongs to another problem")
	// ErrBounds is returned for a variable whose lower bound exceeds its
	// upper bound.
	ErrBounds = errors.New("milp: invalid bounds")
)

// Constraint is Expr Sense RHS.
type Constraint struct {
	Name  string
	Expr  Expr
	Sense Sense
	RHS   float64
}

func (c *Constraint) String() string {
	return fmt.Sprintf("%s: %s %s %g", c.Name, c.Expr, c.Sense, c.RHS)
}

// Problem is a mixed-integer linear program under construction.
type Problem struct {
	name      string
	direction Direction

	vars     []*Var
	varNames map[string]struct{}

	constraints []*Constraint
	rowNames    map[string]struct{}

	objective Expr
	err       error
}

func NewProblem(name string, direction Direction) *Problem {
	return &Problem{
		name:      name,
		direction: direction,
		varNames:  make(map[string]struct{}),
		rowNames:  make(map[string]struct{}),
	}
}

func (p *Problem) Name() string { return p.name }

func (p *Problem) Direction() Direction { return p.direction }

// Err returns the first building error, if any.
func (p *Problem) Err() error { return p.err }

func (p *Problem) setErr(err error) {
	if p.err == nil {
		p.err = err
	}
}

// NewVar adds a variable. The name is sanitised with Name. Binary
// variables always get bounds [0, 1].
func (p *Problem) NewVar(name string, lower, upper float64, cat Category) *Var {
	name = Name(name)
	if cat == Binary {
		lower, upper = 0, 1
	}
	v := &Var{
		owner: p,
		index: len(p.vars),
		name:  name,
		cat:   cat,
		lower: lower,
		upper: upper,
	}

	if _, dup := p.varNames[name]; dup {
		p.setErr(fmt.Errorf("%w: variable %q", ErrDuplicateName, name))
	}
	if lower > upper || math.IsNaN(lower) || math.IsNaN(upper) {
		p.setErr(fmt.Errorf("%w: variable %q has [%g, %g]", ErrBounds, name, lower, upper))
	}
	p.varNames[name] = struct{}{}
	p.vars = append(p.vars, v)
	return v
}

// IntVar adds an integer variable.
func (p *Problem) IntVar(name string, lower, upper float64) *Var {
	return p.NewVar(name, lower, upper, Integer)
}

// BinaryVar adds a 0/1 variable.
func (p *Problem) BinaryVar(name string) *Var {
	return p.NewVar(name, 0, 1, Binary)
}

// ContinuousVar adds a continuous variable.
func (p *Problem) ContinuousVar(name string, lower, upper float64) *Var {
	return p.NewVar(name, lower, upper, Continuous)
}

// Constrain adds e sense rhs. An empty name is replaced by _C<n>, where n
// is the 1-based position of the constraint.
func (p *Problem) Constrain(name string, e Expr, sense Sense, rhs float64) *Constraint {
	if name == "" {
		name = fmt.Sprintf("_C%d", len(p.constraints)+1)
	}
	name = Name(name)

	if _, dup := p.rowNames[name]; dup {
		p.setErr(fmt.Errorf("%w: constraint %q", ErrDuplicateName, name))
	}
	p.checkOwner(e)
	p.rowNames[name] = struct{}{}

	c := &Constraint{Name: name, Expr: e, Sense: sense, RHS: rhs}
	p.constraints = append(p.constraints, c)
	return c
}

// SetObjective replaces the objective.
func (p *Problem) SetObjective(e Expr) {
	p.checkOwner(e)
	p.objective = e
}

func (p *Problem) Objective() Expr { return p.objective }

func (p *Problem) Vars() []*Var { return p.vars }

func (p *Problem) Constraints() []*Constraint { return p.constraints }

func (p *Problem) NumVars() int { return len(p.vars) }

func (p *Problem) NumConstraints() int { return len(p.constraints) }

func (p *Problem) checkOwner(e Expr) {
	for _, t := range e.Terms {
		if t.Var == nil || t.Var.owner != p {
			name := "<nil>"
			if t.Var != nil {
				name = t.Var.name
			}
			p.setErr(fmt.Errorf("%w: %s in problem %q", ErrForeignVar, name, p.name))
			return
		}
	}
}

// Model compiles the problem. Constants on the left of a constraint are
// moved to the right-hand side and the objective constant becomes the
// model offset.
func (p *Problem) Model() (*highs.Model, error) {
	if p.err != nil {
		return nil, p.err
	}

	n := len(p.vars)
	m := &highs.Model{
		Maximize: p.direction == Maximize,
		Offset:   p.objective.Constant,
		ColCosts: make([]float64, n),
		ColLower: make([]float64, n),
		ColUpper: make([]float64, n),
		VarTypes: make([]highs.VariableType, n),
		ColNames: make([]string, n),
	}
	for i, v := range p.vars {
		m.ColLower[i] = v.lower
		m.ColUpper[i] = v.upper
		m.ColNames[i] = v.name
		if v.integral() {
			m.VarTypes[i] = highs.Integer
		}
	}

	vars, coefs := p.objective.Coefficients()
	for i, v := range vars {
		m.ColCosts[v.index] = coefs[i]
	}

	for _, c := range p.constraints {
		rhs := c.RHS - c.Expr.Constant
		lower, upper := math.Inf(-1), math.Inf(1)
		switch c.Sense {
		case LE:
			upper = rhs
		case GE:
			lower = rhs
		case EQ:
			lower, upper = rhs, rhs
		default:
			return nil, fmt.Errorf("milp: constraint %q has unknown sense %d", c.Name, c.Sense)
		}

		vars, coefs := c.Expr.Coefficients()
		cols := make([]int, len(vars))
		for i, v := range vars {
			cols[i] = v.index
		}
		m.AddSparseRow(lower, cols, coefs, upper)
		m.RowNames = append(m.RowNames, c.Name)
	}

	return m, nil
}
