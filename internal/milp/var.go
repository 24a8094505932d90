package milp

import "math"

// Inf is the unbounded value for variable bounds.
var Inf = math.Inf(1)

// Category is the domain of a variable.
type Category int

const (
	Continuous Category = iota
	Integer
	Binary
)

func (c Category) String() string {
	switch c {
	case Continuous:
		return "Continuous"
	case Integer:
		return "Integer"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// Var is a decision variable. It is created by, and only valid in, one
// Problem.
type Var struct {
	owner *Problem
	index int
	name  string
	cat   Category
	lower float64
	upper float64
}

func (v *Var) Name() string { return v.name }

// Index is the column of the variable in the compiled model.
func (v *Var) Index() int { return v.index }

func (v *Var) Category() Category { return v.cat }

func (v *Var) Bounds() (lower, upper float64) { return v.lower, v.upper }

func (v *Var) String() string { return v.name }

func (v *Var) integral() bool { return v.cat != Continuous }
