package milp

import (
	"fmt"
	"strings"
)

// Term is coef·Var.
type Term struct {
	Var  *Var
	Coef float64
}

// Expr is a linear expression Σ terms + Constant. The same variable may
// appear in several terms; coefficients are summed on compilation.
//
// Methods with pointer receivers modify the expression in place and return
// it so calls can be chained.
type Expr struct {
	Terms    []Term
	Constant float64
}

// Sum returns Σ vars.
func Sum(vars ...*Var) Expr {
	return Weighted(1, vars...)
}

// Weighted returns coef·Σ vars.
func Weighted(coef float64, vars ...*Var) Expr {
	e := Expr{Terms: make([]Term, 0, len(vars))}
	for _, v := range vars {
		e.Terms = append(e.Terms, Term{Var: v, Coef: coef})
	}
	return e
}

// AddTerm adds coef·v.
func (e *Expr) AddTerm(coef float64, v *Var) *Expr {
	e.Terms = append(e.Terms, Term{Var: v, Coef: coef})
	return e
}

// AddExpr adds scale·other.
func (e *Expr) AddExpr(scale float64, other Expr) *Expr {
	for _, t := range other.Terms {
		e.Terms = append(e.Terms, Term{Var: t.Var, Coef: scale * t.Coef})
	}
	e.Constant += scale * other.Constant
	return e
}

// AddConst adds a constant.
func (e *Expr) AddConst(c float64) *Expr {
	e.Constant += c
	return e
}

// Scaled returns a copy of e multiplied by k.
func (e Expr) Scaled(k float64) Expr {
	out := Expr{Terms: make([]Term, len(e.Terms)), Constant: k * e.Constant}
	for i, t := range e.Terms {
		out.Terms[i] = Term{Var: t.Var, Coef: k * t.Coef}
	}
	return out
}

// Coefficients returns the summed coefficient per variable, in order of
// first appearance, skipping variables whose coefficients cancel.
func (e Expr) Coefficients() ([]*Var, []float64) {
	pos := make(map[*Var]int, len(e.Terms))
	var vars []*Var
	var coefs []float64
	for _, t := range e.Terms {
		if i, ok := pos[t.Var]; ok {
			coefs[i] += t.Coef
			continue
		}
		pos[t.Var] = len(vars)
		vars = append(vars, t.Var)
		coefs = append(coefs, t.Coef)
	}

	outVars := vars[:0]
	outCoefs := coefs[:0]
	for i, v := range vars {
		if coefs[i] != 0 {
			outVars = append(outVars, v)
			outCoefs = append(outCoefs, coefs[i])
		}
	}
	return outVars, outCoefs
}

func (e Expr) String() string {
	vars, coefs := e.Coefficients()
	var b strings.Builder
	for i, v := range vars {
		c := coefs[i]
		switch {
		case i == 0 && c < 0:
			b.WriteString("-")
		case i > 0 && c < 0:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		if c < 0 {
			c = -c
		}
		if c != 1 {
			fmt.Fprintf(&b, "%g*", c)
		}
		b.WriteString(v.name)
	}
	if e.Constant != 0 || len(vars) == 0 {
		if len(vars) > 0 {
			if e.Constant < 0 {
				fmt.Fprintf(&b, " - %g", -e.Constant)
			} else {
				fmt.Fprintf(&b, " + %g", e.Constant)
			}
		} else {
			fmt.Fprintf(&b, "%g", e.Constant)
		}
	}
	return b.String()
}
