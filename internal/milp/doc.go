// Package milp builds named mixed-integer models and solves them with HiGHS.
//
// A Problem owns its variables. Constraints and the objective are linear
// expressions over those variables. Problem.Model compiles everything into a
// highs.Model, and Problem.Solve runs it and maps the outcome back onto the
// variables:
//
//	p := milp.NewProblem("plan", milp.Minimize)
//	x := p.IntVar("x", 0, milp.Inf)
//	y := p.BinaryVar("y")
//
//	obj := milp.Weighted(3, x)
//	obj.AddTerm(50, y)
//	p.SetObjective(obj)
//
//	link := milp.Sum(x)
//	link.AddTerm(-10, y)
//	p.Constrain("demand", milp.Sum(x), milp.GE, 4)
//	p.Constrain("link", link, milp.LE, 0)
//
//	res, err := p.Solve(ctx)
//
// Errors found while building (duplicate names, foreign variables) are
// sticky: building continues and the first error is returned by Model and
// Solve.
package milp
