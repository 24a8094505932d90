package network

import (
	"fmt"

	"github.com/bartolsthoorn/chipnet/internal/milp"
	"github.com/bartolsthoorn/chipnet/internal/scenario"
)

// BuildDirect formulates the direct network: which sites to open and how
// much of each product every open site ships to each customer.
//
//	min  Σ delivered cost · Ship + Σ fixed cost · Open
//	s.t. Σ Ship(site)                ≤ capacity          per site
//	     Σ_site Ship(·, cust, prod)  ≥ demand            per customer and product
//	     Σ Ship(site) − capacity·Open ≤ 0                per site
//	     Open(site) − State(state)    ≤ 0                per site
//	     Σ State                      ≤ max states
func BuildDirect(s *scenario.Scenario) (*Plan, error) {
	if s.Kind != scenario.KindDirect || s.Direct == nil {
		return nil, fmt.Errorf("build %q: not a direct network scenario", s.Name)
	}
	d := s.Direct

	sites := make([]string, len(d.Sites))
	for i, site := range d.Sites {
		sites[i] = site.Name
	}
	customers := customerNames(s)

	p := milp.NewProblem(s.Name, milp.Minimize)
	ship := newGrid("Ship", sites, customers, s.Products, func(name string) *milp.Var {
		return p.IntVar(name, 0, milp.Inf)
	})
	open := make([]*milp.Var, len(d.Sites))
	for i, site := range d.Sites {
		open[i] = p.BinaryVar(milp.Name("Open", site.Name))
	}

	var delivered, fixed milp.Expr
	for i, site := range d.Sites {
		for j, cust := range customers {
			for k, prod := range s.Products {
				delivered.AddTerm(DeliveredCost(d, site, cust, prod), ship[i][j][k])
			}
		}
		fixed.AddTerm(site.FixedCost, open[i])
	}
	var objective milp.Expr
	objective.AddExpr(1, delivered).AddExpr(1, fixed)
	p.SetObjective(objective)

	for i, site := range d.Sites {
		p.Constrain(milp.Name(site.Name, "production_capacity"), milp.Sum(ship.first(i)...), milp.LE, d.SiteCapacity)
	}

	for j, cust := range s.Customers {
		for k, prod := range s.Products {
			p.Constrain(milp.Name(cust.Name, prod, "demand"), milp.Sum(ship.across(j, k)...), milp.GE, cust.Demand[prod])
		}
	}

	for i, site := range d.Sites {
		link := milp.Sum(ship.first(i)...)
		link.AddTerm(-d.SiteCapacity, open[i])
		p.Constrain(milp.Name(site.Name, "open_link"), link, milp.LE, 0)
	}

	if d.MaxStates > 0 {
		states := d.States()
		stateVar := make(map[string]*milp.Var, len(states))
		all := make([]*milp.Var, len(states))
		for i, st := range states {
			stateVar[st] = p.BinaryVar(milp.Name("State", st))
			all[i] = stateVar[st]
		}
		for i, site := range d.Sites {
			link := milp.Sum(open[i])
			link.AddTerm(-1, stateVar[site.State])
			p.Constrain(milp.Name(site.Name, "state_link"), link, milp.LE, 0)
		}
		p.Constrain("state_limit", milp.Sum(all...), milp.LE, float64(d.MaxStates))
	}

	plan := &Plan{Scenario: s, Problem: p}
	plan.summarize = func(r *milp.Result) ([]string, []Line) {
		var opened []string
		used := make(map[string]bool)
		for i, site := range d.Sites {
			if r.Value(open[i]) > 0.5 {
				opened = append(opened, site.Name)
				used[site.State] = true
			}
		}
		return opened, []Line{
			{Label: "Sites opened", Value: float64(len(opened))},
			{Label: "States used", Value: float64(len(used))},
			{Label: "Total units shipped", Value: r.Total(ship.all()...)},
			{Label: "Delivered product cost", Value: r.Eval(delivered)},
			{Label: "Fixed site cost", Value: r.Eval(fixed)},
		}
	}
	return plan, nil
}

func customerNames(s *scenario.Scenario) []string {
	out := make([]string, len(s.Customers))
	for i, c := range s.Customers {
		out[i] = c.Name
	}
	return out
}
