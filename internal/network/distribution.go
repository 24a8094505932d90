package network

import (
	"fmt"

	"github.com/bartolsthoorn/chipnet/internal/milp"
	"github.com/bartolsthoorn/chipnet/internal/scenario"
)

// BuildDistribution formulates the distribution network: which centres to
// build and how product flows plant → centre → customer.
//
// Every centre handles between its minimum and maximum throughput and passes
// each product through unchanged. A centre is assigned exactly one product
// per customer and delivers at most a fixed share of that customer's demand.
// No plant sends more than a fixed share of its output to a single centre.
//
// With OptionalCenters the minimum binds only for built centres and a centre
// is assigned at most one product per customer.
func BuildDistribution(s *scenario.Scenario) (*Plan, error) {
	if s.Kind != scenario.KindDistribution || s.Distribution == nil {
		return nil, fmt.Errorf("build %q: not a distribution network scenario", s.Name)
	}
	d := s.Distribution

	plants := d.Active()
	if len(plants) == 0 {
		return nil, fmt.Errorf("build %q: no active plants", s.Name)
	}
	plantNames := make([]string, len(plants))
	for i, pl := range plants {
		plantNames[i] = pl.Name
	}
	centerNames := make([]string, len(d.Centers))
	for i, c := range d.Centers {
		centerNames[i] = c.Name
	}
	customers := customerNames(s)

	p := milp.NewProblem(s.Name, milp.Minimize)
	inbound := newGrid("Inbound", plantNames, centerNames, s.Products, func(name string) *milp.Var {
		return p.IntVar(name, 0, milp.Inf)
	})
	outbound := newGrid("Outbound", centerNames, customers, s.Products, func(name string) *milp.Var {
		return p.IntVar(name, 0, milp.Inf)
	})
	serve := newGrid("Serve", centerNames, customers, s.Products, func(name string) *milp.Var {
		return p.BinaryVar(name)
	})
	build := make([]*milp.Var, len(d.Centers))
	for i, c := range d.Centers {
		build[i] = p.BinaryVar(milp.Name("Build", c.Name))
	}

	var inboundCost, outboundCost, fixed milp.Expr
	for i, pl := range plants {
		for j, c := range centerNames {
			inboundCost.AddExpr(1, milp.Weighted(InboundCost(d, pl, c), inbound.pair(i, j)...))
		}
	}
	for i, c := range d.Centers {
		for j, cust := range customers {
			outboundCost.AddExpr(1, milp.Weighted(OutboundCost(d, c, cust), outbound.pair(i, j)...))
		}
		fixed.AddTerm(c.FixedCost, build[i])
	}
	var objective milp.Expr
	objective.AddExpr(1, inboundCost).AddExpr(1, outboundCost).AddExpr(1, fixed)
	p.SetObjective(objective)

	for j, c := range d.Centers {
		minimum := milp.Sum(inbound.second(j)...)
		if d.OptionalCenters {
			minimum.AddTerm(-c.MinThroughput, build[j])
			p.Constrain(milp.Name(c.Name, "min_throughput"), minimum, milp.GE, 0)
		} else {
			p.Constrain(milp.Name(c.Name, "min_throughput"), minimum, milp.GE, c.MinThroughput)
		}
		p.Constrain(milp.Name(c.Name, "max_throughput"), milp.Sum(inbound.second(j)...), milp.LE, c.MaxThroughput)
	}

	for i, pl := range plants {
		for j, c := range centerNames {
			share := milp.Weighted(d.MaxCenterShare, inbound.first(i)...)
			share.AddExpr(-1, milp.Sum(inbound.pair(i, j)...))
			p.Constrain(milp.Name(pl.Name, "to", c, "share"), share, milp.GE, 0)
		}
	}

	for j, cust := range s.Customers {
		for k, prod := range s.Products {
			p.Constrain(milp.Name(cust.Name, prod, "demand"), milp.Sum(outbound.across(j, k)...), milp.GE, cust.Demand[prod])
		}
	}

	perPair := milp.EQ
	if d.OptionalCenters {
		perPair = milp.LE
	}
	for i, c := range d.Centers {
		for j, cust := range s.Customers {
			p.Constrain(milp.Name(c.Name, "to", cust.Name, "share"),
				milp.Sum(outbound.pair(i, j)...), milp.LE, d.MaxCustomerShare*cust.TotalDemand())
			p.Constrain(milp.Name(c.Name, "to", cust.Name, "single_product"),
				milp.Sum(serve.pair(i, j)...), perPair, 1)
			for k, prod := range s.Products {
				link := milp.Sum(outbound[i][j][k])
				link.AddTerm(-c.MaxThroughput, serve[i][j][k])
				p.Constrain(milp.Name(c.Name, cust.Name, prod, "serve_link"), link, milp.LE, 0)
			}
		}
	}

	for j, c := range d.Centers {
		in := milp.Sum(inbound.second(j)...)
		in.AddTerm(-c.MaxThroughput, build[j])
		p.Constrain(milp.Name(c.Name, "inbound_link"), in, milp.LE, 0)

		out := milp.Sum(outbound.first(j)...)
		out.AddTerm(-c.MaxThroughput, build[j])
		p.Constrain(milp.Name(c.Name, "outbound_link"), out, milp.LE, 0)
	}

	for j, c := range d.Centers {
		for k, prod := range s.Products {
			balance := milp.Sum(inbound.across(j, k)...)
			for m := range customers {
				balance.AddTerm(-1, outbound[j][m][k])
			}
			p.Constrain(milp.Name(c.Name, prod, "balance"), balance, milp.EQ, 0)
		}
	}

	plan := &Plan{Scenario: s, Problem: p}
	plan.summarize = func(r *milp.Result) ([]string, []Line) {
		var built []string
		for i, c := range d.Centers {
			if r.Value(build[i]) > 0.5 {
				built = append(built, c.Name)
			}
		}
		return built, []Line{
			{Label: "Centres built", Value: float64(len(built))},
			{Label: "Total outgoing products from plants", Value: r.Total(inbound.all()...)},
			{Label: "Total outgoing products from centres", Value: r.Total(outbound.all()...)},
			{Label: "Inbound transport cost", Value: r.Eval(inboundCost)},
			{Label: "Outbound transport and handling cost", Value: r.Eval(outboundCost)},
			{Label: "Fixed centre cost", Value: r.Eval(fixed)},
		}
	}
	return plan, nil
}
