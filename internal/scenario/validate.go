package scenario

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// recipeTol is the allowed deviation of a recipe's fractions from 1.
const recipeTol = 1e-9

// ValidationError lists every problem found in a scenario.
type ValidationError struct {
	Scenario string
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("scenario")
	if e.Scenario != "" {
		fmt.Fprintf(&b, " %q", e.Scenario)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (path=%s)", e.Path)
	}
	fmt.Fprintf(&b, ": %d problem", len(e.Problems))
	if len(e.Problems) != 1 {
		b.WriteString("s")
	}
	b.WriteString(": ")
	b.WriteString(strings.Join(e.Problems, "; "))
	return b.String()
}

type checker struct {
	problems []string
}

func (c *checker) addf(format string, args ...any) {
	c.problems = append(c.problems, fmt.Sprintf(format, args...))
}

func (c *checker) names(field string, names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	if len(names) == 0 {
		c.addf("%s: must not be empty", field)
	}
	for i, n := range names {
		switch {
		case strings.TrimSpace(n) == "":
			c.addf("%s[%d]: empty name", field, i)
		case set[n]:
			c.addf("%s[%d]: duplicate name %q", field, i, n)
		}
		set[n] = true
	}
	return set
}

func (c *checker) amount(field string, v float64) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		c.addf("%s: must be a finite non-negative number, got %g", field, v)
	}
}

// table checks that m has a finite non-negative entry for every key and
// nothing else.
func (c *checker) table(field string, m map[string]float64, keys []string, known map[string]bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			c.addf("%s: missing entry for %q", field, k)
			continue
		}
		c.amount(fmt.Sprintf("%s.%s", field, k), v)
	}
	var unknown []string
	for k := range m {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		c.addf("%s: unknown key %q", field, k)
	}
}

func (c *checker) share(field string, v float64) {
	if !(v > 0 && v <= 1) {
		c.addf("%s: must be in (0, 1], got %g", field, v)
	}
}

// Validate checks that the scenario is complete and consistent.
func (s *Scenario) Validate() error {
	c := &checker{}

	if strings.TrimSpace(s.Name) == "" {
		c.addf("name: must not be empty")
	}
	products := c.names("products", s.Products)

	customerNames := make([]string, len(s.Customers))
	for i, cu := range s.Customers {
		customerNames[i] = cu.Name
	}
	customers := c.names("customers", customerNames)
	for i, cu := range s.Customers {
		c.table(fmt.Sprintf("customers[%d].demand", i), cu.Demand, s.Products, products)
	}

	switch s.Kind {
	case KindDirect:
		if s.Direct == nil {
			c.addf("direct: section required for kind %q", s.Kind)
		} else {
			s.Direct.validate(c, s.Products, products, customerNames, customers)
		}
		if s.Distribution != nil {
			c.addf("distribution: not allowed for kind %q", s.Kind)
		}
	case KindDistribution:
		if s.Distribution == nil {
			c.addf("distribution: section required for kind %q", s.Kind)
		} else {
			s.Distribution.validate(c, customerNames, customers)
		}
		if s.Direct != nil {
			c.addf("direct: not allowed for kind %q", s.Kind)
		}
	default:
		c.addf("kind: must be %q or %q, got %q", KindDirect, KindDistribution, s.Kind)
	}

	if len(c.problems) > 0 {
		return &ValidationError{Scenario: s.Name, Problems: c.problems}
	}
	return nil
}

func (d *Direct) validate(c *checker, productList []string, products map[string]bool, customerList []string, customers map[string]bool) {
	materials := c.names("direct.materials", d.Materials)

	for _, p := range productList {
		recipe, ok := d.Recipes[p]
		if !ok {
			c.addf("direct.recipes: missing recipe for %q", p)
			continue
		}
		field := fmt.Sprintf("direct.recipes.%s", p)
		c.table(field, recipe, d.Materials, materials)
		var sum float64
		for _, f := range recipe {
			sum += f
		}
		if math.Abs(sum-1) > recipeTol {
			c.addf("%s: fractions sum to %g, want 1", field, sum)
		}
	}
	var unknown []string
	for p := range d.Recipes {
		if !products[p] {
			unknown = append(unknown, p)
		}
	}
	sort.Strings(unknown)
	for _, p := range unknown {
		c.addf("direct.recipes: unknown product %q", p)
	}

	c.amount("direct.fuel_cost_per_mile", d.FuelCostPerMile)
	if d.SiteCapacity <= 0 || math.IsInf(d.SiteCapacity, 0) || math.IsNaN(d.SiteCapacity) {
		c.addf("direct.site_capacity: must be a finite positive number, got %g", d.SiteCapacity)
	}
	if d.MaxStates < 0 {
		c.addf("direct.max_states: must not be negative, got %d", d.MaxStates)
	}

	siteNames := make([]string, len(d.Sites))
	for i, s := range d.Sites {
		siteNames[i] = s.Name
	}
	c.names("direct.sites", siteNames)
	for i, s := range d.Sites {
		field := fmt.Sprintf("direct.sites[%d]", i)
		if strings.TrimSpace(s.State) == "" {
			c.addf("%s.state: must not be empty", field)
		}
		c.amount(field+".fixed_cost", s.FixedCost)
		c.table(field+".material_costs", s.MaterialCosts, d.Materials, materials)
		c.table(field+".distances", s.Distances, customerList, customers)
	}
}

func (d *Distribution) validate(c *checker, customerList []string, customers map[string]bool) {
	c.amount("distribution.plant_fuel_cost_per_mile", d.PlantFuelCostPerMile)
	c.amount("distribution.center_fuel_cost_per_mile", d.CenterFuelCostPerMile)
	c.share("distribution.max_center_share", d.MaxCenterShare)
	c.share("distribution.max_customer_share", d.MaxCustomerShare)

	centerNames := make([]string, len(d.Centers))
	for i, ce := range d.Centers {
		centerNames[i] = ce.Name
	}
	centers := c.names("distribution.centers", centerNames)
	for i, ce := range d.Centers {
		field := fmt.Sprintf("distribution.centers[%d]", i)
		c.amount(field+".fixed_cost", ce.FixedCost)
		c.amount(field+".handling_cost", ce.HandlingCost)
		c.amount(field+".min_throughput", ce.MinThroughput)
		c.amount(field+".max_throughput", ce.MaxThroughput)
		if ce.MinThroughput > ce.MaxThroughput {
			c.addf("%s: min_throughput %g exceeds max_throughput %g", field, ce.MinThroughput, ce.MaxThroughput)
		}
		c.table(field+".distances", ce.Distances, customerList, customers)
	}

	plantNames := make([]string, len(d.Plants))
	for i, p := range d.Plants {
		plantNames[i] = p.Name
	}
	plants := c.names("distribution.plants", plantNames)
	for i, p := range d.Plants {
		c.table(fmt.Sprintf("distribution.plants[%d].distances", i), p.Distances, centerNames, centers)
	}

	c.names("distribution.active_plants", d.ActivePlants)
	for _, name := range d.ActivePlants {
		if name != "" && !plants[name] {
			c.addf("distribution.active_plants: unknown plant %q", name)
		}
	}
}
