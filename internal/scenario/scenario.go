// Package scenario holds the input tables of a planning run: products,
// customers and their demand, and either a direct production network or a
// plant → distribution centre → customer network.
package scenario

import "slices"

// Kind selects which network a scenario describes.
type Kind string

const (
	KindDirect       Kind = "direct"
	KindDistribution Kind = "distribution"
)

type Scenario struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Kind        Kind       `yaml:"kind" json:"kind"`
	Products    []string   `yaml:"products" json:"products"`
	Customers   []Customer `yaml:"customers" json:"customers"`

	Direct       *Direct       `yaml:"direct,omitempty" json:"direct,omitempty"`
	Distribution *Distribution `yaml:"distribution,omitempty" json:"distribution,omitempty"`
}

// Customer demand is in units per product.
type Customer struct {
	Name   string             `yaml:"name" json:"name"`
	Demand map[string]float64 `yaml:"demand" json:"demand"`
}

// TotalDemand sums the demand over all products.
func (c Customer) TotalDemand() float64 {
	var sum float64
	for _, d := range c.Demand {
		sum += d
	}
	return sum
}

// Direct describes production sites that ship straight to customers.
type Direct struct {
	Materials []string `yaml:"materials" json:"materials"`
	// Recipes maps product → material → fraction of one unit.
	Recipes         map[string]map[string]float64 `yaml:"recipes" json:"recipes"`
	FuelCostPerMile float64                       `yaml:"fuel_cost_per_mile" json:"fuel_cost_per_mile"`
	SiteCapacity    float64                       `yaml:"site_capacity" json:"site_capacity"`
	// MaxStates caps the number of states with an open site. Zero means
	// no cap.
	MaxStates int    `yaml:"max_states" json:"max_states"`
	Sites     []Site `yaml:"sites" json:"sites"`
}

type Site struct {
	Name          string             `yaml:"name" json:"name"`
	State         string             `yaml:"state" json:"state"`
	FixedCost     float64            `yaml:"fixed_cost" json:"fixed_cost"`
	MaterialCosts map[string]float64 `yaml:"material_costs" json:"material_costs"`
	// Distances in miles, keyed by customer.
	Distances map[string]float64 `yaml:"distances" json:"distances"`
}

// States returns the distinct site states in order of first appearance.
func (d *Direct) States() []string {
	var out []string
	for _, s := range d.Sites {
		if !slices.Contains(out, s.State) {
			out = append(out, s.State)
		}
	}
	return out
}

// Distribution describes plants feeding distribution centres that serve
// customers.
type Distribution struct {
	PlantFuelCostPerMile  float64 `yaml:"plant_fuel_cost_per_mile" json:"plant_fuel_cost_per_mile"`
	CenterFuelCostPerMile float64 `yaml:"center_fuel_cost_per_mile" json:"center_fuel_cost_per_mile"`
	// MaxCenterShare caps the fraction of a plant's output sent to any one
	// centre.
	MaxCenterShare float64 `yaml:"max_center_share" json:"max_center_share"`
	// MaxCustomerShare caps the fraction of a customer's total demand any
	// one centre may deliver.
	MaxCustomerShare float64 `yaml:"max_customer_share" json:"max_customer_share"`
	// OptionalCenters lets a centre stay closed: its minimum throughput
	// only binds once it is built, and it may serve a customer no product.
	// By default every centre handles at least its minimum and serves each
	// customer exactly one product.
	OptionalCenters bool     `yaml:"optional_centers,omitempty" json:"optional_centers,omitempty"`
	Plants          []Plant  `yaml:"plants" json:"plants"`
	ActivePlants    []string `yaml:"active_plants" json:"active_plants"`
	Centers         []Center `yaml:"centers" json:"centers"`
}

type Plant struct {
	Name string `yaml:"name" json:"name"`
	// Distances in miles, keyed by centre.
	Distances map[string]float64 `yaml:"distances" json:"distances"`
}

type Center struct {
	Name          string  `yaml:"name" json:"name"`
	FixedCost     float64 `yaml:"fixed_cost" json:"fixed_cost"`
	HandlingCost  float64 `yaml:"handling_cost" json:"handling_cost"`
	MinThroughput float64 `yaml:"min_throughput" json:"min_throughput"`
	MaxThroughput float64 `yaml:"max_throughput" json:"max_throughput"`
	// Distances in miles, keyed by customer.
	Distances map[string]float64 `yaml:"distances" json:"distances"`
}

// Active returns the plants listed in ActivePlants, in that order.
func (d *Distribution) Active() []Plant {
	byName := make(map[string]Plant, len(d.Plants))
	for _, p := range d.Plants {
		byName[p.Name] = p
	}
	out := make([]Plant, 0, len(d.ActivePlants))
	for _, name := range d.ActivePlants {
		if p, ok := byName[name]; ok {
			out = append(out, p)
		}
	}
	return out
}

// WithActivePlants returns a copy of a distribution scenario producing from
// the named plants. The copy is validated.
func (s *Scenario) WithActivePlants(names []string) (*Scenario, error) {
	if s.Distribution == nil {
		return nil, &ValidationError{Scenario: s.Name, Problems: []string{"not a distribution scenario"}}
	}
	out := *s
	dist := *s.Distribution
	dist.ActivePlants = slices.Clone(names)
	out.Distribution = &dist
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
