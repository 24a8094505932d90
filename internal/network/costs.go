package network

import (
	"math"

	"github.com/bartolsthoorn/chipnet/internal/scenario"
)

// ProductionCost is the material cost of one unit of product at site: the
// recipe fractions weighted by the site's material prices.
func ProductionCost(d *scenario.Direct, site scenario.Site, product string) float64 {
	var cost float64
	for _, m := range d.Materials {
		cost += d.Recipes[product][m] * site.MaterialCosts[m]
	}
	return cost
}

// DeliveredCost is the cost of making one unit of product at site and
// trucking it to customer, rounded to cents.
func DeliveredCost(d *scenario.Direct, site scenario.Site, customer, product string) float64 {
	return roundCents(site.Distances[customer]*d.FuelCostPerMile + ProductionCost(d, site, product))
}

// InboundCost is the per-unit trucking cost from plant to centre.
func InboundCost(d *scenario.Distribution, plant scenario.Plant, center string) float64 {
	return plant.Distances[center] * d.PlantFuelCostPerMile
}

// OutboundCost is the per-unit cost of handling a unit at centre and
// trucking it to customer.
func OutboundCost(d *scenario.Distribution, center scenario.Center, customer string) float64 {
	return center.Distances[customer]*d.CenterFuelCostPerMile + center.HandlingCost
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
