package stats

import (
	"sort"
	"time"

	"fuelbook/internal/core"
)

// Overview is the fleet-wide dashboard: counts and totals across every
// vehicle of one user, plus the most recent fuel-ups.
type Overview struct {
	Vehicles        int
	TotalKilometers int
	TotalLiters     float64
	TotalSpent      float64
	LastRefuels     []core.FuelEntry
}

const lastRefuelCount = 5

// BuildOverview aggregates all vehicles and entries of one user. Distance
// is accumulated per vehicle from its starting odometer; a vehicle with a
// zero start falls back to its lowest recorded reading as the baseline.
func BuildOverview(vehicles []core.Vehicle, entries []core.FuelEntry) Overview {
	o := Overview{Vehicles: len(vehicles)}

	for _, v := range vehicles {
		var own []core.FuelEntry
		for _, e := range entries {
			if e.VehicleID == v.ID {
				own = append(own, e)
			}
		}
		if len(own) == 0 {
			continue
		}
		start := v.StartKilometers
		if start == 0 {
			start = own[0].Kilometers
			for _, e := range own[1:] {
				if e.Kilometers < start {
					start = e.Kilometers
				}
			}
		}
		o.TotalKilometers += TotalDistance(own, start)
	}

	o.TotalLiters = TotalLiters(entries)
	o.TotalSpent = TotalCost(entries)
	o.LastRefuels = lastRefuels(entries)
	return o
}

func lastRefuels(entries []core.FuelEntry) []core.FuelEntry {
	dated := make([]core.FuelEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Date.IsZero() {
			dated = append(dated, e)
		}
	}
	sort.Slice(dated, func(i, j int) bool {
		return dated[i].Date.After(dated[j].Date)
	})
	if len(dated) > lastRefuelCount {
		dated = dated[:lastRefuelCount]
	}
	return dated
}

// InsuranceValid reports whether the vehicle's insurance is still valid on
// the given day (expiry today counts as valid).
func InsuranceValid(v core.Vehicle, now time.Time) bool {
	if v.Insurance.IsZero() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	expiry := time.Date(v.Insurance.Year(), v.Insurance.Month(), v.Insurance.Day(), 0, 0, 0, 0, now.Location())
	return !expiry.Before(today)
}
