// Package stats derives summary statistics from fuel entries. Every
// function is pure: deterministic for a given input, no storage access,
// and zero values (or an absent projection) on empty input instead of
// errors.
package stats

import (
	"math"
	"sort"
	"time"

	"fuelbook/internal/core"
)

const (
	// Kilograms of CO2 emitted per liter of fuel burned.
	co2KgPerLiter = 2.31
	// Kilograms of CO2 one tree absorbs per year.
	co2KgPerTree = 22
)

// CO2Report is the emission estimate for a set of fuel-ups.
type CO2Report struct {
	TotalKg float64
	Trees   int
}

// Summary bundles every derived statistic for one vehicle.
type Summary struct {
	TotalLiters          float64
	TotalDistanceKm      int
	TotalCost            float64
	AveragePricePerLiter float64
	AverageConsumption   float64 // liters per 100 km
	MonthlyProjection    int
	HasMonthlyProjection bool
	CO2                  CO2Report
}

// TotalDistance returns the kilometers covered since tracking began: the
// spread from the starting odometer to the highest recorded reading,
// clipped at zero so inconsistent data never yields a negative distance.
func TotalDistance(entries []core.FuelEntry, startKm int) int {
	if len(entries) == 0 {
		return 0
	}
	maxKm := entries[0].Kilometers
	for _, e := range entries[1:] {
		if e.Kilometers > maxKm {
			maxKm = e.Kilometers
		}
	}
	if maxKm <= startKm {
		return 0
	}
	return maxKm - startKm
}

// TotalLiters sums the fuel volume across all entries.
func TotalLiters(entries []core.FuelEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Liters
	}
	return total
}

// TotalCost sums entry costs, counting a missing cost as 0.
func TotalCost(entries []core.FuelEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.CostValue()
	}
	return total
}

// AveragePricePerLiter returns the arithmetic mean of per-entry unit
// prices over entries that carry both a volume and a cost. This is the
// mean of prices paid, not aggregate cost over aggregate liters.
func AveragePricePerLiter(entries []core.FuelEntry) float64 {
	var sum float64
	var n int
	for _, e := range entries {
		if e.Liters > 0 && e.HasCost() && *e.Cost > 0 {
			sum += *e.Cost / e.Liters
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AverageConsumption computes liters per 100 km from consecutive odometer
// readings. Entries are sorted by odometer first, so the result is
// invariant under permutation of the input. Pairs with a non-positive
// kilometer delta or volume are skipped. Returns 0 below two entries or
// when no pair qualifies.
func AverageConsumption(entries []core.FuelEntry) float64 {
	if len(entries) < 2 {
		return 0
	}
	sorted := make([]core.FuelEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Kilometers < sorted[j].Kilometers
	})

	var totalKm int
	var totalLiters float64
	for i := 1; i < len(sorted); i++ {
		km := sorted[i].Kilometers - sorted[i-1].Kilometers
		liters := sorted[i].Liters
		if km > 0 && liters > 0 {
			totalKm += km
			totalLiters += liters
		}
	}
	if totalKm == 0 {
		return 0
	}
	return totalLiters / float64(totalKm) * 100
}

// MonthlyCostProjection extrapolates the month-to-date spend to a
// full-month estimate (a linear run-rate, noisy with sparse data). The
// second return value is false when no entry falls in now's calendar
// month. With a single entry the denominator is the current day of the
// month, clamped to 1; with several it is the day span between the
// earliest and latest fill, minimum 1.
func MonthlyCostProjection(entries []core.FuelEntry, now time.Time) (int, bool) {
	if len(entries) == 0 {
		return 0, false
	}
	year, month := now.Year(), now.Month()
	var thisMonth []core.FuelEntry
	for _, e := range entries {
		if e.Date.Year() == year && e.Date.Month() == month {
			thisMonth = append(thisMonth, e)
		}
	}
	if len(thisMonth) == 0 {
		return 0, false
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location()).Day()

	if len(thisMonth) == 1 {
		day := now.Day()
		if day < 1 {
			day = 1
		}
		perDay := thisMonth[0].CostValue() / float64(day)
		return int(math.Round(perDay * float64(daysInMonth))), true
	}

	sort.Slice(thisMonth, func(i, j int) bool {
		return thisMonth[i].Date.Before(thisMonth[j].Date)
	})
	span := thisMonth[len(thisMonth)-1].Date.Day() - thisMonth[0].Date.Day()
	if span < 1 {
		span = 1
	}
	var cost float64
	for _, e := range thisMonth {
		cost += e.CostValue()
	}
	perDay := cost / float64(span)
	return int(math.Round(perDay * float64(daysInMonth))), true
}

// CO2 estimates total emissions and the yearly tree equivalent. The tree
// count is floored at 1 whenever any fuel-up is recorded.
func CO2(entries []core.FuelEntry) CO2Report {
	if len(entries) == 0 {
		return CO2Report{}
	}
	totalKg := TotalLiters(entries) * co2KgPerLiter
	trees := int(math.Round(totalKg / co2KgPerTree))
	if trees < 1 {
		trees = 1
	}
	return CO2Report{TotalKg: totalKg, Trees: trees}
}

// Summarize computes the full statistics block for one vehicle's entries.
func Summarize(entries []core.FuelEntry, startKm int, now time.Time) Summary {
	s := Summary{
		TotalLiters:          TotalLiters(entries),
		TotalDistanceKm:      TotalDistance(entries, startKm),
		TotalCost:            TotalCost(entries),
		AveragePricePerLiter: AveragePricePerLiter(entries),
		AverageConsumption:   AverageConsumption(entries),
		CO2:                  CO2(entries),
	}
	s.MonthlyProjection, s.HasMonthlyProjection = MonthlyCostProjection(entries, now)
	return s
}
