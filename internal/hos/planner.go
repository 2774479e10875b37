package hos

import (
	"fmt"
	"sort"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// PlanStops computes the fuel and rest stops a trip of the given length
// needs, merged into a single list ordered by distance from the origin.
//
// Fuel stops land every FuelStopIntervalMiles of cumulative distance; rest
// stops land each time the driving clock exhausts MaxDrivingHours. A stop's
// elapsed arrival time (or distance, for rest stops) is linearly
// interpolated from the trip's overall pace. Stops closer together than
// StopMergeMiles collapse into one combined stop.
//
// The function is pure: it neither persists stops nor looks anything up.
func PlanStops(totalMiles, totalHours float64, lim Limits) ([]domain.Stop, error) {
	if err := lim.Validate(); err != nil {
		return nil, fmt.Errorf("hos.PlanStops: %w", err)
	}
	if totalMiles <= 0 {
		return nil, fmt.Errorf("hos.PlanStops: %w: total distance must be positive, got %v", domain.ErrInvalidInput, totalMiles)
	}
	if totalHours <= 0 {
		return nil, fmt.Errorf("hos.PlanStops: %w: total duration must be positive, got %v", domain.ErrInvalidInput, totalHours)
	}

	stops := planFuelStops(totalMiles, totalHours, lim)
	stops = append(stops, planRestStops(totalMiles, totalHours, lim)...)

	return MergeStops(stops, lim.StopMergeMiles), nil
}

// planFuelStops places one fuel stop per full fuel interval of distance.
// A trip shorter than one interval needs no fuel stop.
func planFuelStops(totalMiles, totalHours float64, lim Limits) []domain.Stop {
	count := int(totalMiles / lim.FuelStopIntervalMiles)

	stops := make([]domain.Stop, 0, count)
	for i := 1; i <= count; i++ {
		dist := float64(i) * lim.FuelStopIntervalMiles
		stops = append(stops, domain.Stop{
			Type:          domain.StopFuel,
			DistanceMiles: dist,
			ElapsedHours:  dist / totalMiles * totalHours,
			DurationHours: lim.FuelStopHours,
		})
	}
	return stops
}

// planRestStops places a rest stop each time MaxDrivingHours of driving
// accumulates, then skips the rest period itself before counting again.
// The elapsed clock grows by MaxDrivingHours+RequiredRestHours per
// iteration, so the loop runs O(totalHours / MaxDrivingHours) times;
// Limits.Validate guarantees both terms are positive.
func planRestStops(totalMiles, totalHours float64, lim Limits) []domain.Stop {
	var stops []domain.Stop
	elapsed := 0.0

	for elapsed+lim.MaxDrivingHours < totalHours {
		at := elapsed + lim.MaxDrivingHours
		stops = append(stops, domain.Stop{
			Type:          domain.StopRest,
			DistanceMiles: at / totalHours * totalMiles,
			ElapsedHours:  at,
			DurationHours: lim.RequiredRestHours,
		})
		elapsed += lim.MaxDrivingHours + lim.RequiredRestHours
	}
	return stops
}

// MergeStops sorts stops by distance and collapses every run of stops whose
// consecutive distances differ by less than mergeMiles into a single stop.
// The merged stop keeps the first stop's distance and arrival time, takes
// the longest duration in the run, and becomes type Both.
//
// Merging is deterministic and idempotent: merging an already-merged list
// returns it unchanged.
func MergeStops(stops []domain.Stop, mergeMiles float64) []domain.Stop {
	sorted := make([]domain.Stop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DistanceMiles < sorted[j].DistanceMiles
	})

	merged := make([]domain.Stop, 0, len(sorted))
	for i := 0; i < len(sorted); i++ {
		current := sorted[i]
		for i+1 < len(sorted) && sorted[i+1].DistanceMiles-current.DistanceMiles < mergeMiles {
			next := sorted[i+1]
			current.Type = domain.StopBoth
			if next.DurationHours > current.DurationHours {
				current.DurationHours = next.DurationHours
			}
			i++
		}
		merged = append(merged, current)
	}
	return merged
}
