// Package hos implements the Hours-of-Service planning engine: fuel and rest
// stop placement along a route, the day-by-day duty simulation that turns a
// routed trip into legally structured daily logs, and the assembly of those
// days into log sheet records.
//
// Everything in this package is pure computation. Persistence, routing, and
// rendering live elsewhere and only exchange domain types with it.
package hos

import (
	"fmt"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// Limits holds the regulatory and operational parameters the engine plans
// against. The zero value is unusable; start from DefaultLimits and override
// per carrier where needed.
type Limits struct {
	// MaxDrivingHours is the most driving allowed in one duty day.
	MaxDrivingHours float64
	// MaxOnDutyHours is the on-duty window per day (driving plus other work).
	MaxOnDutyHours float64
	// RequiredRestHours is the consecutive off-duty time that resets the
	// daily limits.
	RequiredRestHours float64
	// MaxCycleHours is the rolling cycle cap; a trip cannot consume more
	// driving than what remains of it.
	MaxCycleHours float64

	// FuelStopIntervalMiles is the distance between planned fuel stops.
	FuelStopIntervalMiles float64
	// StopMergeMiles is the distance threshold under which two adjacent
	// planned stops collapse into one.
	StopMergeMiles float64

	// FuelStopHours is how long a fuel stop takes.
	FuelStopHours float64
	// PreTripHours is the on-duty time logged for the pre-trip inspection.
	PreTripHours float64
	// LoadingHours is the on-duty time logged for pickup and for dropoff.
	LoadingHours float64
}

// DefaultLimits returns the fixed US property-carrying HOS rule set the
// planner ships with: 11h driving / 14h on-duty / 10h rest / 70h cycle,
// fueling every 1000 miles.
func DefaultLimits() Limits {
	return Limits{
		MaxDrivingHours:       11,
		MaxOnDutyHours:        14,
		RequiredRestHours:     10,
		MaxCycleHours:         70,
		FuelStopIntervalMiles: 1000,
		StopMergeMiles:        50,
		FuelStopHours:         0.5,
		PreTripHours:          0.25,
		LoadingHours:          1,
	}
}

// Validate rejects rule sets the engine cannot plan against. A non-positive
// driving or rest limit would stall the simulation loop, so it is reported
// as a configuration error up front rather than detected by a hung loop.
func (l Limits) Validate() error {
	switch {
	case l.MaxDrivingHours <= 0:
		return fmt.Errorf("%w: max driving hours must be positive, got %v", domain.ErrConfig, l.MaxDrivingHours)
	case l.MaxOnDutyHours <= 0:
		return fmt.Errorf("%w: max on-duty hours must be positive, got %v", domain.ErrConfig, l.MaxOnDutyHours)
	case l.RequiredRestHours <= 0:
		return fmt.Errorf("%w: required rest hours must be positive, got %v", domain.ErrConfig, l.RequiredRestHours)
	case l.RequiredRestHours >= 24:
		return fmt.Errorf("%w: required rest hours must leave room in the day, got %v", domain.ErrConfig, l.RequiredRestHours)
	case l.MaxCycleHours <= 0:
		return fmt.Errorf("%w: max cycle hours must be positive, got %v", domain.ErrConfig, l.MaxCycleHours)
	case l.FuelStopIntervalMiles <= 0:
		return fmt.Errorf("%w: fuel stop interval must be positive, got %v", domain.ErrConfig, l.FuelStopIntervalMiles)
	case l.StopMergeMiles < 0:
		return fmt.Errorf("%w: stop merge threshold must not be negative, got %v", domain.ErrConfig, l.StopMergeMiles)
	case l.FuelStopHours <= 0 || l.PreTripHours <= 0 || l.LoadingHours <= 0:
		return fmt.Errorf("%w: activity durations must be positive", domain.ErrConfig)
	}
	return nil
}
