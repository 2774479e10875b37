package hos

import (
	"fmt"
	"time"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// SimulationInput carries everything the day simulator needs. Distances are
// miles, durations are fractional hours; the routing boundary has already
// normalized units by the time this struct is built.
type SimulationInput struct {
	// Start is when the driver goes on duty for the trip.
	Start time.Time
	// TotalDriveHours is the routed driving time to cover, pickup to dropoff
	// included.
	TotalDriveHours float64
	// TotalMiles is the routed distance, used for odometer interpolation.
	TotalMiles float64
	// FirstLegHours is the driving time of the first leg (current location
	// to pickup); crossing it triggers the pickup activity.
	FirstLegHours float64
	// CycleHoursUsed is how much of the rolling cycle the driver has already
	// burned before this trip.
	CycleHoursUsed float64
	// StartOdometer seeds the odometer readings on the emitted sheets.
	StartOdometer float64

	CurrentLocation string
	PickupLocation  string
	DropoffLocation string

	Limits Limits
}

// simDay accumulates one calendar day of segments before assembly.
type simDay struct {
	date       time.Time
	segments   []domain.DutySegment
	driveHours float64
}

// Simulate walks simulated time forward from in.Start until the trip's
// driving is exhausted and the dropoff is logged, emitting one LogSheet per
// calendar day. Each sheet's segments tile the full 24 hours in order; daily
// driving and on-duty totals respect the limits, and cycle hours are only
// ever decremented across the run.
//
// Day shape: an overnight rest block (one contiguous RequiredRestHours on
// every day after the first), a 15-minute pre-trip inspection, a driving
// block sized by whichever budget runs out first, a one-hour pickup or
// dropoff when the drive crosses the corresponding boundary, and off-duty
// time to midnight. Driving is clipped at the day boundary so no segment
// silently wraps.
//
// Invalid inputs fail before the loop starts; no partial schedule is ever
// returned with an error.
func Simulate(in SimulationInput) ([]domain.LogSheet, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	lim := in.Limits
	const day = 24 * time.Hour

	totalDrive := hours(in.TotalDriveHours)
	firstLeg := hours(in.FirstLegHours)
	rest := hours(lim.RequiredRestHours)
	preTrip := hours(lim.PreTripHours)
	loading := hours(lim.LoadingHours)

	// Budgets carried across the loop. Daily budgets reset each morning
	// after the rest block; the cycle budget never resets within one run.
	dailyDrive := hours(lim.MaxDrivingHours)
	dailyOnDuty := hours(lim.MaxOnDutyHours)
	cycleLeft := hours(lim.MaxCycleHours - in.CycleHoursUsed)

	var (
		elapsed     time.Duration // cumulative driving so far
		pickupDone  bool
		dropoffDone bool
		days        []simDay
	)

	start := in.Start.Truncate(time.Minute)
	date := truncateToDay(start)
	clock := start.Sub(date) // offset from midnight

	// The loop is bounded: every day after the first either drives or logs a
	// pending loading activity. The generous cap converts a stalled loop
	// (which Validate should have prevented) into an explicit error.
	maxDays := int(in.TotalDriveHours/lim.MaxDrivingHours)*2 + 4

	for dayIdx := 0; elapsed < totalDrive || !dropoffDone; dayIdx++ {
		if dayIdx >= maxDays {
			return nil, fmt.Errorf("hos.Simulate: %w: no forward progress after %d days", domain.ErrConfig, dayIdx)
		}

		d := simDay{date: date}

		if dayIdx == 0 {
			// Off duty from midnight until the trip starts, so the first
			// sheet tiles 24 hours like every other.
			if clock > 0 {
				d.add(domain.StatusOffDuty, 0, clock, "", "")
			}
		} else {
			// One contiguous overnight rest block. Keeping the full
			// RequiredRestHours together (rather than splitting it around
			// midnight) is what makes the break legally countable.
			d.add(domain.StatusSleeperBerth, 0, rest, "", fmt.Sprintf("%v-hour rest", lim.RequiredRestHours))
			clock = rest
			dailyDrive = hours(lim.MaxDrivingHours)
			dailyOnDuty = hours(lim.MaxOnDutyHours)
		}

		// Pre-trip inspection precedes any driving day. A start so late it
		// cannot even fit the inspection pushes all work to the next day.
		if elapsed < totalDrive && clock+preTrip <= day {
			d.add(domain.StatusOnDuty, clock, clock+preTrip, in.CurrentLocation, "Pre-trip inspection")
			clock += preTrip
			dailyOnDuty -= preTrip
		}

		// Drive as far as the tightest budget allows.
		avail := minDuration(dailyDrive, dailyOnDuty, cycleLeft, totalDrive-elapsed)

		// Hold back an hour when this drive would trigger pickup or dropoff,
		// and clip at midnight either way. A clipped day simply drives less;
		// the next day's reset budgets pick up the remainder.
		reserve := time.Duration(0)
		if (!pickupDone && elapsed+avail >= firstLeg) || elapsed+avail >= totalDrive {
			reserve = loading
		}
		if clock+avail+reserve > day {
			avail = day - clock - reserve
		}

		if avail > 0 {
			d.add(domain.StatusDriving, clock, clock+avail, "", "")
			clock += avail
			elapsed += avail
			dailyDrive -= avail
			dailyOnDuty -= avail
			cycleLeft -= avail
			d.driveHours = avail.Hours()
		}

		// Pickup logs once, the first day the drive crosses the first leg;
		// dropoff logs on the day driving completes. Never both in one day.
		switch {
		case !pickupDone && elapsed >= firstLeg && clock+loading <= day:
			d.add(domain.StatusOnDuty, clock, clock+loading, in.PickupLocation, "Pickup")
			clock += loading
			dailyOnDuty -= loading
			pickupDone = true
		case pickupDone && !dropoffDone && elapsed >= totalDrive && clock+loading <= day:
			d.add(domain.StatusOnDuty, clock, clock+loading, in.DropoffLocation, "Dropoff")
			clock += loading
			dailyOnDuty -= loading
			dropoffDone = true
		}

		// Off duty for whatever remains of the day.
		if clock < day {
			d.add(domain.StatusOffDuty, clock, day, "", "")
		}

		days = append(days, d)
		date = date.AddDate(0, 0, 1)
		clock = 0
	}

	return assemble(days, in), nil
}

// validateInput applies the fail-fast checks from the engine's contract.
func validateInput(in SimulationInput) error {
	if err := in.Limits.Validate(); err != nil {
		return fmt.Errorf("hos.Simulate: %w", err)
	}
	if in.Start.IsZero() {
		return fmt.Errorf("hos.Simulate: %w: start time is required", domain.ErrInvalidInput)
	}
	if in.TotalDriveHours <= 0 {
		return fmt.Errorf("hos.Simulate: %w: total drive hours must be positive, got %v", domain.ErrInvalidInput, in.TotalDriveHours)
	}
	if in.TotalMiles <= 0 {
		return fmt.Errorf("hos.Simulate: %w: total miles must be positive, got %v", domain.ErrInvalidInput, in.TotalMiles)
	}
	if in.FirstLegHours < 0 || in.FirstLegHours > in.TotalDriveHours {
		return fmt.Errorf("hos.Simulate: %w: first leg hours out of range: %v", domain.ErrInvalidInput, in.FirstLegHours)
	}
	if in.CycleHoursUsed < 0 {
		return fmt.Errorf("hos.Simulate: %w: cycle hours used must not be negative, got %v", domain.ErrInvalidInput, in.CycleHoursUsed)
	}
	if remaining := in.Limits.MaxCycleHours - in.CycleHoursUsed; in.TotalDriveHours > remaining {
		return fmt.Errorf("hos.Simulate: %w: trip needs %.1fh driving but only %.1fh remain in the cycle",
			domain.ErrInvalidInput, in.TotalDriveHours, remaining)
	}
	return nil
}

// add appends a segment to the day, skipping zero-length entries.
func (d *simDay) add(status domain.DutyStatus, start, end time.Duration, location, remarks string) {
	if end <= start {
		return
	}
	d.segments = append(d.segments, domain.DutySegment{
		Status:   status,
		Start:    start,
		End:      end,
		Location: location,
		Remarks:  remarks,
	})
}

// hours converts fractional hours to a time.Duration without losing
// sub-minute precision to intermediate rounding.
func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// truncateToDay returns midnight of t's calendar day in t's location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// minDuration returns the smallest of the given durations.
func minDuration(ds ...time.Duration) time.Duration {
	m := ds[0]
	for _, d := range ds[1:] {
		if d < m {
			m = d
		}
	}
	return m
}
