package hos

import (
	"fmt"
	"time"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// assemble turns the simulator's raw day records into finished LogSheet
// values: odometer readings interpolated from miles per driving hour, a
// running odometer threaded through every segment, and per-day mileage.
//
// The trip's average pace (TotalMiles / TotalDriveHours) prices each driving
// hour; non-driving segments carry the odometer reading they were entered at.
func assemble(days []simDay, in SimulationInput) []domain.LogSheet {
	milesPerHour := in.TotalMiles / in.TotalDriveHours

	sheets := make([]domain.LogSheet, 0, len(days))
	odometer := in.StartOdometer

	for _, d := range days {
		sheet := domain.LogSheet{
			Date:          d.date,
			StartOdometer: round1(odometer),
		}

		for _, seg := range d.segments {
			seg.Odometer = round1(odometer)
			if seg.Status == domain.StatusDriving {
				odometer += seg.Duration() * milesPerHour
			}
			sheet.Segments = append(sheet.Segments, seg)
		}

		sheet.EndOdometer = round1(odometer)
		sheet.TotalMiles = round1(sheet.EndOdometer - sheet.StartOdometer)
		sheets = append(sheets, sheet)
	}
	return sheets
}

// SegmentStops is the second entry point into the segmenter: instead of
// budget-driven simulation it walks a list of already-scheduled stops with
// concrete arrival and departure times, filling the gaps between them with
// driving and padding each calendar day to a full 24 hours of off-duty time.
//
// Stops must be ordered by arrival and fall within [start, end]; rest stops
// log as sleeper-berth time, fuel and combined stops as on-duty time.
// Segments never silently wrap midnight: a block that spans days is split at
// each midnight so every emitted sheet tiles exactly.
func SegmentStops(start, end time.Time, stops []domain.Stop) ([]domain.LogSheet, error) {
	if err := validateSchedule(start, end, stops); err != nil {
		return nil, err
	}

	type block struct {
		status   domain.DutyStatus
		from, to time.Time
		location string
		remarks  string
	}

	start = start.Truncate(time.Minute)
	end = end.Truncate(time.Minute)

	var blocks []block
	cursor := start
	for _, s := range stops {
		arrive := s.Arrival.Truncate(time.Minute)
		depart := s.Departure.Truncate(time.Minute)

		if arrive.After(cursor) {
			blocks = append(blocks, block{status: domain.StatusDriving, from: cursor, to: arrive})
		}

		status := domain.StatusOnDuty
		remarks := "Fuel stop"
		if s.Type == domain.StopRest {
			status = domain.StatusSleeperBerth
			remarks = "Rest break"
		}
		blocks = append(blocks, block{status: status, from: arrive, to: depart, location: s.Location, remarks: remarks})
		cursor = depart
	}
	if end.After(cursor) {
		blocks = append(blocks, block{status: domain.StatusDriving, from: cursor, to: end})
	}

	// Cut the continuous timeline into calendar days, splitting any block
	// that crosses midnight.
	firstDay := truncateToDay(start)
	lastDay := truncateToDay(end.Add(-time.Minute))

	var sheets []domain.LogSheet
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		next := day.AddDate(0, 0, 1)
		sheet := domain.LogSheet{Date: day}

		clock := time.Duration(0)
		for _, b := range blocks {
			from, to := b.from, b.to
			if !from.Before(next) || !to.After(day) {
				continue
			}
			if from.Before(day) {
				from = day
			}
			if to.After(next) {
				to = next
			}

			startOff := from.Sub(day)
			if startOff > clock {
				// Gap before the first scheduled block of the day.
				sheet.Segments = append(sheet.Segments, domain.DutySegment{
					Status: domain.StatusOffDuty, Start: clock, End: startOff,
				})
			}
			sheet.Segments = append(sheet.Segments, domain.DutySegment{
				Status:   b.status,
				Start:    startOff,
				End:      to.Sub(day),
				Location: b.location,
				Remarks:  b.remarks,
			})
			clock = to.Sub(day)
		}

		if clock < 24*time.Hour {
			sheet.Segments = append(sheet.Segments, domain.DutySegment{
				Status: domain.StatusOffDuty, Start: clock, End: 24 * time.Hour,
			})
		}
		sheets = append(sheets, sheet)
	}

	return sheets, nil
}

// validateSchedule applies SegmentStops' fail-fast input checks.
func validateSchedule(start, end time.Time, stops []domain.Stop) error {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return errInvalidf("schedule window must have end after start")
	}
	prev := start
	for i, s := range stops {
		if s.Arrival.Before(prev) {
			return errInvalidf("stop %d out of order", i)
		}
		if !s.Departure.After(s.Arrival) {
			return errInvalidf("stop %d must depart after it arrives", i)
		}
		if s.Departure.After(end) {
			return errInvalidf("stop %d extends past the schedule window", i)
		}
		prev = s.Departure
	}
	return nil
}

// errInvalidf wraps domain.ErrInvalidInput with SegmentStops context.
func errInvalidf(format string, args ...any) error {
	return fmt.Errorf("hos.SegmentStops: %w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// round1 rounds to one decimal, the resolution odometers are recorded at.
func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
