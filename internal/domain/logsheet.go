package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogSheet is one calendar day of an electronic log: the ordered duty
// segments for that date plus the odometer bookkeeping.
//
// Invariant: Segments, in start-time order, tile the day with no gaps and no
// overlap; their durations sum to exactly 24 hours. The HOS simulator emits
// sheets in that shape and nothing mutates them afterwards.
type LogSheet struct {
	ID            uuid.UUID     `json:"id,omitempty"`
	TripID        uuid.UUID     `json:"trip_id,omitempty"`
	Date          time.Time     `json:"date"`
	Segments      []DutySegment `json:"duty_segments"`
	StartOdometer float64       `json:"start_odometer"`
	EndOdometer   float64       `json:"end_odometer"`
	TotalMiles    float64       `json:"total_miles"`
	CreatedAt     time.Time     `json:"created_at,omitempty"`
}

// TotalDrivingHours sums the Driving segment durations for the day.
func (l LogSheet) TotalDrivingHours() float64 {
	var total float64
	for _, s := range l.Segments {
		if s.Status == StatusDriving {
			total += s.Duration()
		}
	}
	return total
}

// TotalOnDutyHours sums Driving plus On-Duty-not-driving durations.
// This is the number the 14-hour window is measured against.
func (l LogSheet) TotalOnDutyHours() float64 {
	var total float64
	for _, s := range l.Segments {
		if s.Status == StatusDriving || s.Status == StatusOnDuty {
			total += s.Duration()
		}
	}
	return total
}

// TotalOffDutyHours sums Off-Duty and Sleeper-Berth durations.
func (l LogSheet) TotalOffDutyHours() float64 {
	var total float64
	for _, s := range l.Segments {
		if s.Status == StatusOffDuty || s.Status == StatusSleeperBerth {
			total += s.Duration()
		}
	}
	return total
}
