// Package domain contains the core data types for the HOS trip planner.
// This package has zero heavy dependencies and is imported by every other
// internal package (hos, repo, service, handler).
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DutyStatus is one of the four duty statuses an ELD grid records.
// The set is closed: ParseDutyStatus rejects anything else.
type DutyStatus string

const (
	// StatusOffDuty is time the driver is relieved of all work.
	StatusOffDuty DutyStatus = "OFF"
	// StatusSleeperBerth is rest taken in the sleeper berth.
	StatusSleeperBerth DutyStatus = "SB"
	// StatusDriving is time at the wheel.
	StatusDriving DutyStatus = "D"
	// StatusOnDuty is on-duty time not spent driving (inspections,
	// fueling, loading).
	StatusOnDuty DutyStatus = "ON"
)

// ParseDutyStatus converts a stored status code into a DutyStatus.
// Returns ErrValidation for any code outside the closed set.
func ParseDutyStatus(code string) (DutyStatus, error) {
	switch DutyStatus(code) {
	case StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDuty:
		return DutyStatus(code), nil
	}
	return "", fmt.Errorf("%w: unknown duty status %q", ErrValidation, code)
}

// DutySegment is one contiguous block of a single duty status on a daily log.
// Start and End are offsets from the owning log sheet's midnight. End may be
// numerically smaller than Start only when EndsNextDay is set; Duration
// accounts for that carry so midnight-crossing segments never compute
// negative.
type DutySegment struct {
	ID          uuid.UUID     `json:"id,omitempty"`
	Status      DutyStatus    `json:"status"`
	Start       time.Duration `json:"-"`
	End         time.Duration `json:"-"`
	EndsNextDay bool          `json:"ends_next_day,omitempty"`
	Location    string        `json:"location,omitempty"`
	Odometer    float64       `json:"odometer"`
	Remarks     string        `json:"remarks,omitempty"`
}

// MarshalJSON renders Start and End as "HH:MM" clock strings so API clients
// never see raw nanosecond offsets.
func (s DutySegment) MarshalJSON() ([]byte, error) {
	type alias DutySegment
	return json.Marshal(struct {
		alias
		Start string  `json:"start"`
		End   string  `json:"end"`
		Hours float64 `json:"hours"`
	}{alias(s), s.StartClock(), s.EndClock(), s.Duration()})
}

// Duration returns the segment length in hours.
// End < Start means the segment wrapped past midnight; the wrap adds 24h.
func (s DutySegment) Duration() float64 {
	d := s.End - s.Start
	if d < 0 || (d == 0 && s.EndsNextDay) {
		d += 24 * time.Hour
	}
	return d.Hours()
}

// StartClock returns the start offset formatted as "HH:MM".
func (s DutySegment) StartClock() string { return formatClock(s.Start) }

// EndClock returns the end offset formatted as "HH:MM".
// A segment that runs to the end of the day renders as "24:00".
func (s DutySegment) EndClock() string {
	if s.End == 24*time.Hour {
		return "24:00"
	}
	return formatClock(s.End)
}

// formatClock renders an offset-from-midnight as "HH:MM", dropping seconds.
func formatClock(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	return fmt.Sprintf("%02d:%02d", h%24, m)
}
