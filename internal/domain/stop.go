package domain

import (
	"time"

	"github.com/google/uuid"
)

// StopType classifies a planned stop along the route.
type StopType string

const (
	// StopRest is a mandatory HOS rest break.
	StopRest StopType = "REST"
	// StopFuel is a fueling stop.
	StopFuel StopType = "FUEL"
	// StopBoth is a rest break and fueling stop merged into one.
	StopBoth StopType = "BOTH"
)

// Stop is a planned stop along a trip's route.
// The planner produces stops in strictly increasing DistanceMiles order;
// Location and Coordinates are filled later by an external POI lookup and
// stay zero-valued until then.
type Stop struct {
	ID            uuid.UUID    `json:"id,omitempty"`
	TripID        uuid.UUID    `json:"trip_id,omitempty"`
	Type          StopType     `json:"type"`
	DistanceMiles float64      `json:"distance_miles"`
	ElapsedHours  float64      `json:"elapsed_hours"`
	DurationHours float64      `json:"duration_hours"`
	Location      string       `json:"location,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	Arrival       time.Time    `json:"planned_arrival"`
	Departure     time.Time    `json:"planned_departure"`
	CreatedAt     time.Time    `json:"created_at,omitempty"`
}

// Coordinates is a WGS84 point, longitude first to match GeoJSON ordering.
type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}
