package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents one planned haul: where the driver is now, where the load
// is picked up, and where it is dropped off.
// A trip is the top-level aggregate; stops and log sheets belong to a trip
// and are deleted with it.
type Trip struct {
	ID                uuid.UUID `json:"id"`
	CurrentLocation   string    `json:"current_location"`
	PickupLocation    string    `json:"pickup_location"`
	DropoffLocation   string    `json:"dropoff_location"`
	CurrentCycleHours float64   `json:"current_cycle_hours"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
