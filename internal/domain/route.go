package domain

// MetersPerMile is the conversion factor applied exactly once, at the
// routing boundary. Everything downstream of it works in miles and hours.
const MetersPerMile = 1609.34

// RouteSummary is the routed trip as the HOS engine consumes it: total
// distance in miles, total duration in hours, and the ordered legs.
// It is a read-only input; nothing in the core mutates it.
type RouteSummary struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
	Legs          []Leg   `json:"legs"`
}

// Leg is one point-to-point section of the route (current to pickup,
// pickup to dropoff). Geometry is the provider's encoded polyline; Points is
// its decoded form when the caller asked for it.
type Leg struct {
	DistanceMiles float64       `json:"distance_miles"`
	DurationHours float64       `json:"duration_hours"`
	Geometry      string        `json:"geometry,omitempty"`
	Points        []Coordinates `json:"points,omitempty"`
}
