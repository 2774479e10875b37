package domain

// TripPlan is the full output of planning a trip: the routed summary plus the
// persisted stops and daily log sheets. Re-planning a trip replaces the stops
// and sheets wholesale and returns a fresh TripPlan.
type TripPlan struct {
	Trip      Trip         `json:"trip"`
	Route     RouteSummary `json:"route"`
	Stops     []Stop       `json:"stops"`
	LogSheets []LogSheet   `json:"log_sheets"`
}
