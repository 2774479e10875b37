package domain

// ExportRow is a single row in the flat log export.
// It is a denormalized view: one row per duty segment, with trip and sheet
// fields repeated for every segment on that sheet. Sheets with no segments
// yield one row with zero values for all segment fields.
type ExportRow struct {
	// Trip fields, repeated for every segment on the trip.
	TripID          string `json:"trip_id"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`

	// Sheet fields, repeated for every segment on the sheet.
	Date       string  `json:"date"` // "2006-01-02"
	TotalMiles float64 `json:"total_miles"`

	// Segment fields, zero values when the sheet has no segments.
	Status   string  `json:"status,omitempty"`
	Start    string  `json:"start,omitempty"` // "HH:MM"
	End      string  `json:"end,omitempty"`   // "HH:MM", "24:00" at end of day
	Hours    float64 `json:"hours"`
	Location string  `json:"location,omitempty"`
	Remarks  string  `json:"remarks,omitempty"`
}
