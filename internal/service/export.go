package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/haultrackr/eld-backend/internal/domain"
	"github.com/haultrackr/eld-backend/internal/repo"
)

// ExportService assembles a flat export of a trip's duty log.
type ExportService struct {
	trips  repo.TripRepo
	sheets repo.LogSheetRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, sheets repo.LogSheetRepo) *ExportService {
	return &ExportService{trips: trips, sheets: sheets}
}

// Export returns one ExportRow per duty segment across a trip's log sheets.
// Sheets with no segments contribute one row with empty segment fields.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	sheets, err := s.sheets.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, sheet := range sheets {
		base := domain.ExportRow{
			TripID:          trip.ID.String(),
			PickupLocation:  trip.PickupLocation,
			DropoffLocation: trip.DropoffLocation,
			Date:            sheet.Date.Format("2006-01-02"),
			TotalMiles:      sheet.TotalMiles,
		}

		if len(sheet.Segments) == 0 {
			rows = append(rows, base)
			continue
		}

		for _, seg := range sheet.Segments {
			row := base
			row.Status = string(seg.Status)
			row.Start = seg.StartClock()
			row.End = seg.EndClock()
			row.Hours = seg.Duration()
			row.Location = seg.Location
			row.Remarks = seg.Remarks
			rows = append(rows, row)
		}
	}
	return rows, nil
}
