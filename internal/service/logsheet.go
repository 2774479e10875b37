package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/haultrackr/eld-backend/internal/domain"
	"github.com/haultrackr/eld-backend/internal/render"
	"github.com/haultrackr/eld-backend/internal/repo"
)

// LogService serves the daily log sheets produced by planning and renders
// them as ELD-style grid images.
type LogService struct {
	trips  repo.TripRepo
	sheets repo.LogSheetRepo
}

// NewLogService constructs a LogService backed by the provided repos.
func NewLogService(trips repo.TripRepo, sheets repo.LogSheetRepo) *LogService {
	return &LogService{trips: trips, sheets: sheets}
}

// ListByTripID returns a trip's log sheets in date order.
// Returns domain.ErrNotFound if the trip itself does not exist; a planned
// trip with no sheets yields an empty, non-nil slice.
func (s *LogService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.LogService.ListByTripID: %w", err)
	}
	sheets, err := s.sheets.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.ListByTripID: %w", err)
	}
	if sheets == nil {
		sheets = []domain.LogSheet{}
	}
	return sheets, nil
}

// GetByID returns a single log sheet with its segments.
func (s *LogService) GetByID(ctx context.Context, id uuid.UUID) (domain.LogSheet, error) {
	sheet, err := s.sheets.GetByID(ctx, id)
	if err != nil {
		return domain.LogSheet{}, fmt.Errorf("service.LogService.GetByID: %w", err)
	}
	return sheet, nil
}

// RenderGrid returns a PNG rendering of one log sheet's 24-hour duty grid.
// Returns domain.ErrNotFound if the sheet does not exist.
func (s *LogService) RenderGrid(ctx context.Context, id uuid.UUID) ([]byte, error) {
	sheet, err := s.sheets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.RenderGrid: %w", err)
	}
	png, err := render.Grid(sheet)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.RenderGrid: %w", err)
	}
	return png, nil
}
