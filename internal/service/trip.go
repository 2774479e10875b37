// Package service contains the business logic for the HOS trip planner API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// collaborator calls. No SQL lives here; services depend on repo interfaces,
// not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/haultrackr/eld-backend/internal/domain"
	"github.com/haultrackr/eld-backend/internal/hos"
	"github.com/haultrackr/eld-backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo   repo.TripRepo
	limits hos.Limits
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// The limits bound what cycle hours a driver may report on a new trip.
func NewTripService(r repo.TripRepo, limits hos.Limits) *TripService {
	return &TripService{repo: r, limits: limits}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := s.validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of trips, newest first, plus the total trip count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Delete removes a trip by ID; its stops and log sheets cascade with it.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules for new trips.
//   - All three locations must be non-empty (whitespace-only is rejected).
//   - Current cycle hours must fall within [0, MaxCycleHours].
func (s *TripService) validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.CurrentLocation) == "" {
		return fmt.Errorf("%w: current_location is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.PickupLocation) == "" {
		return fmt.Errorf("%w: pickup_location is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.DropoffLocation) == "" {
		return fmt.Errorf("%w: dropoff_location is required", domain.ErrValidation)
	}
	if trip.CurrentCycleHours < 0 || trip.CurrentCycleHours > s.limits.MaxCycleHours {
		return fmt.Errorf("%w: current_cycle_hours must be between 0 and %v",
			domain.ErrValidation, s.limits.MaxCycleHours)
	}
	return nil
}
