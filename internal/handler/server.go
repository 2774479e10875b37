// Package handler implements the HTTP handlers for the HOS trip planner API.
// Handlers are methods on Server, split into domain-specific files (trip.go,
// plan.go, etc.) that all share the same Server struct. Handlers decode and
// validate requests, call a service interface, and translate sentinel errors
// to HTTP statuses; no business logic lives here.
package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlanServicer plans a trip end to end.
type PlanServicer interface {
	Plan(ctx context.Context, tripID uuid.UUID) (domain.TripPlan, error)
}

// LogServicer serves log sheets and their grid renderings.
type LogServicer interface {
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error)
	RenderGrid(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// ExportServicer produces the flat log export for a trip.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the service dependencies for all API endpoints.
type Server struct {
	trips  TripServicer
	plans  PlanServicer
	logs   LogServicer
	export ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, plans PlanServicer, logs LogServicer, export ExportServicer) *Server {
	return &Server{trips: trips, plans: plans, logs: logs, export: export}
}
