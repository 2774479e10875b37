package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/haultrackr/eld-backend/internal/domain"
	"github.com/haultrackr/eld-backend/internal/repo"
	"github.com/haultrackr/eld-backend/internal/service"
)

// Hand-written test doubles for the repo interfaces. Each method delegates to
// a function field so individual tests only stub what they exercise.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockStopRepo struct {
	createBatch    func(ctx context.Context, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error)
	listByTripID   func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	deleteByTripID func(ctx context.Context, tripID uuid.UUID) error
}

func (m *mockStopRepo) CreateBatch(ctx context.Context, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error) {
	return m.createBatch(ctx, tripID, stops)
}
func (m *mockStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockStopRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) error {
	return m.deleteByTripID(ctx, tripID)
}

var _ repo.StopRepo = (*mockStopRepo)(nil)

type mockLogSheetRepo struct {
	createBatch    func(ctx context.Context, tripID uuid.UUID, sheets []domain.LogSheet) ([]domain.LogSheet, error)
	listByTripID   func(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.LogSheet, error)
	deleteByTripID func(ctx context.Context, tripID uuid.UUID) error
}

func (m *mockLogSheetRepo) CreateBatch(ctx context.Context, tripID uuid.UUID, sheets []domain.LogSheet) ([]domain.LogSheet, error) {
	return m.createBatch(ctx, tripID, sheets)
}
func (m *mockLogSheetRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockLogSheetRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.LogSheet, error) {
	return m.getByID(ctx, id)
}
func (m *mockLogSheetRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) error {
	return m.deleteByTripID(ctx, tripID)
}

var _ repo.LogSheetRepo = (*mockLogSheetRepo)(nil)

type mockRoutePlanner struct {
	planRoute func(ctx context.Context, trip domain.Trip) (domain.RouteSummary, error)
}

func (m *mockRoutePlanner) PlanRoute(ctx context.Context, trip domain.Trip) (domain.RouteSummary, error) {
	return m.planRoute(ctx, trip)
}

var _ service.RoutePlanner = (*mockRoutePlanner)(nil)

// foundTripRepo returns a mockTripRepo whose GetByID always succeeds,
// echoing back a trip with the requested ID.
func foundTripRepo(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			t := trip
			t.ID = id
			return t, nil
		},
	}
}
