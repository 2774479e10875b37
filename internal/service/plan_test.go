package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haultrackr/eld-backend/internal/domain"
	"github.com/haultrackr/eld-backend/internal/hos"
	"github.com/haultrackr/eld-backend/internal/service"
)

// passthroughStops returns a mockStopRepo whose writes succeed and echo
// their input, recording whether DeleteByTripID ran first.
func passthroughStops(deleted *bool) *mockStopRepo {
	return &mockStopRepo{
		deleteByTripID: func(_ context.Context, _ uuid.UUID) error {
			*deleted = true
			return nil
		},
		createBatch: func(_ context.Context, _ uuid.UUID, stops []domain.Stop) ([]domain.Stop, error) {
			if !*deleted {
				return nil, errors.New("create before delete")
			}
			return stops, nil
		},
	}
}

func passthroughSheets(deleted *bool) *mockLogSheetRepo {
	return &mockLogSheetRepo{
		deleteByTripID: func(_ context.Context, _ uuid.UUID) error {
			*deleted = true
			return nil
		},
		createBatch: func(_ context.Context, _ uuid.UUID, sheets []domain.LogSheet) ([]domain.LogSheet, error) {
			if !*deleted {
				return nil, errors.New("create before delete")
			}
			return sheets, nil
		},
	}
}

// longHaulRoute is a two-leg route long enough to need both a fuel and a
// rest stop: 1160 miles, 5 h to the pickup and 13 h loaded.
func longHaulRoute() domain.RouteSummary {
	return domain.RouteSummary{
		DistanceMiles: 1160,
		DurationHours: 18,
		Legs: []domain.Leg{
			{DistanceMiles: 320, DurationHours: 5},
			{DistanceMiles: 840, DurationHours: 13},
		},
	}
}

func newPlanService(router service.RoutePlanner) (*service.PlanService, *bool, *bool) {
	stopsDeleted := new(bool)
	sheetsDeleted := new(bool)
	svc := service.NewPlanService(
		foundTripRepo(validTrip()),
		passthroughStops(stopsDeleted),
		passthroughSheets(sheetsDeleted),
		router,
		hos.DefaultLimits(),
	)
	return svc, stopsDeleted, sheetsDeleted
}

func TestPlanService_Plan_OK(t *testing.T) {
	svc, stopsDeleted, sheetsDeleted := newPlanService(&mockRoutePlanner{
		planRoute: func(_ context.Context, _ domain.Trip) (domain.RouteSummary, error) {
			return longHaulRoute(), nil
		},
	})

	plan, err := svc.Plan(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, *stopsDeleted, "previous stops should be cleared")
	assert.True(t, *sheetsDeleted, "previous sheets should be cleared")
	assert.InDelta(t, 1160, plan.Route.DistanceMiles, 1e-9)

	// 1160 miles crosses one fuel interval; 18 h of driving needs one rest.
	require.Len(t, plan.Stops, 2)
	assert.Equal(t, domain.StopRest, plan.Stops[0].Type)
	assert.Equal(t, domain.StopFuel, plan.Stops[1].Type)

	// An 18 h drive cannot fit in one duty day.
	assert.GreaterOrEqual(t, len(plan.LogSheets), 2)

	// Stops carry a concrete schedule, departure after arrival.
	for _, stop := range plan.Stops {
		assert.False(t, stop.Arrival.IsZero())
		assert.True(t, stop.Departure.After(stop.Arrival))
	}
	// The rest stop dwell pushes the later stop's arrival out.
	assert.True(t, plan.Stops[1].Arrival.After(plan.Stops[0].Departure))
}

func TestPlanService_Plan_TripNotFound(t *testing.T) {
	svc := service.NewPlanService(
		&mockTripRepo{
			getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
				return domain.Trip{}, domain.ErrNotFound
			},
		},
		&mockStopRepo{}, &mockLogSheetRepo{},
		&mockRoutePlanner{},
		hos.DefaultLimits(),
	)

	_, err := svc.Plan(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanService_Plan_RateLimited(t *testing.T) {
	svc, _, _ := newPlanService(&mockRoutePlanner{
		planRoute: func(_ context.Context, _ domain.Trip) (domain.RouteSummary, error) {
			return domain.RouteSummary{}, domain.ErrRateLimited
		},
	})

	_, err := svc.Plan(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.NotErrorIs(t, err, domain.ErrUpstream)
}

func TestPlanService_Plan_UpstreamFailure(t *testing.T) {
	svc, _, _ := newPlanService(&mockRoutePlanner{
		planRoute: func(_ context.Context, _ domain.Trip) (domain.RouteSummary, error) {
			return domain.RouteSummary{}, errors.New("dial tcp: connection refused")
		},
	})

	_, err := svc.Plan(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestPlanService_Plan_RouteExceedsCycle(t *testing.T) {
	trip := validTrip()
	trip.CurrentCycleHours = 69 // one hour of cycle left

	svc := service.NewPlanService(
		foundTripRepo(trip),
		&mockStopRepo{}, &mockLogSheetRepo{},
		&mockRoutePlanner{
			planRoute: func(_ context.Context, _ domain.Trip) (domain.RouteSummary, error) {
				return longHaulRoute(), nil
			},
		},
		hos.DefaultLimits(),
	)

	_, err := svc.Plan(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlanService_Plan_ShortTripNoStops(t *testing.T) {
	svc, _, _ := newPlanService(&mockRoutePlanner{
		planRoute: func(_ context.Context, _ domain.Trip) (domain.RouteSummary, error) {
			return domain.RouteSummary{
				DistanceMiles: 120,
				DurationHours: 2,
				Legs: []domain.Leg{
					{DistanceMiles: 30, DurationHours: 0.5},
					{DistanceMiles: 90, DurationHours: 1.5},
				},
			}, nil
		},
	})

	plan, err := svc.Plan(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, plan.Stops, "stops should be an empty slice, not nil")
	assert.Empty(t, plan.Stops)
	// Depending on the start clock the trip fits one day or rolls past
	// midnight into a second.
	assert.NotEmpty(t, plan.LogSheets)
}
