package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/haultrackr/eld-backend/internal/domain"
	"github.com/haultrackr/eld-backend/internal/hos"
	"github.com/haultrackr/eld-backend/internal/repo"
)

// RoutePlanner is the slice of the routing client the plan service needs.
// Declaring it here (consumer side) lets tests substitute a fake without
// standing up an HTTP server.
type RoutePlanner interface {
	PlanRoute(ctx context.Context, trip domain.Trip) (domain.RouteSummary, error)
}

// PlanService orchestrates a full trip plan: route the trip, place fuel and
// rest stops, simulate the duty schedule, and persist the results. Planning
// is idempotent per trip; a re-plan replaces the previous stops and sheets.
type PlanService struct {
	trips  repo.TripRepo
	stops  repo.StopRepo
	sheets repo.LogSheetRepo
	router RoutePlanner
	limits hos.Limits

	// now is swapped out in tests for deterministic schedules.
	now func() time.Time
}

// NewPlanService constructs a PlanService backed by the provided repos and
// routing client.
func NewPlanService(trips repo.TripRepo, stops repo.StopRepo, sheets repo.LogSheetRepo, router RoutePlanner, limits hos.Limits) *PlanService {
	return &PlanService{
		trips:  trips,
		stops:  stops,
		sheets: sheets,
		router: router,
		limits: limits,
		now:    time.Now,
	}
}

// Plan computes and persists the full plan for a trip.
//
// Error mapping for handlers: domain.ErrNotFound when the trip does not
// exist, domain.ErrRateLimited when the routing budget is exhausted,
// domain.ErrUpstream when the routing API fails, domain.ErrInvalidInput or
// domain.ErrConfig when the schedule cannot be built from the routed trip.
func (s *PlanService) Plan(ctx context.Context, tripID uuid.UUID) (domain.TripPlan, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}

	route, err := s.router.PlanRoute(ctx, trip)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) || errors.Is(err, domain.ErrInvalidInput) {
			return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
		}
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w: %v", domain.ErrUpstream, err)
	}

	start := s.now().UTC()

	stops, err := hos.PlanStops(route.DistanceMiles, route.DurationHours, s.limits)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}
	scheduleStops(start, stops)

	firstLeg := route.DurationHours
	if len(route.Legs) > 0 {
		firstLeg = route.Legs[0].DurationHours
	}

	sheets, err := hos.Simulate(hos.SimulationInput{
		Start:           start,
		TotalDriveHours: route.DurationHours,
		TotalMiles:      route.DistanceMiles,
		FirstLegHours:   firstLeg,
		CycleHoursUsed:  trip.CurrentCycleHours,
		CurrentLocation: trip.CurrentLocation,
		PickupLocation:  trip.PickupLocation,
		DropoffLocation: trip.DropoffLocation,
		Limits:          s.limits,
	})
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}

	// Replace any previous plan before writing the new one.
	if err := s.stops.DeleteByTripID(ctx, trip.ID); err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}
	if err := s.sheets.DeleteByTripID(ctx, trip.ID); err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}

	savedStops, err := s.stops.CreateBatch(ctx, trip.ID, stops)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}
	savedSheets, err := s.sheets.CreateBatch(ctx, trip.ID, sheets)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}

	if savedStops == nil {
		savedStops = []domain.Stop{}
	}
	return domain.TripPlan{
		Trip:      trip,
		Route:     route,
		Stops:     savedStops,
		LogSheets: savedSheets,
	}, nil
}

// scheduleStops assigns planned arrival and departure timestamps to stops.
// A stop's arrival is the trip start plus its driving-elapsed time plus the
// dwell time of every earlier stop; its departure follows after its own
// duration. Stops arrive ordered by distance, which for a single route is
// also elapsed-time order.
func scheduleStops(start time.Time, stops []domain.Stop) {
	dwell := 0.0
	for i := range stops {
		arrival := start.Add(hoursToDuration(stops[i].ElapsedHours + dwell))
		stops[i].Arrival = arrival
		stops[i].Departure = arrival.Add(hoursToDuration(stops[i].DurationHours))
		dwell += stops[i].DurationHours
	}
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour)).Round(time.Minute)
}
