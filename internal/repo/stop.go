package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// StopRepo defines the persistence operations for planned stops.
// Stops are written as a batch when a trip is planned and replaced wholesale
// when it is re-planned; there is no per-stop mutation.
type StopRepo interface {
	// CreateBatch inserts all stops for a trip, preserving their order, and
	// returns the persisted records.
	CreateBatch(ctx context.Context, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error)

	// ListByTripID returns all stops for a trip ordered by distance ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)

	// DeleteByTripID removes every stop belonging to the trip.
	// Deleting for a trip with no stops is not an error.
	DeleteByTripID(ctx context.Context, tripID uuid.UUID) error
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

func (r *pgStopRepo) CreateBatch(ctx context.Context, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error) {
	const q = `
		INSERT INTO stops (trip_id, type, distance_miles, elapsed_hours, duration_hours,
		                   location, lon, lat, planned_arrival, planned_departure)
		VALUES (@trip_id, @type, @distance_miles, @elapsed_hours, @duration_hours,
		        @location, @lon, @lat, @planned_arrival, @planned_departure)
		RETURNING id, trip_id, type, distance_miles, elapsed_hours, duration_hours,
		          location, lon, lat, planned_arrival, planned_departure, created_at`

	out := make([]domain.Stop, 0, len(stops))
	for _, stop := range stops {
		var lon, lat *float64
		if stop.Coordinates != nil {
			lon, lat = &stop.Coordinates.Lon, &stop.Coordinates.Lat
		}

		args := pgx.NamedArgs{
			"trip_id":           tripID,
			"type":              string(stop.Type),
			"distance_miles":    stop.DistanceMiles,
			"elapsed_hours":     stop.ElapsedHours,
			"duration_hours":    stop.DurationHours,
			"location":          stop.Location,
			"lon":               lon,
			"lat":               lat,
			"planned_arrival":   stop.Arrival,
			"planned_departure": stop.Departure,
		}

		created, err := scanStop(r.db.QueryRow(ctx, q, args))
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.CreateBatch: %w", err)
		}
		out = append(out, created)
	}
	return out, nil
}

func (r *pgStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT id, trip_id, type, distance_miles, elapsed_hours, duration_hours,
		       location, lon, lat, planned_arrival, planned_departure, created_at
		FROM stops
		WHERE trip_id = @trip_id
		ORDER BY distance_miles ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListByTripID: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: rows: %w", err)
	}

	return stops, nil
}

func (r *pgStopRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) error {
	const q = `DELETE FROM stops WHERE trip_id = @trip_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.StopRepo.DeleteByTripID: %w", err)
	}
	return nil
}

// scanStop maps a single database row into a domain.Stop.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		stop     domain.Stop
		id       pgtype.UUID
		tripID   pgtype.UUID
		stopType string
		lon, lat *float64
	)

	err := s.Scan(&id, &tripID, &stopType, &stop.DistanceMiles, &stop.ElapsedHours,
		&stop.DurationHours, &stop.Location, &lon, &lat, &stop.Arrival, &stop.Departure, &stop.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}

	stop.ID = uuid.UUID(id.Bytes)
	stop.TripID = uuid.UUID(tripID.Bytes)
	stop.Type = domain.StopType(stopType)
	if lon != nil && lat != nil {
		stop.Coordinates = &domain.Coordinates{Lon: *lon, Lat: *lat}
	}
	return stop, nil
}
