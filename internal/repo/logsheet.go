package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// LogSheetRepo defines the persistence operations for daily log sheets and
// their duty segments. Sheets are immutable once written: a re-plan deletes
// and recreates them rather than editing rows.
type LogSheetRepo interface {
	// CreateBatch inserts all sheets (with their segments, in order) for a
	// trip and returns the persisted records.
	CreateBatch(ctx context.Context, tripID uuid.UUID, sheets []domain.LogSheet) ([]domain.LogSheet, error)

	// ListByTripID returns a trip's sheets ordered by date ascending, each
	// with its segments in sequence order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error)

	// GetByID retrieves one sheet with its segments.
	// Returns domain.ErrNotFound if no sheet with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.LogSheet, error)

	// DeleteByTripID removes every sheet (and, via cascade, every segment)
	// belonging to the trip.
	DeleteByTripID(ctx context.Context, tripID uuid.UUID) error
}

// pgLogSheetRepo is the Postgres implementation of LogSheetRepo.
type pgLogSheetRepo struct {
	db db
}

// NewLogSheetRepo constructs a LogSheetRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLogSheetRepo(db db) LogSheetRepo {
	return &pgLogSheetRepo{db: db}
}

func (r *pgLogSheetRepo) CreateBatch(ctx context.Context, tripID uuid.UUID, sheets []domain.LogSheet) ([]domain.LogSheet, error) {
	const sheetQ = `
		INSERT INTO log_sheets (trip_id, log_date, start_odometer, end_odometer, total_miles)
		VALUES (@trip_id, @log_date, @start_odometer, @end_odometer, @total_miles)
		RETURNING id, trip_id, log_date, start_odometer, end_odometer, total_miles, created_at`

	const segmentQ = `
		INSERT INTO duty_segments (log_sheet_id, seq, status, start_minutes, end_minutes,
		                           ends_next_day, location, odometer, remarks)
		VALUES (@log_sheet_id, @seq, @status, @start_minutes, @end_minutes,
		        @ends_next_day, @location, @odometer, @remarks)
		RETURNING id`

	out := make([]domain.LogSheet, 0, len(sheets))
	for _, sheet := range sheets {
		args := pgx.NamedArgs{
			"trip_id":        tripID,
			"log_date":       sheet.Date,
			"start_odometer": sheet.StartOdometer,
			"end_odometer":   sheet.EndOdometer,
			"total_miles":    sheet.TotalMiles,
		}

		created, err := scanLogSheet(r.db.QueryRow(ctx, sheetQ, args))
		if err != nil {
			return nil, fmt.Errorf("repo.LogSheetRepo.CreateBatch: sheet: %w", err)
		}

		for i, seg := range sheet.Segments {
			segArgs := pgx.NamedArgs{
				"log_sheet_id":  created.ID,
				"seq":           i,
				"status":        string(seg.Status),
				"start_minutes": int(seg.Start / time.Minute),
				"end_minutes":   int(seg.End / time.Minute),
				"ends_next_day": seg.EndsNextDay,
				"location":      seg.Location,
				"odometer":      seg.Odometer,
				"remarks":       seg.Remarks,
			}

			var segID pgtype.UUID
			if err := r.db.QueryRow(ctx, segmentQ, segArgs).Scan(&segID); err != nil {
				return nil, fmt.Errorf("repo.LogSheetRepo.CreateBatch: segment %d: %w", i, err)
			}
			seg.ID = uuid.UUID(segID.Bytes)
			created.Segments = append(created.Segments, seg)
		}

		out = append(out, created)
	}
	return out, nil
}

func (r *pgLogSheetRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error) {
	const q = `
		SELECT id, trip_id, log_date, start_odometer, end_odometer, total_miles, created_at
		FROM log_sheets
		WHERE trip_id = @trip_id
		ORDER BY log_date ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LogSheetRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var sheets []domain.LogSheet
	for rows.Next() {
		sheet, err := scanLogSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LogSheetRepo.ListByTripID: scan: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LogSheetRepo.ListByTripID: rows: %w", err)
	}

	for i := range sheets {
		if sheets[i].Segments, err = r.segmentsForSheet(ctx, sheets[i].ID); err != nil {
			return nil, fmt.Errorf("repo.LogSheetRepo.ListByTripID: %w", err)
		}
	}
	return sheets, nil
}

func (r *pgLogSheetRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.LogSheet, error) {
	const q = `
		SELECT id, trip_id, log_date, start_odometer, end_odometer, total_miles, created_at
		FROM log_sheets
		WHERE id = @id`

	sheet, err := scanLogSheet(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.LogSheet{}, fmt.Errorf("repo.LogSheetRepo.GetByID: %w", err)
	}

	if sheet.Segments, err = r.segmentsForSheet(ctx, sheet.ID); err != nil {
		return domain.LogSheet{}, fmt.Errorf("repo.LogSheetRepo.GetByID: %w", err)
	}
	return sheet, nil
}

func (r *pgLogSheetRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) error {
	const q = `DELETE FROM log_sheets WHERE trip_id = @trip_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.LogSheetRepo.DeleteByTripID: %w", err)
	}
	return nil
}

// segmentsForSheet loads one sheet's segments in sequence order.
func (r *pgLogSheetRepo) segmentsForSheet(ctx context.Context, sheetID uuid.UUID) ([]domain.DutySegment, error) {
	const q = `
		SELECT id, status, start_minutes, end_minutes, ends_next_day, location, odometer, remarks
		FROM duty_segments
		WHERE log_sheet_id = @log_sheet_id
		ORDER BY seq ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"log_sheet_id": sheetID})
	if err != nil {
		return nil, fmt.Errorf("segments: %w", err)
	}
	defer rows.Close()

	var segments []domain.DutySegment
	for rows.Next() {
		var (
			seg          domain.DutySegment
			id           pgtype.UUID
			status       string
			startM, endM int
		)
		if err := rows.Scan(&id, &status, &startM, &endM, &seg.EndsNextDay,
			&seg.Location, &seg.Odometer, &seg.Remarks); err != nil {
			return nil, fmt.Errorf("segments: scan: %w", err)
		}

		seg.ID = uuid.UUID(id.Bytes)
		if seg.Status, err = domain.ParseDutyStatus(status); err != nil {
			return nil, fmt.Errorf("segments: %w", err)
		}
		seg.Start = time.Duration(startM) * time.Minute
		seg.End = time.Duration(endM) * time.Minute
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("segments: rows: %w", err)
	}
	return segments, nil
}

// scanLogSheet maps a single database row into a domain.LogSheet (without segments).
func scanLogSheet(s scanner) (domain.LogSheet, error) {
	var (
		sheet  domain.LogSheet
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &date, &sheet.StartOdometer, &sheet.EndOdometer,
		&sheet.TotalMiles, &sheet.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LogSheet{}, domain.ErrNotFound
		}
		return domain.LogSheet{}, err
	}

	sheet.ID = uuid.UUID(id.Bytes)
	sheet.TripID = uuid.UUID(tripID.Bytes)
	sheet.Date = date.Time
	return sheet, nil
}
