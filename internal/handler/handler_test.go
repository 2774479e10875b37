package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haultrackr/eld-backend/internal/domain"
	"github.com/haultrackr/eld-backend/internal/handler"
)

// ---- mock services ---------------------------------------------------------

type mockTripService struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripService)(nil)

type mockPlanService struct {
	plan func(ctx context.Context, tripID uuid.UUID) (domain.TripPlan, error)
}

func (m *mockPlanService) Plan(ctx context.Context, tripID uuid.UUID) (domain.TripPlan, error) {
	return m.plan(ctx, tripID)
}

var _ handler.PlanServicer = (*mockPlanService)(nil)

type mockLogService struct {
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error)
	renderGrid   func(ctx context.Context, id uuid.UUID) ([]byte, error)
}

func (m *mockLogService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockLogService) RenderGrid(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return m.renderGrid(ctx, id)
}

var _ handler.LogServicer = (*mockLogService)(nil)

type mockExportService struct {
	export func(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, tripID)
}

var _ handler.ExportServicer = (*mockExportService)(nil)

// serve runs one request through the full route table and returns the recorder.
func serve(s *handler.Server, method, target string, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func newServer(trips handler.TripServicer, plans handler.PlanServicer, logs handler.LogServicer, export handler.ExportServicer) *handler.Server {
	return handler.NewServer(trips, plans, logs, export)
}

// ---- health / spec ---------------------------------------------------------

func TestHealth(t *testing.T) {
	rec := serve(newServer(nil, nil, nil, nil), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOpenAPISpec(t *testing.T) {
	rec := serve(newServer(nil, nil, nil, nil), http.MethodGet, "/openapi.yaml", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "HOS Trip Planner API")
}

// ---- trips -----------------------------------------------------------------

func TestCreateTrip_OK(t *testing.T) {
	stored := domain.Trip{
		ID:                uuid.New(),
		CurrentLocation:   "Denver, CO",
		PickupLocation:    "Salt Lake City, UT",
		DropoffLocation:   "Sacramento, CA",
		CurrentCycleHours: 20,
	}
	srv := newServer(&mockTripService{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, "Denver, CO", trip.CurrentLocation)
			return stored, nil
		},
	}, nil, nil, nil)

	body := `{"current_location":"Denver, CO","pickup_location":"Salt Lake City, UT",
		"dropoff_location":"Sacramento, CA","current_cycle_hours":20}`
	rec := serve(srv, http.MethodPost, "/trips", body)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Trip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, stored.ID, got.ID)
}

func TestCreateTrip_MalformedBody(t *testing.T) {
	srv := newServer(&mockTripService{}, nil, nil, nil)

	rec := serve(srv, http.MethodPost, "/trips", `{"current_location":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTrip_UnknownField(t *testing.T) {
	srv := newServer(&mockTripService{}, nil, nil, nil)

	rec := serve(srv, http.MethodPost, "/trips", `{"nope":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTrip_ValidationError(t *testing.T) {
	srv := newServer(&mockTripService{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: pickup_location is required", domain.ErrValidation)
		},
	}, nil, nil, nil)

	rec := serve(srv, http.MethodPost, "/trips", `{"current_location":"a"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "pickup_location is required")
}

func TestListTrips_Paginated(t *testing.T) {
	srv := newServer(&mockTripService{
		list: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 5, p.Limit)
			return []domain.Trip{}, 12, nil
		},
	}, nil, nil, nil)

	rec := serve(srv, http.MethodGet, "/trips?page=2&limit=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"trips":[],"page":2,"limit":5,"total":12}`, rec.Body.String())
}

func TestGetTrip_InvalidID(t *testing.T) {
	srv := newServer(&mockTripService{}, nil, nil, nil)

	rec := serve(srv, http.MethodGet, "/trips/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTrip_NotFound(t *testing.T) {
	srv := newServer(&mockTripService{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}, nil, nil, nil)

	rec := serve(srv, http.MethodGet, "/trips/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTrip_NoContent(t *testing.T) {
	srv := newServer(&mockTripService{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}, nil, nil, nil)

	rec := serve(srv, http.MethodDelete, "/trips/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

// ---- plan ------------------------------------------------------------------

func TestPlanTrip_OK(t *testing.T) {
	tripID := uuid.New()
	srv := newServer(nil, &mockPlanService{
		plan: func(_ context.Context, id uuid.UUID) (domain.TripPlan, error) {
			assert.Equal(t, tripID, id)
			return domain.TripPlan{
				Trip:  domain.Trip{ID: id},
				Route: domain.RouteSummary{DistanceMiles: 1160, DurationHours: 18},
				Stops: []domain.Stop{},
				LogSheets: []domain.LogSheet{
					{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
				},
			}, nil
		},
	}, nil, nil)

	rec := serve(srv, http.MethodPost, "/trips/"+tripID.String()+"/plan", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"distance_miles":1160`)
}

func TestPlanTrip_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"invalid input", domain.ErrInvalidInput, http.StatusUnprocessableEntity},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
		{"upstream failure", domain.ErrUpstream, http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(nil, &mockPlanService{
				plan: func(_ context.Context, _ uuid.UUID) (domain.TripPlan, error) {
					return domain.TripPlan{}, tc.err
				},
			}, nil, nil)

			rec := serve(srv, http.MethodPost, "/trips/"+uuid.NewString()+"/plan", "")

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestPlanTrip_InternalErrorIsOpaque(t *testing.T) {
	srv := newServer(nil, &mockPlanService{
		plan: func(_ context.Context, _ uuid.UUID) (domain.TripPlan, error) {
			return domain.TripPlan{}, errors.New("pq: secret table missing")
		},
	}, nil, nil)

	rec := serve(srv, http.MethodPost, "/trips/"+uuid.NewString()+"/plan", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret", "internal details must not leak")
}

// ---- logs ------------------------------------------------------------------

func TestListLogs_OK(t *testing.T) {
	srv := newServer(nil, nil, &mockLogService{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.LogSheet, error) {
			return []domain.LogSheet{{
				Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Segments: []domain.DutySegment{
					{Status: domain.StatusDriving, Start: 0, End: 4 * time.Hour},
				},
			}}, nil
		},
	}, nil)

	rec := serve(srv, http.MethodGet, "/trips/"+uuid.NewString()+"/logs", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"start":"00:00"`)
	assert.Contains(t, rec.Body.String(), `"end":"04:00"`)
}

func TestLogGrid_PNG(t *testing.T) {
	fakePNG := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0}
	srv := newServer(nil, nil, &mockLogService{
		renderGrid: func(_ context.Context, _ uuid.UUID) ([]byte, error) {
			return fakePNG, nil
		},
	}, nil)

	rec := serve(srv, http.MethodGet, "/logs/"+uuid.NewString()+"/grid", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.Equal(fakePNG, rec.Body.Bytes()))
}

func TestLogGrid_NotFound(t *testing.T) {
	srv := newServer(nil, nil, &mockLogService{
		renderGrid: func(_ context.Context, _ uuid.UUID) ([]byte, error) {
			return nil, domain.ErrNotFound
		},
	}, nil)

	rec := serve(srv, http.MethodGet, "/logs/"+uuid.NewString()+"/grid", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- export ----------------------------------------------------------------

func TestExportTrip_OK(t *testing.T) {
	srv := newServer(nil, nil, nil, &mockExportService{
		export: func(_ context.Context, _ uuid.UUID) ([]domain.ExportRow, error) {
			return []domain.ExportRow{{Date: "2025-03-01", Status: "D", Hours: 11}}, nil
		},
	})

	rec := serve(srv, http.MethodGet, "/trips/"+uuid.NewString()+"/export", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date":"2025-03-01"`)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}
