package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// tripRequest is the JSON body for POST /trips.
type tripRequest struct {
	CurrentLocation   string  `json:"current_location"`
	PickupLocation    string  `json:"pickup_location"`
	DropoffLocation   string  `json:"dropoff_location"`
	CurrentCycleHours float64 `json:"current_cycle_hours"`
}

// tripListResponse is the paginated envelope for GET /trips.
type tripListResponse struct {
	Trips []domain.Trip `json:"trips"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	trip, err := s.trips.Create(r.Context(), domain.Trip{
		CurrentLocation:   req.CurrentLocation,
		PickupLocation:    req.PickupLocation,
		DropoffLocation:   req.DropoffLocation,
		CurrentCycleHours: req.CurrentCycleHours,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, trip)
}

// ListTrips handles GET /trips with optional page and limit query params.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	p := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.List(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, tripListResponse{
		Trips: trips,
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeStrict decodes a single JSON object from the request body, rejecting
// unknown fields and trailing content. On failure it writes a 400 and
// returns false.
func decodeStrict(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "bad_request", "body must contain only one JSON object")
		return false
	}
	return true
}

// pathID parses the {id} URL parameter as a UUID, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid id: must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed so pagination falls back to defaults.
func queryInt(r *http.Request, key string) *int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
