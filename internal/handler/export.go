package handler

import (
	"net/http"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// exportResponse is the envelope for GET /trips/{id}/export.
type exportResponse struct {
	Rows []domain.ExportRow `json:"rows"`
}

// ExportTrip handles GET /trips/{id}/export, returning the trip's full duty
// log as flat denormalized rows.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rows, err := s.export.Export(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, exportResponse{Rows: rows})
}
