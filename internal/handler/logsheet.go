package handler

import (
	"net/http"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// logListResponse is the envelope for GET /trips/{id}/logs.
type logListResponse struct {
	LogSheets []domain.LogSheet `json:"log_sheets"`
}

// ListLogs handles GET /trips/{id}/logs.
func (s *Server) ListLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	sheets, err := s.logs.ListByTripID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, logListResponse{LogSheets: sheets})
}

// LogGrid handles GET /logs/{id}/grid, serving the sheet's 24-hour duty grid
// as a PNG image.
func (s *Server) LogGrid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	png, err := s.logs.RenderGrid(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		// Client went away mid-write; nothing useful to do.
		return
	}
}
