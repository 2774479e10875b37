package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// errorResponse is the JSON error envelope shared by every endpoint.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// respondError translates a service error into an HTTP response using the
// sentinel hierarchy. Unrecognized errors become an opaque 500 so internal
// details never leak to clients.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_input", unwrapMessage(err))
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, r, http.StatusTooManyRequests, "rate_limited", "routing request budget exhausted, retry later")
	case errors.Is(err, domain.ErrUpstream):
		writeError(w, r, http.StatusBadGateway, "routing_unavailable", "routing provider unavailable")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage strips the layer prefixes from a wrapped sentinel error,
// keeping only the part after the sentinel's own message.
// e.g. "service.TripService.Create: validation error: pickup_location is
// required" becomes "pickup_location is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrInvalidInput.Error() + ": ",
	} {
		if i := strings.LastIndex(msg, sentinel); i >= 0 {
			return msg[i+len(sentinel):]
		}
	}
	return msg
}
