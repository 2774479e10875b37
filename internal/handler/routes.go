package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haultrackr/eld-backend/spec"
)

// Routes registers every API endpoint on a fresh chi router.
// Cross-cutting middleware (request IDs, logging, CORS, compression) is
// applied by the caller so tests can exercise routes without it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/plan", s.PlanTrip)
			r.Get("/logs", s.ListLogs)
			r.Get("/export", s.ExportTrip)
		})
	})

	r.Get("/logs/{id}/grid", s.LogGrid)

	return r
}

// serveOpenAPI serves the embedded API specification so the spec and the
// running code are always in sync.
func serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
