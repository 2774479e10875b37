package handler

import "net/http"

// PlanTrip handles POST /trips/{id}/plan.
// It routes the trip, plans stops, simulates the duty schedule, and returns
// the full plan. Re-planning replaces any previous plan for the trip.
func (s *Server) PlanTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	plan, err := s.plans.Plan(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, plan)
}
