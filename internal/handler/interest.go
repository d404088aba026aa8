package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// addInterestRequest is the body for POST /trips/{tripID}/interests.
type addInterestRequest struct {
	Name string `json:"name"`
}

// AddInterest handles POST /trips/{tripID}/interests.
// The interest is upserted globally by its normalized slug and linked to the
// trip; re-adding an already-linked interest is a no-op success.
func (s *Server) AddInterest(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req addInterestRequest
	if !decode(w, r, &req) {
		return
	}

	interest, err := s.interests.AddToTrip(r.Context(), ownerID, tripID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, interest)
}

// ListInterests handles GET /trips/{tripID}/interests.
func (s *Server) ListInterests(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	interests, err := s.interests.ListByTrip(r.Context(), ownerID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": interests})
}

// RemoveInterest handles DELETE /trips/{tripID}/interests/{slug}.
func (s *Server) RemoveInterest(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	if err := s.interests.RemoveFromTrip(r.Context(), ownerID, tripID, chi.URLParam(r, "slug")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSuggestions handles GET /trips/{tripID}/suggestions.
// Suggestions are advisory: the response is never persisted, and becomes
// activities only if the client re-submits it through the activity endpoints.
func (s *Server) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	suggestion, err := s.suggestions.Suggest(r.Context(), ownerID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestion)
}
