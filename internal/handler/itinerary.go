package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/kpatters/wayfarer/backend/internal/domain"
)

// itineraryDayResponse is the wire shape of one projected day.
type itineraryDayResponse struct {
	DayNumber  int                `json:"day_number"`
	Date       openapi_types.Date `json:"date"`
	Activities []activityResponse `json:"activities"`
}

// itineraryResponse is the body for GET /trips/{tripID}/itinerary.
type itineraryResponse struct {
	Trip tripResponse           `json:"trip"`
	Days []itineraryDayResponse `json:"days"`
}

// GetItinerary handles GET /trips/{tripID}/itinerary.
// The day-by-day view is recomputed from the stored date range on every
// request; no day numbers are persisted anywhere.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, days, err := s.itinerary.Itinerary(r.Context(), ownerID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itineraryToResponse(trip, days))
}

// ExtendTrip handles POST /trips/{tripID}/days.
// Appends exactly one day to the end of the trip and returns the updated trip.
func (s *Server) ExtendTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.itinerary.ExtendTrip(r.Context(), ownerID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// RemoveDay handles DELETE /trips/{tripID}/days/{date}.
// The date path segment is a "2006-01-02" calendar date.
func (s *Server) RemoveDay(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	raw := chi.URLParam(r, "date")
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		badRequest(w, "invalid date: "+raw)
		return
	}

	trip, err := s.itinerary.RemoveDay(r.Context(), ownerID, tripID, day)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// itineraryToResponse converts the projection into its wire shape.
func itineraryToResponse(trip domain.Trip, days []domain.ItineraryDay) itineraryResponse {
	out := itineraryResponse{
		Trip: tripToResponse(trip),
		Days: make([]itineraryDayResponse, len(days)),
	}
	for i, d := range days {
		acts := make([]activityResponse, len(d.Activities))
		for j, a := range d.Activities {
			acts[j] = activityToResponse(a)
		}
		out.Days[i] = itineraryDayResponse{
			DayNumber:  d.DayNumber,
			Date:       openapi_types.Date{Time: d.Date},
			Activities: acts,
		}
	}
	return out
}
