package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/kpatters/wayfarer/backend/internal/domain"
)

// createActivityRequest is the body for POST /trips/{tripID}/activities.
type createActivityRequest struct {
	Date        openapi_types.Date `json:"date"`
	Description string             `json:"description"`
}

// updateActivityRequest is the body for PUT /trips/{tripID}/activities/{activityID}.
type updateActivityRequest struct {
	Date        openapi_types.Date `json:"date"`
	Description string             `json:"description"`
	Done        bool               `json:"done"`
}

// activityResponse is the wire shape of an activity.
type activityResponse struct {
	ID          uuid.UUID          `json:"id"`
	TripID      uuid.UUID          `json:"trip_id"`
	Date        openapi_types.Date `json:"date"`
	Description string             `json:"description"`
	Done        bool               `json:"done"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CreateActivity handles POST /trips/{tripID}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req createActivityRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.activities.Create(r.Context(), ownerID, domain.Activity{
		TripID:      tripID,
		Date:        req.Date.Time,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, activityToResponse(created))
}

// ListActivities handles GET /trips/{tripID}/activities.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	activities, err := s.activities.ListByTrip(r.Context(), ownerID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]activityResponse, len(activities))
	for i, a := range activities {
		data[i] = activityToResponse(a)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// UpdateActivity handles PUT /trips/{tripID}/activities/{activityID}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	var req updateActivityRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.activities.Update(r.Context(), ownerID, domain.Activity{
		ID:          activityID,
		TripID:      tripID,
		Date:        req.Date.Time,
		Description: req.Description,
		Done:        req.Done,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, activityToResponse(updated))
}

// ToggleActivity handles PATCH /trips/{tripID}/activities/{activityID}/toggle.
func (s *Server) ToggleActivity(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	toggled, err := s.activities.Toggle(r.Context(), ownerID, tripID, activityID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, activityToResponse(toggled))
}

// DeleteActivity handles DELETE /trips/{tripID}/activities/{activityID}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	if err := s.activities.Delete(r.Context(), ownerID, tripID, activityID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// activityToResponse converts a domain.Activity into its wire shape.
func activityToResponse(a domain.Activity) activityResponse {
	return activityResponse{
		ID:          a.ID,
		TripID:      a.TripID,
		Date:        openapi_types.Date{Time: a.Date},
		Description: a.Description,
		Done:        a.Done,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
