package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kpatters/wayfarer/backend/internal/auth"
	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/middleware"
	"github.com/kpatters/wayfarer/backend/internal/repo"
	"github.com/kpatters/wayfarer/backend/internal/suggest"
)

// errorResponse is the JSON error body for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

// writeError maps a service-layer error onto the HTTP status and JSON body
// the API promises. Unknown errors become 500 and are logged with whatever
// step information a StepError carries; that log line is the operator's
// pointer when a multi-step itinerary mutation fails.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var stepErr *domain.StepError

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: "not found"},
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error: errorDetail{Code: "invalid_credentials", Message: "invalid email or password"},
		})
	case errors.Is(err, repo.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: errorDetail{Code: "duplicate_email", Message: "email already registered"},
		})
	case errors.Is(err, suggest.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: errorDetail{Code: "suggestions_unavailable", Message: "itinerary suggestions are temporarily unavailable"},
		})
	case errors.As(err, &stepErr):
		slog.ErrorContext(r.Context(), "itinerary mutation failed",
			"step", string(stepErr.Step), "error", stepErr.Err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal_error", Message: "operation failed at step " + string(stepErr.Step)},
		})
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// badRequest returns a 400 for requests rejected before reaching the service
// layer (missing body, malformed UUID or date in the path).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorDetail{Code: "bad_request", Message: message},
	})
}

// decode reads the request body into v. An over-limit body (see the max body
// size middleware) gets 413, any other decode failure 400. The bool result
// reports whether decoding succeeded and the handler should continue.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Error: errorDetail{Code: "body_too_large", Message: "request body too large"},
		})
		return false
	}

	badRequest(w, "invalid JSON body: "+err.Error())
	return false
}

// owner returns the authenticated user ID from the request context.
// A missing owner means the route was mounted without the auth middleware,
// a wiring bug; it is answered with 401 rather than a panic.
func owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error: errorDetail{Code: "unauthorized", Message: "authentication required"},
		})
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(w, "invalid "+name+": "+raw)
		return uuid.Nil, false
	}
	return id, true
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: destination is
// required" → "destination is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
