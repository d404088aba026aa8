package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys so no other package can
// collide with or forge the authenticated-user value.
type contextKey string

const ownerContextKey contextKey = "owner"

// TokenVerifier validates a bearer token and returns the user ID it was
// issued for. Implemented by auth.Service; tests substitute a stub.
type TokenVerifier interface {
	VerifyToken(token string) (uuid.UUID, error)
}

// NewAuthHandler returns a middleware that requires a valid
// "Authorization: Bearer <token>" header and stores the authenticated user
// ID in the request context. Requests without a valid token get 401 with the
// same JSON error shape the handlers use.
func NewAuthHandler(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			ownerID, err := verifier.VerifyToken(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ownerContextKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerFromContext returns the authenticated user ID stored by NewAuthHandler.
// The second return is false for requests that never passed the middleware.
func OwnerFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ownerContextKey).(uuid.UUID)
	return id, ok
}

// WithOwner returns a context carrying the given owner ID.
// Exists for handler tests, which bypass the middleware.
func WithOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerContextKey, ownerID)
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
