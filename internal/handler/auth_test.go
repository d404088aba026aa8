package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpatters/wayfarer/backend/internal/auth"
	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/repo"
)

func TestRegister(t *testing.T) {
	authSvc := &mockAuthServicer{
		RegisterFunc: func(_ context.Context, email, password string) (domain.User, string, error) {
			assert.Equal(t, "traveler@example.com", email)
			return domain.User{ID: uuid.New(), Email: email, PasswordHash: "secret-hash"}, "token-123", nil
		},
	}
	h := newTestRouter(deps{auth: authSvc}, uuid.Nil)

	rec := doJSON(t, h, http.MethodPost, "/auth/register",
		`{"email":"traveler@example.com","password":"hunter2hunter2"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "token-123", body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "traveler@example.com", user["email"])
	assert.NotContains(t, rec.Body.String(), "secret-hash", "password hash must never leave the API")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	authSvc := &mockAuthServicer{
		RegisterFunc: func(context.Context, string, string) (domain.User, string, error) {
			return domain.User{}, "", repo.ErrDuplicateEmail
		},
	}
	h := newTestRouter(deps{auth: authSvc}, uuid.Nil)

	rec := doJSON(t, h, http.MethodPost, "/auth/register",
		`{"email":"traveler@example.com","password":"hunter2hunter2"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_email", errorCode(t, rec))
}

func TestLogin(t *testing.T) {
	authSvc := &mockAuthServicer{
		LoginFunc: func(_ context.Context, email, password string) (domain.User, string, error) {
			if password != "hunter2hunter2" {
				return domain.User{}, "", auth.ErrInvalidCredentials
			}
			return domain.User{ID: uuid.New(), Email: email}, "token-456", nil
		},
	}
	h := newTestRouter(deps{auth: authSvc}, uuid.Nil)

	t.Run("ok", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/auth/login",
			`{"email":"traveler@example.com","password":"hunter2hunter2"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "token-456", decodeBody(t, rec)["token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/auth/login",
			`{"email":"traveler@example.com","password":"wrong"}`)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid_credentials", errorCode(t, rec))
	})
}
