package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kpatters/wayfarer/backend/internal/auth"
	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/repo"
)

type mockUserRepo struct {
	CreateFunc     func(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (domain.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.CreateFunc(ctx, user)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

const testSecret = "test-secret-0123456789abcdef"

func newService(users repo.UserRepo) *auth.Service {
	return auth.NewService(users, []byte(testSecret), time.Hour)
}

func TestService_Register(t *testing.T) {
	var created domain.User
	users := &mockUserRepo{
		CreateFunc: func(_ context.Context, user domain.User) (domain.User, error) {
			user.ID = uuid.New()
			created = user
			return user, nil
		},
	}
	svc := newService(users)

	user, token, err := svc.Register(context.Background(), "  Traveler@Example.COM ", "hunter2hunter2")

	require.NoError(t, err)
	assert.Equal(t, "traveler@example.com", user.Email, "email is lowercased and trimmed")
	assert.NotEmpty(t, token)

	// Stored hash verifies against the original password and nothing else.
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2hunter2")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("wrong")))
}

func TestService_Register_Validation(t *testing.T) {
	svc := newService(&mockUserRepo{})

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"no at sign", "traveler.example.com", "hunter2hunter2"},
		{"no dot", "traveler@example", "hunter2hunter2"},
		{"short password", "traveler@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.email, tc.password)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		CreateFunc: func(context.Context, domain.User) (domain.User, error) {
			return domain.User{}, repo.ErrDuplicateEmail
		},
	}
	svc := newService(users)

	_, _, err := svc.Register(context.Background(), "traveler@example.com", "hunter2hunter2")

	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := domain.User{ID: uuid.New(), Email: "traveler@example.com", PasswordHash: string(hash)}
	users := &mockUserRepo{
		GetByEmailFunc: func(_ context.Context, email string) (domain.User, error) {
			if email != stored.Email {
				return domain.User{}, domain.ErrNotFound
			}
			return stored, nil
		},
	}
	svc := newService(users)

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Login(context.Background(), "Traveler@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)

		userID, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, userID, "issued token round-trips to the user ID")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), stored.Email, "not-the-password")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials,
			"unknown email and wrong password must be indistinguishable")
	})
}

func TestService_VerifyToken_Rejections(t *testing.T) {
	users := &mockUserRepo{
		CreateFunc: func(_ context.Context, user domain.User) (domain.User, error) {
			user.ID = uuid.New()
			return user, nil
		},
	}
	svc := newService(users)

	_, token, err := svc.Register(context.Background(), "traveler@example.com", "hunter2hunter2")
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewService(users, []byte("a-completely-different-secret"), time.Hour)
		_, err := other.VerifyToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		shortLived := auth.NewService(users, []byte(testSecret), -time.Minute)
		_, expired, err := shortLived.Register(context.Background(), "other@example.com", "hunter2hunter2")
		require.NoError(t, err)

		_, err = shortLived.VerifyToken(expired)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
