// Package auth implements account registration, login, and JWT handling.
// Tokens are HS256-signed with the user ID as the subject claim; passwords
// are stored as bcrypt hashes and never leave this package in plain form.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/repo"
)

// ErrInvalidToken is returned by VerifyToken for missing, malformed, expired,
// or wrongly-signed tokens. Handlers should map this to HTTP 401.
var ErrInvalidToken = errors.New("invalid token")

// ErrInvalidCredentials is returned by Login when the email is unknown or the
// password does not match. The two cases are deliberately indistinguishable
// so login probing cannot confirm which emails are registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service implements registration, login, and token verification.
type Service struct {
	users    repo.UserRepo
	secret   []byte
	tokenTTL time.Duration
}

// NewService constructs an auth Service. secret signs tokens; tokenTTL is how
// long issued tokens stay valid.
func NewService(users repo.UserRepo, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{users: users, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a new account and returns the user plus a fresh token.
// Returns domain.ErrValidation for a malformed email or short password, and
// repo.ErrDuplicateEmail when the email is already taken.
func (s *Service) Register(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateCredentials(email, password); err != nil {
		return domain.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("auth.Service.Register: hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("auth.Service.Register: %w", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("auth.Service.Register: %w", err)
	}
	return user, token, nil
}

// Login verifies the credentials and returns the user plus a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("auth.Service.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("auth.Service.Login: %w", err)
	}
	return user, token, nil
}

// VerifyToken validates a bearer token and returns the user ID it was issued
// for. Returns ErrInvalidToken for anything that does not verify.
func (s *Service) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// issueToken signs a new token with the user ID as subject.
func (s *Service) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// validateCredentials enforces registration input rules.
func validateCredentials(email, password string) error {
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	return nil
}
