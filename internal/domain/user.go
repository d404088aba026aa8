package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. PasswordHash is a bcrypt hash and is
// never serialized to JSON.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
