package domain

import (
	"time"

	"github.com/google/uuid"
)

// Interest is a user-defined travel preference label (e.g. "street food",
// "hiking") that can be attached to trips. Interests are global; not owned
// by any trip or user. Identity is determined by Slug, which is always
// lowercase and hyphenated. Name preserves the original casing supplied by
// the first user to create the interest.
//
// A trip's interests are fed to the AI suggestion collaborator as the
// "interests" input alongside destination and duration.
type Interest struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
