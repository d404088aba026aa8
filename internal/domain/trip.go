// Package domain contains the core data types for the Wayfarer trip planner.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level planning unit: a destination, an inclusive calendar
// date range, and a budget. Activities and expenses belong to a trip; a trip
// is visible and mutable only by its owner.
//
// StartDate and EndDate are calendar dates at midnight UTC. The range is
// inclusive on both ends, so a one-day trip has StartDate == EndDate.
// The invariant StartDate <= EndDate holds for every persisted trip.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Budget      float64   `json:"budget"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
