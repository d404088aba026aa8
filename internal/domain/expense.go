package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a dated spend record nested under a trip.
// Amount is in the given ISO 4217 currency. Expenses are not touched by the
// day-shift engine: removing a day from the itinerary does not re-date or
// delete the money spent on it.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseSummary aggregates a trip's expenses against its budget.
// ByCategory maps category name to its total; uncategorized expenses are
// grouped under the empty string key.
type ExpenseSummary struct {
	TripID     uuid.UUID          `json:"trip_id"`
	Budget     float64            `json:"budget"`
	Total      float64            `json:"total"`
	Remaining  float64            `json:"remaining"`
	ByCategory map[string]float64 `json:"by_category"`
}
