package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single dated itinerary item nested under a trip.
// Date is a calendar date at midnight UTC and always lies within the parent
// trip's [StartDate, EndDate] range. Several activities may share a date;
// their order within the day is insertion order (created_at, then id).
//
// The date of an activity may be rewritten by the day-shift engine when an
// interior day is removed from the trip.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
