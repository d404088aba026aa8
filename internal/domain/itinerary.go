package domain

import "time"

// ItineraryDay is one day of the rendered itinerary projection: a positional
// day number, the calendar date it falls on, and the activities scheduled for
// that date in insertion order.
//
// DayNumber is 1-indexed within the trip's enumerated date sequence. It is
// never persisted; renumbering happens implicitly whenever the trip's range
// changes, because the projection is recomputed from the range on every read.
type ItineraryDay struct {
	DayNumber  int        `json:"day_number"`
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}
