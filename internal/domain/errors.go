package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist or is not visible to the requesting owner.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. end date before start date, removing the only day
// of a trip). Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// RemoveDayStep identifies which sub-step of the remove-day operation a
// persistence failure occurred in. Callers can use it to decide between
// retrying the whole operation and reconciling via a fresh read.
type RemoveDayStep string

const (
	StepDeleteActivities RemoveDayStep = "delete-activities"
	StepShiftActivities  RemoveDayStep = "shift-activities"
	StepUpdateTripRange  RemoveDayStep = "update-trip-range"
)

// StepError wraps a persistence failure from a multi-step itinerary mutation
// with the sub-step that failed. The whole mutation runs inside a single
// database transaction, so a StepError means the transaction was rolled back
// and no partial state was persisted.
type StepError struct {
	Step RemoveDayStep
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
