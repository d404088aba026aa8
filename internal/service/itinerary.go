package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kpatters/wayfarer/backend/internal/dates"
	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/repo"
)

// ItineraryService implements the day-shift engine: the two structural
// mutations of a trip's date range (extend by one day, remove a day) and the
// read-side projection that renders the range as numbered days.
//
// Day removal rewrites activity dates, so it runs through repo.Atomic: all of
// its statements share one transaction and either all land or none do.
type ItineraryService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
	atomic     repo.Atomic
}

// NewItineraryService constructs an ItineraryService backed by the provided
// repos and transaction runner.
func NewItineraryService(trips repo.TripRepo, activities repo.ActivityRepo, atomic repo.Atomic) *ItineraryService {
	return &ItineraryService{trips: trips, activities: activities, atomic: atomic}
}

// ExtendTrip appends one day to the end of the trip's range and returns the
// updated trip. No activities are affected; the new last day starts empty.
// Persistence failures propagate to the caller; there is no retry.
func (s *ItineraryService) ExtendTrip(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.ExtendTrip: %w", err)
	}

	updated, err := s.trips.UpdateDates(ctx, ownerID, tripID, trip.StartDate, dates.AddDays(trip.EndDate, 1))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.ExtendTrip: %w", err)
	}
	return updated, nil
}

// RemoveDay removes the calendar date day from the trip's range and returns
// the updated trip. The day's activities are deleted; what else happens
// depends on where the day sits:
//
//   - First day: the range start advances by one. Later activities keep
//     their dates and are only renumbered positionally on the next read.
//   - Last day: the range end retreats by one. No other activity changes.
//   - Interior day: every activity dated after the removed day shifts back
//     one day to close the gap, then the range end retreats by one.
//     Activities before the removed day are untouched.
//
// Removing the only day of a trip, or a date outside the range, is rejected
// with domain.ErrValidation before anything executes. Persistence failures
// surface as a domain.StepError naming the failing sub-step; the enclosing
// transaction is rolled back, so the stored state is never partially shifted.
func (s *ItineraryService) RemoveDay(ctx context.Context, ownerID, tripID uuid.UUID, day time.Time) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.RemoveDay: %w", err)
	}

	day = dates.Normalize(day)
	if day.Before(trip.StartDate) || day.After(trip.EndDate) {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.RemoveDay: %w: date %s is outside the trip range",
			domain.ErrValidation, day.Format("2006-01-02"))
	}
	if trip.StartDate.Equal(trip.EndDate) {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.RemoveDay: %w: cannot remove the only day of a trip",
			domain.ErrValidation)
	}

	// The three cases are mutually exclusive and exhaustive given the range
	// check above: the day is the first, the last, or strictly between.
	newStart, newEnd := trip.StartDate, trip.EndDate
	interior := false
	switch {
	case day.Equal(trip.StartDate):
		newStart = dates.AddDays(trip.StartDate, 1)
	case day.Equal(trip.EndDate):
		newEnd = dates.AddDays(trip.EndDate, -1)
	default:
		newEnd = dates.AddDays(trip.EndDate, -1)
		interior = true
	}

	var updated domain.Trip
	err = s.atomic.WithinTx(ctx, func(trips repo.TripRepo, activities repo.ActivityRepo) error {
		if _, err := activities.DeleteByDate(ctx, tripID, day); err != nil {
			return &domain.StepError{Step: domain.StepDeleteActivities, Err: err}
		}

		if interior {
			// Close the gap: everything after the removed day moves back one
			// day, keeping each activity at the same offset from the start.
			if _, err := activities.ShiftAfter(ctx, tripID, day, -1); err != nil {
				return &domain.StepError{Step: domain.StepShiftActivities, Err: err}
			}
		}

		t, err := trips.UpdateDates(ctx, ownerID, tripID, newStart, newEnd)
		if err != nil {
			return &domain.StepError{Step: domain.StepUpdateTripRange, Err: err}
		}
		updated = t
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.RemoveDay: %w", err)
	}

	return updated, nil
}

// Itinerary reads the trip and its activities and returns the rendered
// projection. The projection is recomputed from the stored range on every
// call; day numbers are never persisted, so they can never drift from the
// actual dates.
func (s *ItineraryService) Itinerary(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, []domain.ItineraryDay, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ItineraryService.Itinerary: %w", err)
	}

	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ItineraryService.Itinerary: %w", err)
	}

	return trip, BuildItinerary(trip, activities), nil
}

// BuildItinerary projects (trip, activities) into the ordered day-by-day
// view: one entry per calendar date in the trip's range, numbered from 1,
// with that date's activities in their stored order.
//
// Pure and deterministic; the same inputs always yield the same projection.
// Activities outside the trip's range (possible transiently if a caller
// passes stale data) are dropped rather than invented a day for.
func BuildItinerary(trip domain.Trip, activities []domain.Activity) []domain.ItineraryDay {
	days := dates.Enumerate(trip.StartDate, trip.EndDate)

	byDate := make(map[time.Time][]domain.Activity, len(days))
	for _, a := range activities {
		d := dates.Normalize(a.Date)
		byDate[d] = append(byDate[d], a)
	}

	itinerary := make([]domain.ItineraryDay, len(days))
	for i, d := range days {
		acts := byDate[d]
		if acts == nil {
			acts = []domain.Activity{}
		}
		itinerary[i] = domain.ItineraryDay{
			DayNumber:  i + 1,
			Date:       d,
			Activities: acts,
		}
	}
	return itinerary
}
