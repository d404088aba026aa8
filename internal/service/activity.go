package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kpatters/wayfarer/backend/internal/dates"
	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// It holds both repos because every activity mutation first resolves the
// parent trip through the owner-scoped TripRepo, which is what enforces
// ownership and gives access to the trip's date range for validation.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create validates the activity against the parent trip and persists it.
// Returns domain.ErrNotFound if the trip is not visible to the owner,
// domain.ErrValidation if the description is empty or the date falls outside
// the trip's range.
func (s *ActivityService) Create(ctx context.Context, ownerID uuid.UUID, activity domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, activity.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}

	activity.Date = dates.Normalize(activity.Date)
	if err := validateActivity(trip, activity); err != nil {
		return domain.Activity{}, err
	}

	result, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// ListByTrip returns all of a trip's activities in (date, insertion) order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ActivityService) ListByTrip(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.Activity, error) {
	if _, err := s.trips.GetByID(ctx, ownerID, tripID); err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}

	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}

// Update validates and persists changes to an existing activity.
func (s *ActivityService) Update(ctx context.Context, ownerID uuid.UUID, activity domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, activity.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}

	activity.Date = dates.Normalize(activity.Date)
	if err := validateActivity(trip, activity); err != nil {
		return domain.Activity{}, err
	}

	result, err := s.activities.Update(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return result, nil
}

// Toggle flips the completion flag of an activity.
func (s *ActivityService) Toggle(ctx context.Context, ownerID, tripID, activityID uuid.UUID) (domain.Activity, error) {
	if _, err := s.trips.GetByID(ctx, ownerID, tripID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Toggle: %w", err)
	}

	result, err := s.activities.Toggle(ctx, tripID, activityID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Toggle: %w", err)
	}
	return result, nil
}

// Delete removes a single activity.
func (s *ActivityService) Delete(ctx context.Context, ownerID, tripID, activityID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, ownerID, tripID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}

	if err := s.activities.Delete(ctx, tripID, activityID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// validateActivity enforces business rules common to both Create and Update.
//   - Description must be non-empty (whitespace-only is rejected).
//   - Date must lie within the parent trip's inclusive range.
func validateActivity(trip domain.Trip, activity domain.Activity) error {
	if strings.TrimSpace(activity.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if activity.Date.Before(trip.StartDate) || activity.Date.After(trip.EndDate) {
		return fmt.Errorf("%w: date %s is outside the trip range %s to %s",
			domain.ErrValidation,
			activity.Date.Format("2006-01-02"),
			trip.StartDate.Format("2006-01-02"),
			trip.EndDate.Format("2006-01-02"))
	}
	return nil
}
