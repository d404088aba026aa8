// Package service contains the business logic for the Wayfarer API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
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

// TripService implements business logic for Trip operations.
type TripService struct {
	repo       repo.TripRepo
	activities repo.ActivityRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(r repo.TripRepo, activities repo.ActivityRepo) *TripService {
	return &TripService{repo: r, activities: activities}
}

// Create validates and persists a new trip. A trip created without an end
// date becomes a one-day trip (end = start).
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.StartDate = dates.Normalize(trip.StartDate)
	if trip.EndDate.IsZero() {
		trip.EndDate = trip.StartDate
	}
	trip.EndDate = dates.Normalize(trip.EndDate)

	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID, scoped to the owner.
func (s *TripService) GetByID(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of the owner's trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, ownerID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and updates an existing trip. A date range change is
// rejected when it would strand an existing activity outside the new range;
// day removal is the only operation that deletes or moves activities.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// trip does not exist under the given owner.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.StartDate = dates.Normalize(trip.StartDate)
	trip.EndDate = dates.Normalize(trip.EndDate)

	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	// Ownership check before touching activity rows, so a foreign trip ID
	// yields not-found rather than a validation error describing its contents.
	if _, err := s.repo.GetByID(ctx, trip.OwnerID, trip.ID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	existing, err := s.activities.ListByTripID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: list activities: %w", err)
	}
	for _, a := range existing {
		if a.Date.Before(trip.StartDate) || a.Date.After(trip.EndDate) {
			return domain.Trip{}, fmt.Errorf("%w: activity on %s falls outside the new date range",
				domain.ErrValidation, a.Date.Format("2006-01-02"))
		}
	}

	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID; its activities and expenses cascade away.
func (s *TripService) Delete(ctx context.Context, ownerID, tripID uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - StartDate is required.
//   - EndDate must not be before StartDate (equal is fine; one-day trip).
//   - Budget must not be negative.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if trip.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	return nil
}
