package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/repo"
)

// InterestService implements business logic for Interest operations.
// Its primary responsibility is slug normalization: all interest identity is
// determined by slug, which is always lowercase and hyphenated.
type InterestService struct {
	trips     repo.TripRepo
	interests repo.InterestRepo
}

// NewInterestService constructs an InterestService backed by the provided repos.
func NewInterestService(trips repo.TripRepo, interests repo.InterestRepo) *InterestService {
	return &InterestService{trips: trips, interests: interests}
}

// AddToTrip upserts an interest by name and links it to the given trip.
// Returns domain.ErrValidation if name is empty or normalizes to empty.
func (s *InterestService) AddToTrip(ctx context.Context, ownerID, tripID uuid.UUID, name string) (domain.Interest, error) {
	if _, err := s.trips.GetByID(ctx, ownerID, tripID); err != nil {
		return domain.Interest{}, fmt.Errorf("service.InterestService.AddToTrip: %w", err)
	}

	slug := Slugify(name)
	if slug == "" {
		return domain.Interest{}, fmt.Errorf("%w: interest name is required", domain.ErrValidation)
	}

	interest, err := s.interests.Upsert(ctx, strings.TrimSpace(name), slug)
	if err != nil {
		return domain.Interest{}, fmt.Errorf("service.InterestService.AddToTrip: %w", err)
	}

	if err := s.interests.AddToTrip(ctx, tripID, interest.ID); err != nil {
		return domain.Interest{}, fmt.Errorf("service.InterestService.AddToTrip: %w", err)
	}
	return interest, nil
}

// RemoveFromTrip unlinks an interest from a trip by slug.
// Returns domain.ErrNotFound if the interest is not linked to the trip.
func (s *InterestService) RemoveFromTrip(ctx context.Context, ownerID, tripID uuid.UUID, slug string) error {
	if _, err := s.trips.GetByID(ctx, ownerID, tripID); err != nil {
		return fmt.Errorf("service.InterestService.RemoveFromTrip: %w", err)
	}

	if err := s.interests.RemoveFromTrip(ctx, tripID, slug); err != nil {
		return fmt.Errorf("service.InterestService.RemoveFromTrip: %w", err)
	}
	return nil
}

// ListByTrip returns all interests linked to a trip, ordered by slug.
// Always returns a non-nil slice so callers can safely range over it.
func (s *InterestService) ListByTrip(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.Interest, error) {
	if _, err := s.trips.GetByID(ctx, ownerID, tripID); err != nil {
		return nil, fmt.Errorf("service.InterestService.ListByTrip: %w", err)
	}

	interests, err := s.interests.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.InterestService.ListByTrip: %w", err)
	}
	if interests == nil {
		return []domain.Interest{}, nil
	}
	return interests, nil
}

// Slugify lowercases name and collapses every run of non-alphanumeric
// characters into a single hyphen. "Street Food!" becomes "street-food".
// Returns "" when nothing alphanumeric remains.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}
