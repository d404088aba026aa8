package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kpatters/wayfarer/backend/internal/dates"
	"github.com/kpatters/wayfarer/backend/internal/repo"
	"github.com/kpatters/wayfarer/backend/internal/suggest"
)

// SuggestService assembles the inputs for the AI suggestion collaborator:
// the trip's destination, its duration in days, and its linked interests.
// The collaborator never mutates persisted state; its output is advisory
// and only becomes activities through the normal creation path.
type SuggestService struct {
	trips     repo.TripRepo
	interests repo.InterestRepo
	generator suggest.Generator
}

// NewSuggestService constructs a SuggestService backed by the provided repos
// and suggestion generator.
func NewSuggestService(trips repo.TripRepo, interests repo.InterestRepo, generator suggest.Generator) *SuggestService {
	return &SuggestService{trips: trips, interests: interests, generator: generator}
}

// Suggest returns a multi-day itinerary suggestion for the trip.
// Returns domain.ErrNotFound if the trip is not visible to the owner and
// suggest.ErrUnavailable when the generator cannot produce a suggestion.
func (s *SuggestService) Suggest(ctx context.Context, ownerID, tripID uuid.UUID) (suggest.Suggestion, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return suggest.Suggestion{}, fmt.Errorf("service.SuggestService.Suggest: %w", err)
	}

	linked, err := s.interests.ListByTrip(ctx, tripID)
	if err != nil {
		return suggest.Suggestion{}, fmt.Errorf("service.SuggestService.Suggest: %w", err)
	}
	names := make([]string, len(linked))
	for i, interest := range linked {
		names[i] = interest.Name
	}

	suggestion, err := s.generator.Suggest(ctx, trip.Destination, dates.Count(trip.StartDate, trip.EndDate), names)
	if err != nil {
		return suggest.Suggestion{}, fmt.Errorf("service.SuggestService.Suggest: %w", err)
	}
	return suggestion, nil
}
