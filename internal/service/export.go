package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/repo"
)

// ExportService assembles a full flat export of an owner's trips and
// activities, suitable for writing straight to CSV. Each trip carries its
// total spend so the export is self-contained for budget review.
type ExportService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
	expenses   repo.ExpenseRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, activities repo.ActivityRepo, expenses repo.ExpenseRepo) *ExportService {
	return &ExportService{trips: trips, activities: activities, expenses: expenses}
}

// exportPageLimit is the page size used to walk all of an owner's trips.
const exportPageLimit = 100

// Export returns one ExportRow per activity across all of the owner's trips,
// ordered by trip (start date descending) then activity date. Trips with no
// activities contribute one row with empty activity fields so no trip is
// silently missing from the export.
func (s *ExportService) Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}

	for page := 1; ; page++ {
		p := domain.PaginationParams{Page: page, Limit: exportPageLimit}
		trips, total, err := s.trips.ListPaged(ctx, ownerID, p)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: list trips: %w", err)
		}

		for _, trip := range trips {
			activities, err := s.activities.ListByTripID(ctx, trip.ID)
			if err != nil {
				return nil, fmt.Errorf("service.ExportService.Export: list activities: %w", err)
			}

			byCategory, err := s.expenses.SumByCategory(ctx, trip.ID)
			if err != nil {
				return nil, fmt.Errorf("service.ExportService.Export: sum expenses: %w", err)
			}
			var spent float64
			for _, amount := range byCategory {
				spent += amount
			}

			base := domain.ExportRow{
				TripID:           trip.ID.String(),
				TripDestination:  trip.Destination,
				TripStartDate:    trip.StartDate.Format("2006-01-02"),
				TripEndDate:      trip.EndDate.Format("2006-01-02"),
				TripBudget:       trip.Budget,
				TripExpenseTotal: spent,
			}

			if len(activities) == 0 {
				rows = append(rows, base)
				continue
			}
			for _, a := range activities {
				row := base
				row.ActivityDate = a.Date.Format("2006-01-02")
				row.ActivityDescription = a.Description
				row.ActivityDone = a.Done
				rows = append(rows, row)
			}
		}

		if int64(page*exportPageLimit) >= total {
			break
		}
	}

	return rows, nil
}
