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

// ExpenseService implements business logic for Expense operations.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses}
}

// Create validates the expense against the parent trip and persists it.
// The date must fall within the trip's range at creation time; expenses are
// not re-dated afterwards, even if the itinerary later loses that day.
// All of a trip's expenses share one currency: the first expense fixes it,
// and later ones in a different currency are rejected so that totals and
// the budget comparison stay meaningful.
func (s *ExpenseService) Create(ctx context.Context, ownerID uuid.UUID, expense domain.Expense) (domain.Expense, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, expense.TripID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}

	expense.Date = dates.Normalize(expense.Date)
	expense.Currency = strings.ToUpper(strings.TrimSpace(expense.Currency))
	if err := validateExpense(trip, expense); err != nil {
		return domain.Expense{}, err
	}

	existing, err := s.expenses.ListByTripID(ctx, expense.TripID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: list expenses: %w", err)
	}
	if len(existing) > 0 && existing[0].Currency != expense.Currency {
		return domain.Expense{}, fmt.Errorf("%w: trip expenses are in %s, got %s",
			domain.ErrValidation, existing[0].Currency, expense.Currency)
	}

	result, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return result, nil
}

// ListByTrip returns all of a trip's expenses in (date, insertion) order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpenseService) ListByTrip(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.Expense, error) {
	if _, err := s.trips.GetByID(ctx, ownerID, tripID); err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}

	expenses, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// Delete removes a single expense.
func (s *ExpenseService) Delete(ctx context.Context, ownerID, tripID, expenseID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, ownerID, tripID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}

	if err := s.expenses.Delete(ctx, tripID, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// Summary aggregates the trip's expenses against its budget. Amounts sum
// directly because Create holds every expense on a trip to one currency.
func (s *ExpenseService) Summary(ctx context.Context, ownerID, tripID uuid.UUID) (domain.ExpenseSummary, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return domain.ExpenseSummary{}, fmt.Errorf("service.ExpenseService.Summary: %w", err)
	}

	byCategory, err := s.expenses.SumByCategory(ctx, tripID)
	if err != nil {
		return domain.ExpenseSummary{}, fmt.Errorf("service.ExpenseService.Summary: %w", err)
	}

	var total float64
	for _, amount := range byCategory {
		total += amount
	}

	return domain.ExpenseSummary{
		TripID:     trip.ID,
		Budget:     trip.Budget,
		Total:      total,
		Remaining:  trip.Budget - total,
		ByCategory: byCategory,
	}, nil
}

// validateExpense enforces business rules for new expenses.
//   - Amount must be positive.
//   - Currency must be a 3-letter ISO 4217 code.
//   - Date must lie within the parent trip's inclusive range.
func validateExpense(trip domain.Trip, expense domain.Expense) error {
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if len(expense.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrValidation)
	}
	if expense.Date.Before(trip.StartDate) || expense.Date.After(trip.EndDate) {
		return fmt.Errorf("%w: date %s is outside the trip range",
			domain.ErrValidation, expense.Date.Format("2006-01-02"))
	}
	return nil
}
