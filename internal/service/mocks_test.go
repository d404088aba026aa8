package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/repo"
	"github.com/kpatters/wayfarer/backend/internal/suggest"
)

// Function-field mocks. Tests set only the fields they expect to be called;
// an unexpected call panics on the nil function, which is exactly the failure
// we want.

type mockTripRepo struct {
	CreateFunc      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByIDFunc     func(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error)
	ListPagedFunc   func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	UpdateFunc      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	UpdateDatesFunc func(ctx context.Context, ownerID, tripID uuid.UUID, start, end time.Time) (domain.Trip, error)
	DeleteFunc      func(ctx context.Context, ownerID, tripID uuid.UUID) error
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.CreateFunc(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error) {
	return m.GetByIDFunc(ctx, ownerID, tripID)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.ListPagedFunc(ctx, ownerID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.UpdateFunc(ctx, trip)
}
func (m *mockTripRepo) UpdateDates(ctx context.Context, ownerID, tripID uuid.UUID, start, end time.Time) (domain.Trip, error) {
	return m.UpdateDatesFunc(ctx, ownerID, tripID, start, end)
}
func (m *mockTripRepo) Delete(ctx context.Context, ownerID, tripID uuid.UUID) error {
	return m.DeleteFunc(ctx, ownerID, tripID)
}

type mockActivityRepo struct {
	CreateFunc       func(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	GetByIDFunc      func(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error)
	ListByTripIDFunc func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	UpdateFunc       func(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	ToggleFunc       func(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error)
	DeleteFunc       func(ctx context.Context, tripID, activityID uuid.UUID) error
	DeleteByDateFunc func(ctx context.Context, tripID uuid.UUID, date time.Time) (int64, error)
	ShiftAfterFunc   func(ctx context.Context, tripID uuid.UUID, after time.Time, days int) (int64, error)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

func (m *mockActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	return m.CreateFunc(ctx, activity)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error) {
	return m.GetByIDFunc(ctx, tripID, activityID)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.ListByTripIDFunc(ctx, tripID)
}
func (m *mockActivityRepo) Update(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	return m.UpdateFunc(ctx, activity)
}
func (m *mockActivityRepo) Toggle(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error) {
	return m.ToggleFunc(ctx, tripID, activityID)
}
func (m *mockActivityRepo) Delete(ctx context.Context, tripID, activityID uuid.UUID) error {
	return m.DeleteFunc(ctx, tripID, activityID)
}
func (m *mockActivityRepo) DeleteByDate(ctx context.Context, tripID uuid.UUID, date time.Time) (int64, error) {
	return m.DeleteByDateFunc(ctx, tripID, date)
}
func (m *mockActivityRepo) ShiftAfter(ctx context.Context, tripID uuid.UUID, after time.Time, days int) (int64, error) {
	return m.ShiftAfterFunc(ctx, tripID, after, days)
}

type mockExpenseRepo struct {
	CreateFunc        func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	GetByIDFunc       func(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)
	ListByTripIDFunc  func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	DeleteFunc        func(ctx context.Context, tripID, expenseID uuid.UUID) error
	SumByCategoryFunc func(ctx context.Context, tripID uuid.UUID) (map[string]float64, error)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

func (m *mockExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.CreateFunc(ctx, expense)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	return m.GetByIDFunc(ctx, tripID, expenseID)
}
func (m *mockExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.ListByTripIDFunc(ctx, tripID)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.DeleteFunc(ctx, tripID, expenseID)
}
func (m *mockExpenseRepo) SumByCategory(ctx context.Context, tripID uuid.UUID) (map[string]float64, error) {
	return m.SumByCategoryFunc(ctx, tripID)
}

type mockInterestRepo struct {
	UpsertFunc         func(ctx context.Context, name, slug string) (domain.Interest, error)
	AddToTripFunc      func(ctx context.Context, tripID, interestID uuid.UUID) error
	RemoveFromTripFunc func(ctx context.Context, tripID uuid.UUID, slug string) error
	ListByTripFunc     func(ctx context.Context, tripID uuid.UUID) ([]domain.Interest, error)
}

var _ repo.InterestRepo = (*mockInterestRepo)(nil)

func (m *mockInterestRepo) Upsert(ctx context.Context, name, slug string) (domain.Interest, error) {
	return m.UpsertFunc(ctx, name, slug)
}
func (m *mockInterestRepo) AddToTrip(ctx context.Context, tripID, interestID uuid.UUID) error {
	return m.AddToTripFunc(ctx, tripID, interestID)
}
func (m *mockInterestRepo) RemoveFromTrip(ctx context.Context, tripID uuid.UUID, slug string) error {
	return m.RemoveFromTripFunc(ctx, tripID, slug)
}
func (m *mockInterestRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Interest, error) {
	return m.ListByTripFunc(ctx, tripID)
}

type mockGenerator struct {
	SuggestFunc func(ctx context.Context, destination string, days int, interests []string) (suggest.Suggestion, error)
}

var _ suggest.Generator = (*mockGenerator)(nil)

func (m *mockGenerator) Suggest(ctx context.Context, destination string, days int, interests []string) (suggest.Suggestion, error) {
	return m.SuggestFunc(ctx, destination, days, interests)
}
