// Package repo contains all database access logic for the Wayfarer API.
// Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here; only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kpatters/wayfarer/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly lets the itinerary
// service run multi-statement mutations inside a transaction, and lets
// integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// Every read and write is scoped by ownerID: a trip belonging to another user
// behaves exactly like a trip that does not exist.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID, scoped to the given owner.
	// Returns domain.ErrNotFound if no such trip is visible to that owner.
	GetByID(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of the owner's trips ordered by start_date
	// descending, plus the total count across all pages.
	ListPaged(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if the trip is not visible.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// UpdateDates rewrites only the trip's date range. Used by the itinerary
	// engine so extend/remove-day never clobber concurrent edits to other
	// fields. Returns domain.ErrNotFound if the trip is not visible.
	UpdateDates(ctx context.Context, ownerID, tripID uuid.UUID, start, end time.Time) (domain.Trip, error)

	// Delete removes a trip by ID; activities and expenses cascade.
	// Returns domain.ErrNotFound if the trip is not visible to the owner.
	Delete(ctx context.Context, ownerID, tripID uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (owner_id, destination, start_date, end_date, budget)
		VALUES (@owner_id, @destination, @start_date, @end_date, @budget)
		RETURNING id, owner_id, destination, start_date, end_date, budget, created_at, updated_at`

	args := pgx.NamedArgs{
		"owner_id":    trip.OwnerID,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"budget":      trip.Budget,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, owner_id, destination, start_date, end_date, budget, created_at, updated_at
		FROM trips
		WHERE id = @id AND owner_id = @owner_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": tripID, "owner_id": ownerID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trips WHERE owner_id = @owner_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"owner_id": ownerID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, owner_id, destination, start_date, end_date, budget, created_at, updated_at
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination = @destination,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    budget      = @budget,
		    updated_at  = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING id, owner_id, destination, start_date, end_date, budget, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"owner_id":    trip.OwnerID,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"budget":      trip.Budget,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) UpdateDates(ctx context.Context, ownerID, tripID uuid.UUID, start, end time.Time) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET start_date = @start_date,
		    end_date   = @end_date,
		    updated_at = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING id, owner_id, destination, start_date, end_date, budget, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":         tripID,
		"owner_id":   ownerID,
		"start_date": start,
		"end_date":   end,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateDates: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, ownerID, tripID uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": tripID, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// DATE columns come back through pgtype.Date as UTC midnights, which is
// exactly the calendar-date representation the rest of the code expects.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t       domain.Trip
		id      pgtype.UUID
		ownerID pgtype.UUID
		start   pgtype.Date
		end     pgtype.Date
	)

	err := s.Scan(&id, &ownerID, &t.Destination, &start, &end, &t.Budget, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(ownerID.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time

	return t, nil
}
