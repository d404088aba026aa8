package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kpatters/wayfarer/backend/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
// All operations are scoped by tripID to enforce ownership; the service
// layer resolves the trip through the owner-scoped TripRepo first.
//
// DeleteByDate and ShiftAfter exist for the day-shift engine: removing a day
// deletes that day's activities and slides every later activity back, and
// both need to be expressible as single statements so the whole removal can
// run inside one transaction.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity by its UUID, scoped to the given trip.
	// Returns domain.ErrNotFound if no activity with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error)

	// ListByTripID returns all activities for a trip ordered by date, then
	// insertion order within the same date.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// Update overwrites the mutable fields of an activity, scoped to the trip.
	// Returns domain.ErrNotFound if no activity with that ID exists under that trip.
	Update(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// Toggle flips the done flag of an activity and returns the updated record.
	// Returns domain.ErrNotFound if no activity with that ID exists under that trip.
	Toggle(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error)

	// Delete removes an activity by ID, scoped to the given trip.
	// Returns domain.ErrNotFound if no activity with that ID exists under that trip.
	Delete(ctx context.Context, tripID, activityID uuid.UUID) error

	// DeleteByDate removes every activity on the given calendar date and
	// returns how many were deleted. Zero deletions is not an error; the
	// removed day may simply have been empty.
	DeleteByDate(ctx context.Context, tripID uuid.UUID, date time.Time) (int64, error)

	// ShiftAfter moves every activity dated strictly after the given date by
	// days (negative shifts backward) and returns how many rows moved.
	// A single UPDATE, so within a transaction it is all-or-nothing.
	ShiftAfter(ctx context.Context, tripID uuid.UUID, after time.Time, days int) (int64, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

func (r *pgActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (trip_id, date, description, done)
		VALUES (@trip_id, @date, @description, @done)
		RETURNING id, trip_id, date, description, done, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":     activity.TripID,
		"date":        activity.Date,
		"description": activity.Description,
		"done":        activity.Done,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error) {
	const q = `
		SELECT id, trip_id, date, description, done, created_at, updated_at
		FROM activities
		WHERE id = @id AND trip_id = @trip_id`

	result, err := scanActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": activityID, "trip_id": tripID}))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	// created_at then id breaks ties within a date: insertion order, with id
	// as a deterministic fallback for rows created in the same microsecond.
	const q = `
		SELECT id, trip_id, date, description, done, created_at, updated_at
		FROM activities
		WHERE trip_id = @trip_id
		ORDER BY date ASC, created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: scan: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: rows: %w", err)
	}

	return activities, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET date        = @date,
		    description = @description,
		    done        = @done,
		    updated_at  = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING id, trip_id, date, description, done, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":          activity.ID,
		"trip_id":     activity.TripID,
		"date":        activity.Date,
		"description": activity.Description,
		"done":        activity.Done,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Toggle(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET done       = NOT done,
		    updated_at = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING id, trip_id, date, description, done, created_at, updated_at`

	result, err := scanActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": activityID, "trip_id": tripID}))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Toggle: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, tripID, activityID uuid.UUID) error {
	const q = `DELETE FROM activities WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": activityID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgActivityRepo) DeleteByDate(ctx context.Context, tripID uuid.UUID, date time.Time) (int64, error) {
	const q = `DELETE FROM activities WHERE trip_id = @trip_id AND date = @date`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "date": date})
	if err != nil {
		return 0, fmt.Errorf("repo.ActivityRepo.DeleteByDate: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgActivityRepo) ShiftAfter(ctx context.Context, tripID uuid.UUID, after time.Time, days int) (int64, error) {
	// DATE + integer is day arithmetic in Postgres, no interval cast needed.
	const q = `
		UPDATE activities
		SET date       = date + @days,
		    updated_at = now()
		WHERE trip_id = @trip_id AND date > @after`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "after": after, "days": days})
	if err != nil {
		return 0, fmt.Errorf("repo.ActivityRepo.ShiftAfter: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &date, &a.Description, &a.Done, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	a.Date = date.Time

	return a, nil
}
