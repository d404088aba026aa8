package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kpatters/wayfarer/backend/internal/domain"
)

// InterestRepo defines the persistence operations for Interests and the
// trip_interests join table.
type InterestRepo interface {
	// Upsert inserts an interest by slug, or returns the existing interest if
	// the slug already exists. The name of the first creator is preserved on
	// conflict.
	Upsert(ctx context.Context, name, slug string) (domain.Interest, error)

	// AddToTrip links an interest to a trip. Idempotent; no error if already linked.
	AddToTrip(ctx context.Context, tripID, interestID uuid.UUID) error

	// RemoveFromTrip unlinks an interest from a trip by slug.
	// Returns domain.ErrNotFound if the interest is not linked to the trip.
	RemoveFromTrip(ctx context.Context, tripID uuid.UUID, slug string) error

	// ListByTrip returns all interests linked to a trip, ordered by slug.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Interest, error)
}

// pgInterestRepo is the Postgres implementation of InterestRepo.
type pgInterestRepo struct {
	db db
}

// NewInterestRepo constructs an InterestRepo backed by the provided db connection.
func NewInterestRepo(db db) InterestRepo {
	return &pgInterestRepo{db: db}
}

// Upsert inserts an interest or returns the existing row on slug conflict.
// The DO UPDATE is a no-op write that makes RETURNING yield the existing row.
func (r *pgInterestRepo) Upsert(ctx context.Context, name, slug string) (domain.Interest, error) {
	const q = `
		INSERT INTO interests (name, slug)
		VALUES (@name, @slug)
		ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		RETURNING id, name, slug, created_at`

	result, err := scanInterest(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name, "slug": slug}))
	if err != nil {
		return domain.Interest{}, fmt.Errorf("repo.InterestRepo.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgInterestRepo) AddToTrip(ctx context.Context, tripID, interestID uuid.UUID) error {
	const q = `
		INSERT INTO trip_interests (trip_id, interest_id)
		VALUES (@trip_id, @interest_id)
		ON CONFLICT DO NOTHING`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "interest_id": interestID}); err != nil {
		return fmt.Errorf("repo.InterestRepo.AddToTrip: %w", err)
	}
	return nil
}

func (r *pgInterestRepo) RemoveFromTrip(ctx context.Context, tripID uuid.UUID, slug string) error {
	const q = `
		DELETE FROM trip_interests
		WHERE trip_id = @trip_id
		AND   interest_id = (SELECT id FROM interests WHERE slug = @slug)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "slug": slug})
	if err != nil {
		return fmt.Errorf("repo.InterestRepo.RemoveFromTrip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.InterestRepo.RemoveFromTrip: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgInterestRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Interest, error) {
	const q = `
		SELECT i.id, i.name, i.slug, i.created_at
		FROM interests i
		JOIN trip_interests ti ON ti.interest_id = i.id
		WHERE ti.trip_id = @trip_id
		ORDER BY i.slug ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.InterestRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var interests []domain.Interest
	for rows.Next() {
		i, err := scanInterest(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.InterestRepo.ListByTrip: scan: %w", err)
		}
		interests = append(interests, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.InterestRepo.ListByTrip: rows: %w", err)
	}

	return interests, nil
}

// scanInterest maps a single database row into a domain.Interest.
func scanInterest(s scanner) (domain.Interest, error) {
	var (
		i  domain.Interest
		id pgtype.UUID
	)

	err := s.Scan(&id, &i.Name, &i.Slug, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Interest{}, domain.ErrNotFound
		}
		return domain.Interest{}, err
	}

	i.ID = uuid.UUID(id.Bytes)

	return i, nil
}
