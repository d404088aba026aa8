package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Atomic runs a function against trip and activity repos bound to a single
// database transaction. The itinerary engine uses it for day removal, which
// spans several statements (delete the day's activities, shift later ones,
// shrink the trip range) and must never persist a partially-shifted state.
//
// If fn returns an error the transaction is rolled back and the error is
// returned unchanged, so sentinel and step errors survive the round trip.
type Atomic interface {
	WithinTx(ctx context.Context, fn func(trips TripRepo, activities ActivityRepo) error) error
}

// txBeginner is the subset of *pgxpool.Pool needed to open a transaction.
// pgx.Tx also satisfies it, which lets integration tests nest the whole
// operation inside their rollback transaction.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// pgAtomic is the Postgres implementation of Atomic.
type pgAtomic struct {
	pool txBeginner
}

// NewAtomic constructs an Atomic backed by the provided pool.
func NewAtomic(pool txBeginner) Atomic {
	return &pgAtomic{pool: pool}
}

var _ txBeginner = (*pgxpool.Pool)(nil)

func (a *pgAtomic) WithinTx(ctx context.Context, fn func(trips TripRepo, activities ActivityRepo) error) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Atomic.WithinTx: begin: %w", err)
	}

	if err := fn(NewTripRepo(tx), NewActivityRepo(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("repo.Atomic.WithinTx: rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Atomic.WithinTx: commit: %w", err)
	}
	return nil
}
