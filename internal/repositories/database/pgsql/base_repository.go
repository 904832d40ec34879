package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/money_billing/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Querier is the subset of *pgxpool.Pool and pgx.Tx used by the repositories.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool Querier
}

// mapWriteError translates constraint violations into application errors.
func mapWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, apperrors.ErrDuplicate)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrValidation, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mapReadError turns a missing row into apperrors.ErrNotFound.
func mapReadError(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// compareAndSet reports a conflict when an update guarded by the previous
// value touched no rows.
func compareAndSet(tag pgconn.CommandTag, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
	}
	return nil
}
