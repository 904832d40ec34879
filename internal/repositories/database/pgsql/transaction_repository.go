package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
	portsrepo "github.com/SscSPs/money_billing/internal/core/ports/repositories"
	"github.com/SscSPs/money_billing/internal/models"
	"github.com/SscSPs/money_billing/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	insertTransactionSQL = `
		INSERT INTO transactions (transaction_id, user_id, actor_kind, actor_id, tx_date, status, target_kind, target_id,
			amount, currency_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`

	selectTransactionColumns = `transaction_id, user_id, actor_kind, actor_id, tx_date, status, target_kind, target_id,
			amount, currency_code, created_at, created_by, last_updated_at, last_updated_by`

	findTransactionSQL = `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	listTransactionsByUserSQL = `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY tx_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;`

	updateTransactionStatusSQL = `
		UPDATE transactions
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $4 AND status = $5;`
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db Querier) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransaction inserts a transaction. A duplicate of the natural key maps to ErrDuplicate.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx domain.Transaction) error {
	m := mapping.ToModelTransaction(tx)

	_, err := r.Pool.Exec(ctx, insertTransactionSQL,
		m.TransactionID,
		m.UserID,
		m.ActorKind,
		m.ActorID,
		m.TxDate,
		m.Status,
		m.TargetKind,
		m.TargetID,
		m.Amount,
		m.CurrencyCode,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("failed to save transaction %s", m.TransactionID))
	}
	return nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.ActorKind,
		&m.ActorID,
		&m.TxDate,
		&m.Status,
		&m.TargetKind,
		&m.TargetID,
		&m.Amount,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx, findTransactionSQL, transactionID))
	if err != nil {
		return nil, mapReadError(err, fmt.Sprintf("failed to find transaction %s", transactionID))
	}
	tx := mapping.ToDomainTransaction(m)
	return &tx, nil
}

// ListTransactionsByUser lists a user's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, listTransactionsByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	txs := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		txs[i] = mapping.ToDomainTransaction(m)
	}
	return txs, nil
}

// UpdateTransactionStatus applies a status change only if the stored status still equals from.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, updateTransactionStatusSQL, int16(to), now, userID, transactionID, int16(from))
	return compareAndSet(tag, err, fmt.Sprintf("failed to update status of transaction %s", transactionID))
}
