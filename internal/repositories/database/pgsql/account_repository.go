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
	insertAccountSQL = `
		INSERT INTO billing_accounts (account_id, user_id, bill_date, date_billed, status, target_kind, target_id,
			description, amount, currency_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`

	selectAccountColumns = `account_id, user_id, bill_date, date_billed, status, target_kind, target_id,
			description, amount, currency_code, created_at, created_by, last_updated_at, last_updated_by`

	findAccountSQL = `SELECT ` + selectAccountColumns + ` FROM billing_accounts WHERE account_id = $1;`

	// Keyset pagination over (bill_date, created_at, account_id); all sort keys descend.
	listBillsSQL = `SELECT ` + selectAccountColumns + `
		FROM billing_accounts
		WHERE ($1::smallint IS NULL OR status = $1)
		  AND ($2::text = '' OR user_id = $2)
		  AND ($3::date IS NULL OR (bill_date, created_at, account_id) < ($3::date, $4::timestamptz, $5::text))
		ORDER BY bill_date DESC, created_at DESC, account_id DESC
		LIMIT $6;`

	updateAccountStatusSQL = `
		UPDATE billing_accounts
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4 AND status = $5;`
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(db Querier) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new billing account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	_, err := r.Pool.Exec(ctx, insertAccountSQL,
		m.AccountID,
		m.UserID,
		m.BillDate,
		m.DateBilled,
		m.Status,
		m.TargetKind,
		m.TargetID,
		m.Description,
		m.Amount,
		m.CurrencyCode,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("failed to save account %s", m.AccountID))
	}
	return nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.BillDate,
		&m.DateBilled,
		&m.Status,
		&m.TargetKind,
		&m.TargetID,
		&m.Description,
		&m.Amount,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindAccountByID retrieves a billing account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	m, err := scanAccount(r.Pool.QueryRow(ctx, findAccountSQL, accountID))
	if err != nil {
		return nil, mapReadError(err, fmt.Sprintf("failed to find account %s", accountID))
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListBills returns one page of accounts. Unset filters are passed as NULL
// so the statement text stays constant.
func (r *PgxAccountRepository) ListBills(ctx context.Context, filter portsrepo.BillFilter) ([]domain.Account, error) {
	var statusArg, afterDateArg, afterCreatedArg, afterIDArg any
	if filter.Status != nil {
		statusArg = int16(*filter.Status)
	}
	if filter.After != nil {
		afterDateArg = domain.TruncateToDate(filter.After.Date)
		afterCreatedArg = filter.After.CreatedAt
		afterIDArg = filter.After.AccountID
	}

	rows, err := r.Pool.Query(ctx, listBillsSQL, statusArg, filter.UserID, afterDateArg, afterCreatedArg, afterIDArg, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan bills: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccountStatus applies a status change only if the stored status still equals from.
func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, from, to domain.AccountStatus, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, updateAccountStatusSQL, int16(to), now, userID, accountID, int16(from))
	return compareAndSet(tag, err, fmt.Sprintf("failed to update status of account %s", accountID))
}
