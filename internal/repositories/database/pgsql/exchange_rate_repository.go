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
	insertExchangeRateSQL = `
		INSERT INTO exchange_rates (exchange_rate_id, currency_code, rate_date, nominal, official_rate, rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`

	selectExchangeRateColumns = `exchange_rate_id, currency_code, rate_date, nominal, official_rate, rate, created_at`

	findLatestRateSQL = `SELECT ` + selectExchangeRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1 AND rate_date <= $2
		ORDER BY rate_date DESC, created_at DESC, rate DESC
		LIMIT 1;`

	findExchangeRateSQL = `SELECT ` + selectExchangeRateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1;`

	listExchangeRatesSQL = `SELECT ` + selectExchangeRateColumns + `
		FROM exchange_rates
		WHERE ($1::text = '' OR currency_code = $1)
		  AND ($2::date IS NULL OR rate_date <= $2)
		ORDER BY rate_date DESC, currency_code ASC, created_at DESC
		LIMIT $3;`
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(db Querier) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts a new exchange rate row.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	_, err := r.Pool.Exec(ctx, insertExchangeRateSQL,
		m.ExchangeRateID,
		m.CurrencyCode,
		m.RateDate,
		m.Nominal,
		m.OfficialRate,
		m.Rate,
		m.CreatedAt,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("failed to save exchange rate for %s", rate.CurrencyCode))
	}
	return nil
}

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.CurrencyCode,
		&m.RateDate,
		&m.Nominal,
		&m.OfficialRate,
		&m.Rate,
		&m.CreatedAt,
	)
	return m, err
}

// FindLatestRate returns the newest rate dated on or before asOf.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, findLatestRateSQL, currencyCode, domain.TruncateToDate(asOf)))
	if err != nil {
		return nil, mapReadError(err, fmt.Sprintf("failed to find latest rate for %s", currencyCode))
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindExchangeRateByID retrieves a single rate row.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, findExchangeRateSQL, rateID))
	if err != nil {
		return nil, mapReadError(err, fmt.Sprintf("failed to find exchange rate %s", rateID))
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListExchangeRates lists rates newest date first, then by currency code.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, currencyCode string, asOf time.Time, limit int) ([]domain.ExchangeRate, error) {
	var asOfArg any
	if !asOf.IsZero() {
		asOfArg = domain.TruncateToDate(asOf)
	}

	rows, err := r.Pool.Query(ctx, listExchangeRatesSQL, currencyCode, asOfArg, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	rates := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		rates[i] = mapping.ToDomainExchangeRate(m)
	}
	return rates, nil
}
