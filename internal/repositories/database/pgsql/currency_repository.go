package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/money_billing/internal/core/domain"
	portsrepo "github.com/SscSPs/money_billing/internal/core/ports/repositories"
	"github.com/SscSPs/money_billing/internal/models"
	"github.com/SscSPs/money_billing/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	upsertCurrencySQL = `
		INSERT INTO currencies (currency_code, country_code, name, name_en, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (currency_code) DO UPDATE SET
			country_code = EXCLUDED.country_code,
			name = EXCLUDED.name,
			name_en = EXCLUDED.name_en,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;`

	selectCurrencyColumns = `currency_code, country_code, name, name_en, created_at, created_by, last_updated_at, last_updated_by`

	findCurrencySQL = `SELECT ` + selectCurrencyColumns + ` FROM currencies WHERE currency_code = $1;`

	listCurrenciesSQL = `SELECT ` + selectCurrencyColumns + ` FROM currencies ORDER BY currency_code;`
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(db Querier) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

// SaveCurrency inserts a currency or updates its names when the code exists.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)

	_, err := r.Pool.Exec(ctx, upsertCurrencySQL,
		m.CurrencyCode,
		m.CountryCode,
		m.Name,
		m.NameEn,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("failed to save currency %s", m.CurrencyCode))
	}
	return nil
}

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyCode,
		&m.CountryCode,
		&m.Name,
		&m.NameEn,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	m, err := scanCurrency(r.Pool.QueryRow(ctx, findCurrencySQL, currencyCode))
	if err != nil {
		return nil, mapReadError(err, fmt.Sprintf("failed to find currency by code %s", currencyCode))
	}
	curr := mapping.ToDomainCurrency(m)
	return &curr, nil
}

// ListCurrencies retrieves all currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, listCurrenciesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return mapping.ToDomainCurrencySlice(ms), nil
}
