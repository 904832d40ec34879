package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindLatestRate returns the applicable rate for a currency on or before asOf.
	// Among rows sharing the latest date the most recently recorded wins.
	FindLatestRate(ctx context.Context, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// FindExchangeRateByID retrieves a single rate row.
	FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates lists rates in natural order (date DESC, currency code ASC).
	// An empty currencyCode lists all currencies; a zero asOf applies no date bound.
	ListExchangeRates(ctx context.Context, currencyCode string, asOf time.Time, limit int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate inserts a new rate row. Rows are never updated in place.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
