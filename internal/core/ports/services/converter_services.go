package services

import (
	"context"
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateConverterSvc converts default-currency amounts for display in the
// caller's preferred currency. None of the conversion methods fail: on any
// lookup problem the input amount is returned unchanged.
type RateConverterSvc interface {
	// DefaultCurrency is the process-wide base currency code.
	DefaultCurrency() string

	// ResolveTargetCurrency returns the caller's currency, or the default one.
	ResolveTargetCurrency(cc domain.ClientContext) string

	// LatestRate returns the applicable rate, or apperrors.ErrNotFound.
	LatestRate(ctx context.Context, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// ConvertMinAmount computes base * nominal / selected rate.
	ConvertMinAmount(ctx context.Context, base decimal.Decimal, currencyCode string, asOf time.Time) decimal.Decimal

	// MinAmountFor converts item's minimum amount from its own currency into the caller's, as of now.
	MinAmountFor(ctx context.Context, cc domain.ClientContext, item domain.HasMinimumAmount) decimal.Decimal

	// CurrencySymbol returns a display glyph for the caller's currency.
	CurrencySymbol(cc domain.ClientContext) string
}
