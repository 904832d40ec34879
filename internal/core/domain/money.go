package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is the amount/currency pair shared by transactions and billing accounts.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`       // NUMERIC(20,3)
	CurrencyCode string          `json:"currencyCode"` // Nullable FK -> currencies.currency_code
}

// HasMinimumAmount is implemented by records that expose a minimum amount
// to be converted for display. An empty currency means the default currency.
type HasMinimumAmount interface {
	MinCurrentAmount() decimal.Decimal
	MinAmountCurrency() string
}

// MinCurrentAmount returns the stored amount.
func (m Money) MinCurrentAmount() decimal.Decimal {
	return m.Amount
}

// MinAmountCurrency returns the currency the stored amount is expressed in.
func (m Money) MinAmountCurrency() string {
	return m.CurrencyCode
}

// ClientContext carries the caller's display preferences for a single request.
type ClientContext struct {
	Currency string // Preferred currency code, empty when the caller expressed none
}

// Amounts are stored as NUMERIC(20,3).
const (
	AmountScale     = 3
	amountIntDigits = 17
)

var maxAmount = decimal.New(1, amountIntDigits)

// ValidateAmount reports whether d fits the stored precision without rounding.
func ValidateAmount(d decimal.Decimal) error {
	if !d.Equal(d.Round(AmountScale)) {
		return fmt.Errorf("amount %s has more than %d fractional digits", d, AmountScale)
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("amount %s exceeds %d integer digits", d, amountIntDigits)
	}
	return nil
}
