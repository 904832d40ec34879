package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a dated quotation of one currency against the default currency.
// Both the official and the market rate are quoted per Nominal units.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"` // Empty once the currency has been removed
	Date           time.Time       `json:"date"`         // Calendar date, no time component
	Nominal        int16           `json:"nominal"`
	OfficialRate   decimal.Decimal `json:"officialRate"`
	Rate           decimal.Decimal `json:"rate"` // Market rate
	CreatedAt      time.Time       `json:"createdAt"`
}

// SelectedRate returns the official or the market rate.
func (r ExchangeRate) SelectedRate(useOfficial bool) decimal.Decimal {
	if useOfficial {
		return r.OfficialRate
	}
	return r.Rate
}

// TruncateToDate drops the time-of-day component, keeping the location.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
