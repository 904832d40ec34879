package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate represents a row of the exchange_rates table.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"` // Primary Key (UUID)
	CurrencyCode   *string         `db:"currency_code"`    // Nullable FK -> currencies.currency_code
	RateDate       time.Time       `db:"rate_date"`        // DATE
	Nominal        int16           `db:"nominal"`
	OfficialRate   decimal.Decimal `db:"official_rate"` // NUMERIC(10,4)
	Rate           decimal.Decimal `db:"rate"`          // NUMERIC(10,4)
	CreatedAt      time.Time       `db:"created_at"`
}
