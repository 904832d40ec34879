package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a row of the billing_accounts table.
type Account struct {
	AccountID    string          `db:"account_id"`
	UserID       *string         `db:"user_id"`
	BillDate     time.Time       `db:"bill_date"`   // DATE
	DateBilled   time.Time       `db:"date_billed"` // DATE
	Status       int16           `db:"status"`
	TargetKind   *string         `db:"target_kind"`
	TargetID     *string         `db:"target_id"`
	Description  string          `db:"description"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode *string         `db:"currency_code"`
	AuditFields
}
