package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row of the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	ActorKind     *string         `db:"actor_kind"`
	ActorID       *string         `db:"actor_id"`
	TxDate        time.Time       `db:"tx_date"`
	Status        int16           `db:"status"`
	TargetKind    *string         `db:"target_kind"`
	TargetID      *string         `db:"target_id"`
	Amount        decimal.Decimal `db:"amount"` // NUMERIC(20,3)
	CurrencyCode  *string         `db:"currency_code"`
	AuditFields
}
