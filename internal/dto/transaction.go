package dto

import (
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,currency_code"`
	Actor        *RefRequest     `json:"actor"`
	Target       *RefRequest     `json:"target"`
	Date         *time.Time      `json:"date"` // Defaults to now
}

// UpdateTransactionStatusRequest moves a transaction through its lifecycle.
type UpdateTransactionStatusRequest struct {
	Status domain.TransactionStatus `json:"status" binding:"required"`
}

// ListTransactionsParams holds the query parameters of the transaction listing.
type ListTransactionsParams struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	UserID        string                   `json:"userID"`
	Actor         *RefResponse             `json:"actor,omitempty"`
	Target        *RefResponse             `json:"target,omitempty"`
	Date          time.Time                `json:"date"`
	Status        domain.TransactionStatus `json:"status"`
	Amount        decimal.Decimal          `json:"amount"`
	CurrencyCode  string                   `json:"currencyCode,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	LastUpdatedAt time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy string                   `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		UserID:        t.UserID,
		Actor:         ToRefResponse(t.Actor),
		Target:        ToRefResponse(t.Target),
		Date:          t.Date,
		Status:        t.Status,
		Amount:        t.Amount,
		CurrencyCode:  t.CurrencyCode,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
		LastUpdatedBy: t.LastUpdatedBy,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction.
func ToListTransactionResponse(txs []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txs))
	for i := range txs {
		res[i] = ToTransactionResponse(&txs[i])
	}
	return res
}

// TransactionDetailResponse is a transaction with its references loaded.
type TransactionDetailResponse struct {
	TransactionResponse
	ActorEntity  domain.Entity `json:"actorEntity,omitempty"`
	TargetEntity domain.Entity `json:"targetEntity,omitempty"`
}
