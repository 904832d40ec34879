package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
)

// TransactionReader defines read operations for transactions
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByUser lists a user's transactions, newest first.
	ListTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transactions.
// There is no delete: the table is an audit trail.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, tx domain.Transaction) error

	// UpdateTransactionStatus moves a transaction from `from` to `to`.
	// Returns apperrors.ErrConflict when the stored status is no longer `from`.
	UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
