package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
)

// BillCursor is the keyset position after which a listing continues.
type BillCursor struct {
	Date      time.Time
	CreatedAt time.Time
	AccountID string
}

// BillFilter narrows a bill listing.
type BillFilter struct {
	Status *domain.AccountStatus
	UserID string
	Limit  int
	After  *BillCursor
}

// AccountReader defines read operations for billing accounts
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListBills lists accounts ordered by date DESC, created_at DESC.
	ListBills(ctx context.Context, filter BillFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for billing accounts
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus moves an account from `from` to `to`.
	// Returns apperrors.ErrConflict when the stored status is no longer `from`.
	UpdateAccountStatus(ctx context.Context, accountID string, from, to domain.AccountStatus, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
