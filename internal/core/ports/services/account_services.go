package services

import (
	"context"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/SscSPs/money_billing/internal/dto"
)

// BillsPage is one page of the bill listing.
type BillsPage struct {
	Accounts  []domain.Account
	NextToken *string
}

// AccountReaderSvc defines read operations for billing accounts
type AccountReaderSvc interface {
	// GetAccount retrieves an account by its ID.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// ListBills lists accounts, newest bill date first.
	ListBills(ctx context.Context, params dto.ListBillsParams) (*BillsPage, error)

	// Docs returns the documents attached to an account. The result does not
	// depend on the account status.
	Docs(ctx context.Context, accountID string) ([]domain.DocumentRef, error)

	// ResolveTarget loads the entity the account's target reference points at.
	ResolveTarget(ctx context.Context, account *domain.Account) (domain.Entity, error)
}

// AccountWriterSvc defines write operations for billing accounts
type AccountWriterSvc interface {
	// CreateAccount issues a new bill.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccountStatus moves the account through its lifecycle.
	UpdateAccountStatus(ctx context.Context, accountID string, next domain.AccountStatus, userID string) (*domain.Account, error)

	// AttachDocument links a document to the account.
	AttachDocument(ctx context.Context, accountID string, req dto.AttachDocumentRequest, userID string) (*domain.DocumentRef, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
