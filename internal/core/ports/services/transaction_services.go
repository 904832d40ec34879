package services

import (
	"context"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/SscSPs/money_billing/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// ResolveActor loads the entity the transaction's actor reference points at.
	ResolveActor(ctx context.Context, tx *domain.Transaction) (domain.Entity, error)
	// ResolveTarget loads the entity the transaction's target reference points at.
	ResolveTarget(ctx context.Context, tx *domain.Transaction) (domain.Entity, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, transactionID string, next domain.TransactionStatus, userID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
