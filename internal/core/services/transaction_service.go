package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/money_billing/internal/apperrors"
	"github.com/SscSPs/money_billing/internal/core/domain"
	portsrepo "github.com/SscSPs/money_billing/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/dto"
	"github.com/SscSPs/money_billing/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultTransactionListLimit = 20
	maxTransactionListLimit     = 100
)

type transactionService struct {
	BaseService
	txRepo       portsrepo.TransactionRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	resolver     portssvc.ReferenceResolverSvc
	events       portssvc.StatusEventPublisher
}

// TransactionOption is a functional option for configuring the transaction service
type TransactionOption func(*transactionService)

// WithTransactionCurrencyRepository validates currency codes against the registry.
func WithTransactionCurrencyRepository(repo portsrepo.CurrencyReader) TransactionOption {
	return func(s *transactionService) {
		s.currencyRepo = repo
	}
}

// WithTransactionResolver adds reference resolution.
func WithTransactionResolver(resolver portssvc.ReferenceResolverSvc) TransactionOption {
	return func(s *transactionService) {
		s.resolver = resolver
	}
}

// WithTransactionEvents publishes status changes.
func WithTransactionEvents(publisher portssvc.StatusEventPublisher) TransactionOption {
	return func(s *transactionService) {
		s.events = publisher
	}
}

// WithTransactionClock overrides time.Now.
func WithTransactionClock(now func() time.Time) TransactionOption {
	return func(s *transactionService) {
		s.Now = now
	}
}

// NewTransactionService creates the transaction ledger service.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{txRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: acting user is required", apperrors.ErrValidation)
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	actor, target := req.Actor.ToDomain(), req.Target.ToDomain()
	if err := validateRef("actor", actor); err != nil {
		return nil, err
	}
	if err := validateRef("target", target); err != nil {
		return nil, err
	}

	var lookup func(context.Context, string) (*domain.Currency, error)
	if s.currencyRepo != nil {
		lookup = s.currencyRepo.FindCurrencyByCode
	}
	code, err := validateCurrency(ctx, lookup, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	date := now
	if req.Date != nil && !req.Date.IsZero() {
		date = req.Date.UTC()
	}

	tx := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Actor:         actor,
		Date:          date,
		Status:        domain.TransactionUnknown,
		Target:        target,
		Money:         domain.Money{Amount: req.Amount, CurrencyCode: code},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txRepo.SaveTransaction(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("user_id", userID),
			slog.String("actor", actor.String()))
		return nil, fmt.Errorf("failed to create transaction in service: %w", err)
	}

	s.LogInfo(ctx, "Transaction recorded", slog.String("transaction_id", tx.TransactionID))
	return &tx, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	tx, err := s.txRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction in service: %w", err)
	}
	return tx, nil
}

func (s *transactionService) ListTransactionsByUser(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	limit := pagination.ClampLimit(params.Limit, defaultTransactionListLimit, maxTransactionListLimit)
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	txs, err := s.txRepo.ListTransactionsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	if txs == nil {
		return []domain.Transaction{}, nil
	}
	return txs, nil
}

// UpdateTransactionStatus applies a lifecycle move. Illegal moves fail with
// apperrors.ErrInvalidTransition, a concurrent change with apperrors.ErrConflict.
func (s *transactionService) UpdateTransactionStatus(ctx context.Context, transactionID string, next domain.TransactionStatus, userID string) (*domain.Transaction, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction status %d", apperrors.ErrValidation, next)
	}

	tx, err := s.txRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}

	prev := tx.Status
	if !prev.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: transaction %s cannot move from %s to %s", apperrors.ErrInvalidTransition, transactionID, prev, next)
	}

	now := s.CurrentTime()
	if err := s.txRepo.UpdateTransactionStatus(ctx, transactionID, prev, next, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update transaction status",
			slog.String("transaction_id", transactionID),
			slog.String("from", prev.String()),
			slog.String("to", next.String()))
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	tx.Status = next
	tx.LastUpdatedAt = now
	tx.LastUpdatedBy = userID

	s.publishStatusChange(ctx, s.events, domain.StatusChangedEvent{
		Kind:      domain.KindTransaction,
		EntityID:  transactionID,
		From:      prev.String(),
		To:        next.String(),
		ChangedBy: userID,
		ChangedAt: now,
	})

	return tx, nil
}

func (s *transactionService) ResolveActor(ctx context.Context, tx *domain.Transaction) (domain.Entity, error) {
	return s.resolve(ctx, tx.Actor)
}

func (s *transactionService) ResolveTarget(ctx context.Context, tx *domain.Transaction) (domain.Entity, error) {
	return s.resolve(ctx, tx.Target)
}

func (s *transactionService) resolve(ctx context.Context, ref domain.Ref) (domain.Entity, error) {
	if s.resolver == nil {
		return nil, fmt.Errorf("%w: reference resolution is not configured", apperrors.ErrNotFound)
	}
	return s.resolver.Resolve(ctx, ref)
}
