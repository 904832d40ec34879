package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
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
	defaultBillsPageSize = 20
	maxBillsPageSize     = 100
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	documents    portsrepo.DocumentLinkRepository
	resolver     portssvc.ReferenceResolverSvc
	events       portssvc.StatusEventPublisher
	pageSize     int
}

// AccountOption is a functional option for configuring the account service
type AccountOption func(*accountService)

// WithCurrencyRepository validates currency codes against the registry.
func WithCurrencyRepository(repo portsrepo.CurrencyReader) AccountOption {
	return func(s *accountService) {
		s.currencyRepo = repo
	}
}

// WithDocumentRepository adds the document link store backing Docs.
func WithDocumentRepository(repo portsrepo.DocumentLinkRepository) AccountOption {
	return func(s *accountService) {
		s.documents = repo
	}
}

// WithAccountResolver adds reference resolution.
func WithAccountResolver(resolver portssvc.ReferenceResolverSvc) AccountOption {
	return func(s *accountService) {
		s.resolver = resolver
	}
}

// WithAccountEvents publishes status changes.
func WithAccountEvents(publisher portssvc.StatusEventPublisher) AccountOption {
	return func(s *accountService) {
		s.events = publisher
	}
}

// WithBillsPageSize sets the default listing page size.
func WithBillsPageSize(size int) AccountOption {
	return func(s *accountService) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithAccountClock overrides time.Now.
func WithAccountClock(now func() time.Time) AccountOption {
	return func(s *accountService) {
		s.Now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		pageSize:    defaultBillsPageSize,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown account status %d", apperrors.ErrValidation, req.Status)
	}
	if !req.Status.IsInitial() {
		return nil, fmt.Errorf("%w: an account cannot be created as %s", apperrors.ErrValidation, req.Status)
	}

	target := req.Target.ToDomain()
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
	today := domain.TruncateToDate(now)
	date, dateBilled := today, today
	if req.Date != nil && !req.Date.IsZero() {
		date = domain.TruncateToDate(req.Date.UTC())
	}
	if req.DateBilled != nil && !req.DateBilled.IsZero() {
		dateBilled = domain.TruncateToDate(req.DateBilled.UTC())
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      strings.TrimSpace(req.UserID),
		Date:        date,
		DateBilled:  dateBilled,
		Status:      req.Status,
		Target:      target,
		Description: req.Description,
		Money:       domain.Money{Amount: req.Amount, CurrencyCode: code},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("created_by", creatorUserID))
		return nil, fmt.Errorf("failed to create account in service: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("status", account.Status.String()))
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account in service: %w", err)
	}
	return account, nil
}

// ListBills pages through accounts, newest bill date first. The next token is
// set only when another page exists.
func (s *accountService) ListBills(ctx context.Context, params dto.ListBillsParams) (*portssvc.BillsPage, error) {
	limit := pagination.ClampLimit(params.Limit, s.pageSize, maxBillsPageSize)
	filter := portsrepo.BillFilter{
		UserID: strings.TrimSpace(params.UserID),
		Limit:  limit + 1,
	}

	if params.Status != "" {
		status, err := domain.ParseAccountStatus(params.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.Status = &status
	}

	if params.NextToken != nil && *params.NextToken != "" {
		date, createdAt, accountID, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.After = &portsrepo.BillCursor{Date: date, CreatedAt: createdAt, AccountID: accountID}
	}

	accounts, err := s.accountRepo.ListBills(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills")
		return nil, fmt.Errorf("failed to list bills in service: %w", err)
	}

	page := &portssvc.BillsPage{Accounts: accounts}
	if len(accounts) > limit {
		page.Accounts = accounts[:limit]
		last := page.Accounts[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt, last.AccountID)
		page.NextToken = &token
	}
	if page.Accounts == nil {
		page.Accounts = []domain.Account{}
	}
	return page, nil
}

// UpdateAccountStatus applies a lifecycle move. Illegal moves fail with
// apperrors.ErrInvalidTransition, a concurrent change with apperrors.ErrConflict.
func (s *accountService) UpdateAccountStatus(ctx context.Context, accountID string, next domain.AccountStatus, userID string) (*domain.Account, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown account status %d", apperrors.ErrValidation, next)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	prev := account.Status
	if !prev.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: account %s cannot move from %s to %s", apperrors.ErrInvalidTransition, accountID, prev, next)
	}

	now := s.CurrentTime()
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, prev, next, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update account status",
			slog.String("account_id", accountID),
			slog.String("from", prev.String()),
			slog.String("to", next.String()))
		return nil, fmt.Errorf("failed to update account status: %w", err)
	}

	account.Status = next
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	s.publishStatusChange(ctx, s.events, domain.StatusChangedEvent{
		Kind:      domain.KindAccount,
		EntityID:  accountID,
		From:      prev.String(),
		To:        next.String(),
		ChangedBy: userID,
		ChangedAt: now,
	})

	return account, nil
}

// Docs returns the documents attached to the account. It reads only the link
// store, so the result is the same in every status.
func (s *accountService) Docs(ctx context.Context, accountID string) ([]domain.DocumentRef, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if s.documents == nil {
		return []domain.DocumentRef{}, nil
	}

	docs, err := s.documents.DocumentsFor(ctx, domain.NewRef(domain.KindAccount, accountID))
	if err != nil {
		s.LogError(ctx, err, "Failed to load account documents", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load account documents: %w", err)
	}
	if docs == nil {
		return []domain.DocumentRef{}, nil
	}
	return docs, nil
}

func (s *accountService) AttachDocument(ctx context.Context, accountID string, req dto.AttachDocumentRequest, userID string) (*domain.DocumentRef, error) {
	if s.documents == nil {
		return nil, fmt.Errorf("%w: document store is not configured", apperrors.ErrValidation)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	doc := domain.DocumentRef{
		DocumentID: req.DocumentID,
		Owner:      domain.NewRef(domain.KindAccount, accountID),
		Title:      req.Title,
		URL:        req.URL,
		CreatedAt:  s.CurrentTime(),
		CreatedBy:  userID,
	}
	if err := s.documents.AttachDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to attach document",
			slog.String("account_id", accountID),
			slog.String("document_id", req.DocumentID))
		return nil, fmt.Errorf("failed to attach document: %w", err)
	}
	return &doc, nil
}

func (s *accountService) ResolveTarget(ctx context.Context, account *domain.Account) (domain.Entity, error) {
	if s.resolver == nil {
		return nil, fmt.Errorf("%w: reference resolution is not configured", apperrors.ErrNotFound)
	}
	return s.resolver.Resolve(ctx, account.Target)
}
