package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/money_billing/internal/apperrors"
	"github.com/SscSPs/money_billing/internal/core/domain"
	portsrepo "github.com/SscSPs/money_billing/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/dto"
	"golang.org/x/text/currency"
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates the currency registry service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

// NormalizeCurrencyCode upper-cases a code and checks it against ISO 4217.
func NormalizeCurrencyCode(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("%w: '%s' is not an ISO 4217 currency code", apperrors.ErrValidation, code)
	}
	return unit.String(), nil
}

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code, err := NormalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	nameEn := req.NameEn
	if nameEn == "" {
		nameEn = req.Name
	}

	curr := domain.Currency{
		CurrencyCode: code,
		CountryCode:  strings.ToUpper(req.CountryCode),
		Name:         req.Name,
		NameEn:       nameEn,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, curr); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	s.LogInfo(ctx, "Currency saved", slog.String("currency_code", code))
	return &curr, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	curr, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(strings.TrimSpace(currencyCode)))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return curr, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
