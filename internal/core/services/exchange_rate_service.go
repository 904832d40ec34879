package services

import (
	"context"
	"errors"
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
	"github.com/shopspring/decimal"
)

const (
	defaultRateListLimit = 100
	maxRateListLimit     = 500
)

// ExchangeRateService provides business logic for exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// ExchangeRateOption configures the exchange rate service.
type ExchangeRateOption func(*exchangeRateService)

// WithExchangeRateLocation sets the time zone whose calendar day is "today".
func WithExchangeRateLocation(loc *time.Location) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.RateLocation = loc
	}
}

// WithExchangeRateClock overrides time.Now.
func WithExchangeRateClock(now func() time.Time) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.Now = now
	}
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyReader, options ...ExchangeRateOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// CreateExchangeRate records a rate row. Rows are append-only; a newer
// row for the same day supersedes older ones at read time.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))

	nominal := req.Nominal
	if nominal == 0 {
		nominal = 1
	}
	if nominal < 0 {
		return nil, fmt.Errorf("%w: nominal must be positive", apperrors.ErrValidation)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) || req.OfficialRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rates must be positive", apperrors.ErrValidation)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: rate date is required", apperrors.ErrValidation)
	}

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
	}

	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   code,
		Date:           domain.TruncateToDate(req.Date.UTC()),
		Nominal:        nominal,
		OfficialRate:   req.OfficialRate.Round(4),
		Rate:           req.Rate.Round(4),
		CreatedAt:      s.CurrentTime(),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate",
			slog.String("currency_code", code),
			slog.String("created_by", creatorUserID))
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	return &rate, nil
}

// GetLatestRate returns the row that applies on asOf. A zero asOf means today.
func (s *exchangeRateService) GetLatestRate(ctx context.Context, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	day := s.RateDay()
	if !asOf.IsZero() {
		day = domain.TruncateToDate(asOf)
	}
	rate, err := s.rateRepo.FindLatestRate(ctx, strings.ToUpper(currencyCode), day)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) ([]domain.ExchangeRate, error) {
	limit := pagination.ClampLimit(params.Limit, defaultRateListLimit, maxRateListLimit)
	asOf := params.AsOf
	if !asOf.IsZero() {
		asOf = domain.TruncateToDate(asOf)
	}

	rates, err := s.rateRepo.ListExchangeRates(ctx, strings.ToUpper(params.CurrencyCode), asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}
