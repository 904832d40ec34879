package dto

import (
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for recording an exchange rate.
type CreateExchangeRateRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,currency_code"`
	Date         time.Time       `json:"date" binding:"required"`
	Nominal      int16           `json:"nominal" binding:"omitempty,min=1"` // Defaults to 1
	OfficialRate decimal.Decimal `json:"officialRate" binding:"required"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
}

// ListExchangeRatesParams holds the query parameters of the rate listing.
type ListExchangeRatesParams struct {
	CurrencyCode string    `form:"currency" binding:"omitempty,currency_code"`
	AsOf         time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1"`
	Limit        int       `form:"limit" binding:"omitempty,min=1,max=500"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	Date           string          `json:"date"`
	Nominal        int16           `json:"nominal"`
	OfficialRate   decimal.Decimal `json:"officialRate"`
	Rate           decimal.Decimal `json:"rate"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		CurrencyCode:   rate.CurrencyCode,
		Date:           rate.Date.Format(time.DateOnly),
		Nominal:        rate.Nominal,
		OfficialRate:   rate.OfficialRate,
		Rate:           rate.Rate,
		CreatedAt:      rate.CreatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// MinAmountResponse is the result of converting a minimum amount for display.
type MinAmountResponse struct {
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	CurrencySymbol  string          `json:"currencySymbol"`
	DefaultCurrency string          `json:"defaultCurrency"`
}
