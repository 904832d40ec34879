package mapping

import (
	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/SscSPs/money_billing/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		CurrencyCode:   NullableString(d.CurrencyCode),
		RateDate:       domain.TruncateToDate(d.Date),
		Nominal:        d.Nominal,
		OfficialRate:   d.OfficialRate,
		Rate:           d.Rate,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		CurrencyCode:   StringValue(m.CurrencyCode),
		Date:           m.RateDate,
		Nominal:        m.Nominal,
		OfficialRate:   m.OfficialRate,
		Rate:           m.Rate,
		CreatedAt:      m.CreatedAt,
	}
}
