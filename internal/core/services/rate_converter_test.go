package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/money_billing/internal/apperrors"
	"github.com/SscSPs/money_billing/internal/core/domain"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"
)

type RateConverterTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	now              time.Time
	day              time.Time
	converter        portssvc.RateConverterSvc
}

func (suite *RateConverterTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	suite.day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.converter = suite.newConverter()
}

func (suite *RateConverterTestSuite) newConverter(options ...services.ConverterOption) portssvc.RateConverterSvc {
	options = append([]services.ConverterOption{services.WithConverterClock(fixedClock(suite.now))}, options...)
	return services.NewRateConverter(suite.mockRateRepo, suite.mockCurrencyRepo, options...)
}

func (suite *RateConverterTestSuite) usdRate() *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ExchangeRateID: "rate-usd",
		CurrencyCode:   "USD",
		Date:           suite.day,
		Nominal:        1,
		OfficialRate:   decimal.NewFromFloat(60.0),
		Rate:           decimal.NewFromFloat(61.0),
	}
}

func (suite *RateConverterTestSuite) expectUSD(rate *domain.ExchangeRate, err error) {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "USD", suite.day).Return(rate, err).Once()
}

func (suite *RateConverterTestSuite) TestResolveTargetCurrency() {
	suite.Equal("RUB", suite.converter.ResolveTargetCurrency(domain.ClientContext{}))
	suite.Equal("USD", suite.converter.ResolveTargetCurrency(domain.ClientContext{Currency: " usd "}))
	suite.Equal("RUB", suite.converter.DefaultCurrency())
}

func (suite *RateConverterTestSuite) TestConvertMinAmount_UsesMarketRate() {
	suite.expectUSD(suite.usdRate(), nil)

	got := suite.converter.ConvertMinAmount(context.Background(), decimal.NewFromInt(100), "USD", suite.day)

	suite.True(got.Round(4).Equal(decimal.RequireFromString("1.6393")), "got %s", got)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateConverterTestSuite) TestConvertMinAmount_UsesOfficialRateWhenConfigured() {
	converter := suite.newConverter(services.WithOfficialRate(true))
	suite.expectUSD(suite.usdRate(), nil)

	got := converter.ConvertMinAmount(context.Background(), decimal.NewFromInt(120), "USD", suite.day)

	suite.True(got.Equal(decimal.NewFromInt(2)), "got %s", got)
}

func (suite *RateConverterTestSuite) TestConvertMinAmount_AppliesNominal() {
	rate := suite.usdRate()
	rate.Nominal = 100
	rate.Rate = decimal.NewFromInt(50)
	suite.expectUSD(rate, nil)

	got := suite.converter.ConvertMinAmount(context.Background(), decimal.NewFromInt(10), "USD", suite.day)

	suite.True(got.Equal(decimal.NewFromInt(20)), "got %s", got)
}

func (suite *RateConverterTestSuite) TestConvertMinAmount_ZeroAsOfMeansNow() {
	suite.expectUSD(suite.usdRate(), nil)

	got := suite.converter.ConvertMinAmount(context.Background(), decimal.NewFromInt(61), "USD", time.Time{})

	suite.True(got.Equal(decimal.NewFromInt(1)), "got %s", got)
}

func (suite *RateConverterTestSuite) TestConvertMinAmount_FallsBack() {
	base := decimal.NewFromInt(100)
	ctx := context.Background()

	suite.Run("empty code", func() {
		suite.True(suite.converter.ConvertMinAmount(ctx, base, "", suite.day).Equal(base))
	})

	suite.Run("default currency", func() {
		suite.True(suite.converter.ConvertMinAmount(ctx, base, "rub", suite.day).Equal(base))
	})

	suite.Run("unknown currency", func() {
		suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "CHF").Return(nil, apperrors.ErrNotFound).Once()
		suite.True(suite.converter.ConvertMinAmount(ctx, base, "CHF", suite.day).Equal(base))
	})

	suite.Run("no rate", func() {
		suite.expectUSD(nil, apperrors.ErrNotFound)
		suite.True(suite.converter.ConvertMinAmount(ctx, base, "USD", suite.day).Equal(base))
	})

	suite.Run("store failure", func() {
		suite.expectUSD(nil, assert.AnError)
		suite.True(suite.converter.ConvertMinAmount(ctx, base, "USD", suite.day).Equal(base))
	})

	suite.Run("zero rate", func() {
		rate := suite.usdRate()
		rate.Rate = decimal.Zero
		suite.expectUSD(rate, nil)
		suite.True(suite.converter.ConvertMinAmount(ctx, base, "USD", suite.day).Equal(base))
	})
}

func (suite *RateConverterTestSuite) TestMinAmountFor_UsesClientCurrency() {
	suite.expectUSD(suite.usdRate(), nil)
	account := domain.Account{Money: domain.Money{Amount: decimal.NewFromInt(122)}}

	got := suite.converter.MinAmountFor(context.Background(), domain.ClientContext{Currency: "USD"}, account)

	suite.True(got.Equal(decimal.NewFromInt(2)), "got %s", got)
}

func (suite *RateConverterTestSuite) TestMinAmountFor_NoPreferenceKeepsAmount() {
	tx := domain.Transaction{Money: domain.Money{Amount: decimal.NewFromInt(122)}}

	got := suite.converter.MinAmountFor(context.Background(), domain.ClientContext{}, tx)

	suite.True(got.Equal(decimal.NewFromInt(122)))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateConverterTestSuite) expectRate(code string, nominal int16, rate string) {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, code).Return(&domain.Currency{CurrencyCode: code}, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, code, suite.day).Return(&domain.ExchangeRate{
		ExchangeRateID: "rate-" + code,
		CurrencyCode:   code,
		Date:           suite.day,
		Nominal:        nominal,
		OfficialRate:   decimal.RequireFromString(rate),
		Rate:           decimal.RequireFromString(rate),
	}, nil).Once()
}

func billIn(amount int64, code string) domain.Account {
	return domain.Account{Money: domain.Money{Amount: decimal.NewFromInt(amount), CurrencyCode: code}}
}

func (suite *RateConverterTestSuite) TestMinAmountFor_ExplicitDefaultCurrency() {
	suite.expectUSD(suite.usdRate(), nil)

	got := suite.converter.MinAmountFor(context.Background(), domain.ClientContext{Currency: "USD"}, billIn(122, "rub"))

	suite.True(got.Equal(decimal.NewFromInt(2)), "got %s", got)
}

func (suite *RateConverterTestSuite) TestMinAmountFor_SameCurrencyAsClient() {
	got := suite.converter.MinAmountFor(context.Background(), domain.ClientContext{Currency: "USD"}, billIn(100, "USD"))

	suite.True(got.Equal(decimal.NewFromInt(100)), "got %s", got)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateConverterTestSuite) TestMinAmountFor_ForeignBillForDefaultClient() {
	suite.expectUSD(suite.usdRate(), nil)

	got := suite.converter.MinAmountFor(context.Background(), domain.ClientContext{}, billIn(100, "USD"))

	suite.True(got.Equal(decimal.NewFromInt(6100)), "got %s", got)
}

func (suite *RateConverterTestSuite) TestMinAmountFor_CrossCurrencyThroughDefault() {
	ctx := context.Background()

	suite.Run("plain nominal", func() {
		suite.expectUSD(suite.usdRate(), nil)
		suite.expectRate("EUR", 1, "50")

		got := suite.converter.MinAmountFor(ctx, domain.ClientContext{Currency: "EUR"}, billIn(100, "USD"))

		suite.True(got.Equal(decimal.NewFromInt(122)), "got %s", got)
	})

	suite.Run("target quoted per hundred", func() {
		suite.expectUSD(suite.usdRate(), nil)
		suite.expectRate("JPY", 100, "40")

		got := suite.converter.MinAmountFor(ctx, domain.ClientContext{Currency: "JPY"}, billIn(100, "USD"))

		suite.True(got.Equal(decimal.NewFromInt(15250)), "got %s", got)
	})

	suite.Run("source quoted per hundred", func() {
		suite.expectRate("JPY", 100, "40")
		suite.expectUSD(suite.usdRate(), nil)

		got := suite.converter.MinAmountFor(ctx, domain.ClientContext{Currency: "USD"}, billIn(15250, "JPY"))

		suite.True(got.Equal(decimal.NewFromInt(100)), "got %s", got)
	})
}

func (suite *RateConverterTestSuite) TestMinAmountFor_CrossCurrencyFallsBack() {
	ctx := context.Background()

	suite.Run("no source rate", func() {
		suite.expectUSD(nil, apperrors.ErrNotFound)

		got := suite.converter.MinAmountFor(ctx, domain.ClientContext{Currency: "EUR"}, billIn(100, "USD"))

		suite.True(got.Equal(decimal.NewFromInt(100)), "got %s", got)
	})

	suite.Run("no target rate", func() {
		suite.expectUSD(suite.usdRate(), nil)
		suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "EUR").Return(nil, apperrors.ErrNotFound).Once()

		got := suite.converter.MinAmountFor(ctx, domain.ClientContext{Currency: "EUR"}, billIn(100, "USD"))

		suite.True(got.Equal(decimal.NewFromInt(100)), "got %s", got)
	})
}

func (suite *RateConverterTestSuite) TestLatestRate_TodayFollowsRateLocation() {
	lateEvening := time.Date(2024, 3, 14, 22, 30, 0, 0, time.UTC)
	msk := time.FixedZone("MSK", 3*60*60)
	converter := services.NewRateConverter(suite.mockRateRepo, suite.mockCurrencyRepo,
		services.WithConverterClock(fixedClock(lateEvening)),
		services.WithRateLocation(msk),
	)
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "USD", suite.day).Return(suite.usdRate(), nil).Once()

	rate, err := converter.LatestRate(context.Background(), "USD", time.Time{})

	suite.Require().NoError(err)
	suite.Equal("rate-usd", rate.ExchangeRateID)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateConverterTestSuite) TestCurrencySymbol() {
	suite.Equal("$", suite.converter.CurrencySymbol(domain.ClientContext{Currency: "USD"}))
	suite.Equal("€", suite.converter.CurrencySymbol(domain.ClientContext{Currency: "EUR"}))
	suite.Equal("¥", suite.converter.CurrencySymbol(domain.ClientContext{Currency: "JPY"}))
	suite.Equal("£", suite.converter.CurrencySymbol(domain.ClientContext{Currency: "GBP"}))
	suite.Equal("Rub", suite.converter.CurrencySymbol(domain.ClientContext{}))
	suite.Equal("Rub", suite.converter.CurrencySymbol(domain.ClientContext{Currency: "CHF"}))
}

func (suite *RateConverterTestSuite) TestCurrencySymbol_Localised() {
	ru := suite.newConverter(services.WithDisplayLanguage(language.Russian))
	suite.Equal("руб.", ru.CurrencySymbol(domain.ClientContext{}))
	suite.Equal("$", ru.CurrencySymbol(domain.ClientContext{Currency: "USD"}))
}

func (suite *RateConverterTestSuite) TestCurrencySymbol_OtherDefaultCurrencyShowsCode() {
	chf := suite.newConverter(services.WithDefaultCurrency("CHF"))
	suite.Equal("CHF", chf.CurrencySymbol(domain.ClientContext{}))
}

func TestRateConverterTestSuite(t *testing.T) {
	suite.Run(t, new(RateConverterTestSuite))
}
