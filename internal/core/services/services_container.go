package services

import (
	portsrepo "github.com/SscSPs/money_billing/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/platform/config"
	"golang.org/x/text/language"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, events portssvc.StatusEventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The resolver goes first: the ledger services resolve references through it.
	container.References = NewRepositoryReferenceResolver(repos)

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo,
		WithExchangeRateLocation(cfg.RateLocation),
	)

	lang, err := language.Parse(cfg.DefaultLanguage)
	if err != nil {
		lang = language.English
	}
	container.Converter = NewRateConverter(
		repos.ExchangeRateRepo,
		repos.CurrencyRepo,
		WithDefaultCurrency(cfg.DefaultCurrency),
		WithOfficialRate(cfg.OfficialRate),
		WithDisplayLanguage(lang),
		WithRateLocation(cfg.RateLocation),
	)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		WithTransactionCurrencyRepository(repos.CurrencyRepo),
		WithTransactionResolver(container.References),
		WithTransactionEvents(events),
	)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithCurrencyRepository(repos.CurrencyRepo),
		WithDocumentRepository(repos.DocumentRepo),
		WithAccountResolver(container.References),
		WithAccountEvents(events),
		WithBillsPageSize(cfg.BillsPageSize),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade     = (*currencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)
	_ portssvc.RateConverterSvc      = (*rateConverter)(nil)
	_ portssvc.TransactionSvcFacade  = (*transactionService)(nil)
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.ReferenceResolverSvc  = (*referenceResolver)(nil)
)
