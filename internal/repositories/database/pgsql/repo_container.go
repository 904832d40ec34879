package pgsql

import (
	portsrepo "github.com/SscSPs/money_billing/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the relational repositories. The document
// link store lives outside PostgreSQL and is attached by the caller.
func NewRepositoryProvider(db Querier) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(db),
		ExchangeRateRepo: newPgxExchangeRateRepository(db),
		TransactionRepo:  newPgxTransactionRepository(db),
		AccountRepo:      newPgxAccountRepository(db),
	}
}
