package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/money_billing/internal/apperrors"
	"github.com/SscSPs/money_billing/internal/core/domain"
	portsrepo "github.com/SscSPs/money_billing/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
)

type referenceResolver struct {
	mu      sync.RWMutex
	lookups map[domain.EntityKind]portssvc.EntityLookupFunc
}

// NewReferenceResolver creates an empty resolver.
func NewReferenceResolver() portssvc.ReferenceResolverSvc {
	return &referenceResolver{lookups: make(map[domain.EntityKind]portssvc.EntityLookupFunc)}
}

// NewRepositoryReferenceResolver creates a resolver for every kind the
// repositories can load. KindUser is left for the identity provider to register.
func NewRepositoryReferenceResolver(repos portsrepo.RepositoryProvider) portssvc.ReferenceResolverSvc {
	r := NewReferenceResolver()
	if repos.CurrencyRepo != nil {
		r.Register(domain.KindCurrency, func(ctx context.Context, id string) (domain.Entity, error) {
			return asEntity(repos.CurrencyRepo.FindCurrencyByCode(ctx, id))
		})
	}
	if repos.ExchangeRateRepo != nil {
		r.Register(domain.KindExchangeRate, func(ctx context.Context, id string) (domain.Entity, error) {
			return asEntity(repos.ExchangeRateRepo.FindExchangeRateByID(ctx, id))
		})
	}
	if repos.TransactionRepo != nil {
		r.Register(domain.KindTransaction, func(ctx context.Context, id string) (domain.Entity, error) {
			return asEntity(repos.TransactionRepo.FindTransactionByID(ctx, id))
		})
	}
	if repos.AccountRepo != nil {
		r.Register(domain.KindAccount, func(ctx context.Context, id string) (domain.Entity, error) {
			return asEntity(repos.AccountRepo.FindAccountByID(ctx, id))
		})
	}
	return r
}

// asEntity keeps a nil pointer from becoming a non-nil interface.
func asEntity[T domain.Entity](v *T, err error) (domain.Entity, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperrors.ErrNotFound
	}
	return *v, nil
}

func (r *referenceResolver) Register(kind domain.EntityKind, lookup portssvc.EntityLookupFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups[kind] = lookup
}

// Resolve loads the referenced entity. A zero Ref resolves to nil without error.
func (r *referenceResolver) Resolve(ctx context.Context, ref domain.Ref) (domain.Entity, error) {
	if ref.IsZero() {
		return nil, nil
	}
	if !ref.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown entity kind %q", apperrors.ErrValidation, ref.Kind)
	}
	if ref.ID == "" {
		return nil, fmt.Errorf("%w: reference to %s has no id", apperrors.ErrValidation, ref.Kind)
	}

	r.mu.RLock()
	lookup, ok := r.lookups[ref.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no resolver registered for %s", apperrors.ErrNotFound, ref.Kind)
	}

	entity, err := lookup(ctx, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	return entity, nil
}
