package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/money_billing/internal/core/domain"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
)

// publishStatusChange sends the event and only logs a failure: the stored
// row is authoritative and the caller's write has already succeeded.
func (s *BaseService) publishStatusChange(ctx context.Context, publisher portssvc.StatusEventPublisher, event domain.StatusChangedEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishStatusChanged(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish status change",
			slog.String("kind", string(event.Kind)),
			slog.String("entity_id", event.EntityID),
			slog.String("to", event.To))
	}
}

// validateCurrency checks an optional currency code against the registry.
func validateCurrency(ctx context.Context, lookup func(context.Context, string) (*domain.Currency, error), code string) (string, error) {
	if code == "" {
		return "", nil
	}
	normalized, err := NormalizeCurrencyCode(code)
	if err != nil {
		return "", err
	}
	if lookup == nil {
		return normalized, nil
	}
	if _, err := lookup(ctx, normalized); err != nil {
		return "", wrapCurrencyLookupErr(normalized, err)
	}
	return normalized, nil
}
