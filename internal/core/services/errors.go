package services

import (
	"errors"
	"fmt"

	"github.com/SscSPs/money_billing/internal/apperrors"
	"github.com/SscSPs/money_billing/internal/core/domain"
)

func wrapCurrencyLookupErr(code string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
	}
	return fmt.Errorf("failed to validate currency '%s': %w", code, err)
}

func validateRef(field string, ref domain.Ref) error {
	if ref.IsZero() {
		return nil
	}
	if !ref.Kind.IsValid() || ref.ID == "" {
		return fmt.Errorf("%w: %s must name a known kind and an id", apperrors.ErrValidation, field)
	}
	return nil
}
