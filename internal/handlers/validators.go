package handlers

import (
	"fmt"
	"strings"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"
)

// RegisterValidators installs the entity_kind and currency_code tags on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("entity_kind", validateEntityKind); err != nil {
		return fmt.Errorf("register entity_kind: %w", err)
	}
	if err := v.RegisterValidation("currency_code", validateCurrencyCode); err != nil {
		return fmt.Errorf("register currency_code: %w", err)
	}
	return nil
}

func validateEntityKind(fl validator.FieldLevel) bool {
	_, err := domain.ParseEntityKind(fl.Field().String())
	return err == nil
}

// Any letter case is accepted; services upper-case codes before storing them.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := strings.ToUpper(fl.Field().String())
	if len(code) != 3 {
		return false
	}
	unit, err := currency.ParseISO(code)
	return err == nil && unit.String() == code
}
