package utils_test

import (
	"testing"

	"github.com/SscSPs/money_billing/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCurrencyPrecision(t *testing.T) {
	amount := decimal.RequireFromString("12.3456")

	assert.Equal(t, "12.35", utils.FormatWithCurrencyPrecision(amount, "USD"))
	assert.Equal(t, "12", utils.FormatWithCurrencyPrecision(amount, "jpy"))
	assert.Equal(t, "12.35", utils.FormatWithCurrencyPrecision(amount, "not-a-code"))
}
