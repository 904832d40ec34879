package utils

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const fallbackScale = 2

// CurrencyScale returns the number of fractional digits customary for an ISO
// currency code. Unknown codes get two digits.
// Example: USD -> 2, JPY -> 0
func CurrencyScale(code string) int32 {
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return fallbackScale
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// FormatWithCurrencyPrecision formats an amount with the customary precision of a currency.
// Example: amount 12.3456 with USD returns "12.35"
// Example: amount 12.3456 with JPY returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, code string) string {
	return amount.StringFixed(CurrencyScale(code))
}
