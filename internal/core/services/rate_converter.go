package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
	portsrepo "github.com/SscSPs/money_billing/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// symbols maps the currencies that have a widely recognised glyph.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"JPY": "¥",
	"GBP": "£",
}

// defaultCurrencyWords holds the localised word shown for the default
// currency, keyed by its code.
var defaultCurrencyWords = map[string]map[language.Tag]string{
	"RUB": {
		language.English: "Rub",
		language.Russian: "руб.",
	},
}

type rateConverter struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateReader
	currencyRepo    portsrepo.CurrencyReader
	defaultCurrency string
	useOfficial     bool
	printer         *message.Printer
}

// ConverterOption configures the rate converter.
type ConverterOption func(*rateConverter)

// WithDefaultCurrency sets the base currency amounts are expressed in.
func WithDefaultCurrency(code string) ConverterOption {
	return func(c *rateConverter) {
		c.defaultCurrency = strings.ToUpper(strings.TrimSpace(code))
	}
}

// WithOfficialRate selects the official rate instead of the market rate.
func WithOfficialRate(useOfficial bool) ConverterOption {
	return func(c *rateConverter) {
		c.useOfficial = useOfficial
	}
}

// WithDisplayLanguage sets the language of the default-currency word.
func WithDisplayLanguage(tag language.Tag) ConverterOption {
	return func(c *rateConverter) {
		c.printer = newWordPrinter(tag)
	}
}

// WithRateLocation sets the time zone whose calendar day selects today's rate.
func WithRateLocation(loc *time.Location) ConverterOption {
	return func(c *rateConverter) {
		c.RateLocation = loc
	}
}

// WithConverterClock overrides time.Now.
func WithConverterClock(now func() time.Time) ConverterOption {
	return func(c *rateConverter) {
		c.Now = now
	}
}

// NewRateConverter creates the converter. The default currency is RUB
// and the market rate is used unless overridden.
func NewRateConverter(rateRepo portsrepo.ExchangeRateReader, currencyRepo portsrepo.CurrencyReader, options ...ConverterOption) portssvc.RateConverterSvc {
	c := &rateConverter{
		rateRepo:        rateRepo,
		currencyRepo:    currencyRepo,
		defaultCurrency: "RUB",
	}
	for _, option := range options {
		option(c)
	}
	if c.printer == nil {
		c.printer = newWordPrinter(language.English)
	}
	return c
}

func newWordPrinter(tag language.Tag) *message.Printer {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for code, words := range defaultCurrencyWords {
		for lang, word := range words {
			// SetString only fails for malformed messages; the words are literals.
			_ = builder.SetString(lang, code, word)
		}
	}
	return message.NewPrinter(tag, message.Catalog(builder))
}

func (c *rateConverter) DefaultCurrency() string {
	return c.defaultCurrency
}

func (c *rateConverter) ResolveTargetCurrency(cc domain.ClientContext) string {
	if code := normalizeCode(cc.Currency); code != "" {
		return code
	}
	return c.defaultCurrency
}

func (c *rateConverter) LatestRate(ctx context.Context, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	day := c.RateDay()
	if !asOf.IsZero() {
		day = domain.TruncateToDate(asOf)
	}
	rate, err := c.rateRepo.FindLatestRate(ctx, strings.ToUpper(currencyCode), day)
	if err != nil {
		return nil, fmt.Errorf("latest rate for %s: %w", currencyCode, err)
	}
	return rate, nil
}

// quote returns the selected rate of code and its nominal. ok is false when
// no usable rate exists; the reason is logged.
func (c *rateConverter) quote(ctx context.Context, code string, asOf time.Time) (rate, nominal decimal.Decimal, ok bool) {
	unusable := func(reason string, args ...any) (decimal.Decimal, decimal.Decimal, bool) {
		args = append(args, slog.String("currency_code", code), slog.String("reason", reason))
		c.LogDebug(ctx, "Conversion fell back to the unconverted amount", args...)
		return decimal.Zero, decimal.Zero, false
	}

	if _, err := c.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
		return unusable("currency lookup failed", slog.String("error", err.Error()))
	}

	latest, err := c.LatestRate(ctx, code, asOf)
	if err != nil {
		return unusable("rate lookup failed", slog.String("error", err.Error()))
	}

	selected := latest.SelectedRate(c.useOfficial)
	if !selected.IsPositive() {
		return unusable("selected rate is not positive", slog.String("rate_id", latest.ExchangeRateID))
	}

	n := int64(latest.Nominal)
	if n <= 0 {
		n = 1
	}
	return selected, decimal.NewFromInt(n), true
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ConvertMinAmount never fails. Any problem resolving the currency or its
// rate is logged and base is returned unchanged.
func (c *rateConverter) ConvertMinAmount(ctx context.Context, base decimal.Decimal, currencyCode string, asOf time.Time) decimal.Decimal {
	code := normalizeCode(currencyCode)
	if code == "" || code == c.defaultCurrency {
		return base
	}

	rate, nominal, ok := c.quote(ctx, code, asOf)
	if !ok {
		return base
	}
	return base.Mul(nominal).Div(rate)
}

// MinAmountFor converts item from its own currency into the caller's.
// Amounts in a third currency go through the default currency:
// amount * rate_src / nominal_src, then * nominal_tgt / rate_tgt.
// When either rate is unusable the stored amount is returned unchanged.
func (c *rateConverter) MinAmountFor(ctx context.Context, cc domain.ClientContext, item domain.HasMinimumAmount) decimal.Decimal {
	if item == nil {
		return decimal.Zero
	}

	amount := item.MinCurrentAmount()
	source := normalizeCode(item.MinAmountCurrency())
	target := c.ResolveTargetCurrency(cc)
	var today time.Time // zero selects the current rate day

	if source == "" || source == c.defaultCurrency {
		return c.ConvertMinAmount(ctx, amount, target, today)
	}
	if source == target {
		return amount
	}

	srcRate, srcNominal, ok := c.quote(ctx, source, today)
	if !ok {
		return amount
	}
	inDefault := amount.Mul(srcRate).Div(srcNominal)
	if target == c.defaultCurrency {
		return inDefault
	}

	tgtRate, tgtNominal, ok := c.quote(ctx, target, today)
	if !ok {
		return amount
	}
	return inDefault.Mul(tgtNominal).Div(tgtRate)
}

func (c *rateConverter) CurrencySymbol(cc domain.ClientContext) string {
	if symbol, ok := symbols[c.ResolveTargetCurrency(cc)]; ok {
		return symbol
	}
	return c.printer.Sprintf(message.Key(c.defaultCurrency, c.defaultCurrency))
}
