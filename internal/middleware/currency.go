package middleware

import (
	"log/slog"
	"strings"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"
)

// ClientCurrency reads the caller's preferred currency from a cookie and
// stores it as a domain.ClientContext for handlers to pass on explicitly.
// Codes that are not ISO 4217 are ignored.
func ClientCurrency(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cc domain.ClientContext

		if raw, err := c.Cookie(cookieName); err == nil && raw != "" {
			code := strings.ToUpper(strings.TrimSpace(raw))
			if unit, err := currency.ParseISO(code); err == nil {
				cc.Currency = unit.String()
			} else {
				GetLoggerFromCtx(c.Request.Context()).Debug("Ignoring unrecognised currency cookie",
					slog.String("cookie", cookieName),
					slog.String("value", raw))
			}
		}

		c.Set(string(clientContextKey), cc)
		c.Next()
	}
}
