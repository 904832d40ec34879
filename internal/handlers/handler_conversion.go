package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/dto"
	"github.com/SscSPs/money_billing/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type conversionHandler struct {
	converter portssvc.RateConverterSvc
}

// RegisterConversionRoutes registers the display conversion endpoints.
func RegisterConversionRoutes(rg *gin.RouterGroup, converter portssvc.RateConverterSvc) {
	h := &conversionHandler{converter: converter}

	rg.GET("/conversions/min-amount", h.minAmount)
}

// minAmount godoc
// @Summary Convert a default-currency amount for display
// @Description Converts amount into the currency named by the caller's currency cookie.
// @Description Without a usable rate the amount is returned unchanged.
// @Tags conversions
// @Produce  json
// @Param   amount query string true "Amount in the default currency"
// @Param   asOf query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.MinAmountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /conversions/min-amount [get]
func (h *conversionHandler) minAmount(c *gin.Context) {
	base, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a decimal number"})
		return
	}

	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	cc := middleware.GetClientContext(c)
	target := h.converter.ResolveTargetCurrency(cc)

	c.JSON(http.StatusOK, dto.MinAmountResponse{
		BaseAmount:      base,
		Amount:          h.converter.ConvertMinAmount(c.Request.Context(), base, target, asOf),
		CurrencyCode:    target,
		CurrencySymbol:  h.converter.CurrencySymbol(cc),
		DefaultCurrency: h.converter.DefaultCurrency(),
	})
}
