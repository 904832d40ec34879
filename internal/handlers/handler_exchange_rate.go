package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/dto"
	"github.com/SscSPs/money_billing/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// RegisterExchangeRateRoutes registers routes related to exchange rates.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, auth gin.HandlerFunc) {
	h := &exchangeRateHandler{exchangeRateService: exchangeRateService}

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", auth, h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/:code/latest", h.getLatestRate)
	}
}

// parseAsOf reads an optional YYYY-MM-DD query parameter. Missing means "now".
func parseAsOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Time{}, true
	}
	asOf, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be formatted as YYYY-MM-DD"})
		return time.Time{}, false
	}
	return asOf, true
}

// createExchangeRate godoc
// @Summary Record an exchange rate
// @Description Inserts a dated quotation of a currency against the default currency
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   exchangeRate body dto.CreateExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Rate already recorded"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("creator_user_id", creatorUserID),
		slog.String("currency_code", req.CurrencyCode),
	)

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate created", slog.String("exchange_rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Lists rates, newest date first, then by currency code
// @Tags exchange-rates
// @Produce  json
// @Param   currency query string false "Currency code filter"
// @Param   asOf query string false "Only rates dated on or before (YYYY-MM-DD)"
// @Param   limit query int false "Maximum rows" minimum(1) maximum(500)
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListExchangeRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getLatestRate godoc
// @Summary Get the applicable rate for a currency
// @Description Returns the newest rate dated on or before asOf (default today)
// @Tags exchange-rates
// @Produce  json
// @Param   code path string true "Currency Code (3 letters)"
// @Param   asOf query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No rate"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /exchange-rates/{code}/latest [get]
func (h *exchangeRateHandler) getLatestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := strings.ToUpper(c.Param("code"))
	if len(code) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return
	}

	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	rate, err := h.exchangeRateService.GetLatestRate(c.Request.Context(), code, asOf)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("currency_code", code)), err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
