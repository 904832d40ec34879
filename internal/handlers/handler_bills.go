package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/dto"
	"github.com/SscSPs/money_billing/internal/middleware"
	"github.com/SscSPs/money_billing/internal/utils"
	"github.com/SscSPs/money_billing/internal/utils/export"
	"github.com/gin-gonic/gin"
)

// billsHandler serves the bill listing.
type billsHandler struct {
	accountService portssvc.AccountSvcFacade
	converter      portssvc.RateConverterSvc
}

// RegisterBillRoutes registers the bill listing and its spreadsheet export.
// Both list every user's bills and require authentication.
func RegisterBillRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, converter portssvc.RateConverterSvc, auth gin.HandlerFunc) {
	h := &billsHandler{accountService: accountService, converter: converter}

	bills := rg.Group("/bills", auth)
	{
		bills.GET("", h.listBills)
		bills.GET("/export", h.exportBills)
	}
}

// loadPage fetches one page and converts every row for the caller's currency.
// On failure the response has already been written.
func (h *billsHandler) loadPage(c *gin.Context, logger *slog.Logger) (*dto.ListBillsResponse, bool) {
	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListBills", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return nil, false
	}

	page, err := h.accountService.ListBills(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list bills")
		return nil, false
	}

	return &dto.ListBillsResponse{
		Tab:       dto.BillsTab,
		Bills:     h.toBillResponses(c.Request.Context(), middleware.GetClientContext(c), page.Accounts),
		NextToken: page.NextToken,
	}, true
}

func (h *billsHandler) toBillResponses(ctx context.Context, cc domain.ClientContext, accounts []domain.Account) []dto.BillResponse {
	target := h.converter.ResolveTargetCurrency(cc)
	symbol := h.converter.CurrencySymbol(cc)

	bills := make([]dto.BillResponse, len(accounts))
	for i := range accounts {
		minAmount := h.converter.MinAmountFor(ctx, cc, &accounts[i])
		bills[i] = dto.BillResponse{
			AccountResponse: dto.ToAccountResponse(&accounts[i]),
			MinAmount:       minAmount,
			MinAmountLabel:  utils.FormatWithCurrencyPrecision(minAmount, target),
			CurrencySymbol:  symbol,
		}
	}
	return bills
}

// listBills godoc
// @Summary List bills
// @Description Lists billing accounts, newest bill date first, with minimum amounts converted
// @Description into the currency named by the caller's currency cookie.
// @Tags bills
// @Produce  json
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   nextToken query string false "Token from the previous page"
// @Param   status query string false "Status filter (UNKNOWN, BILLED, PAID, CANCELLED)"
// @Param   userID query string false "User filter"
// @Success 200 {object} dto.ListBillsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list bills"
// @Security BearerAuth
// @Router /bills [get]
func (h *billsHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, ok := h.loadPage(c, logger)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, resp)
}

// exportBills godoc
// @Summary Export bills as a spreadsheet
// @Description Same rows and filters as the listing, rendered as an XLSX workbook.
// @Description The next page token is returned in the X-Next-Token header.
// @Tags bills
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   nextToken query string false "Token from the previous page"
// @Param   status query string false "Status filter"
// @Param   userID query string false "User filter"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to export bills"
// @Security BearerAuth
// @Router /bills/export [get]
func (h *billsHandler) exportBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, ok := h.loadPage(c, logger)
	if !ok {
		return
	}

	f, err := export.BillsWorkbook(resp.Bills)
	if err != nil {
		logger.Error("Failed to build bills workbook", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export bills"})
		return
	}
	defer f.Close()

	if resp.NextToken != nil {
		c.Header("X-Next-Token", *resp.NextToken)
	}
	c.Header("Content-Type", export.XLSXContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.xlsx\"", dto.BillsTab, time.Now().UTC().Format("20060102")))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to write bills workbook", slog.String("error", err.Error()))
	}
}
