package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/dto"
	"github.com/SscSPs/money_billing/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to the transaction ledger.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// RegisterTransactionRoutes registers ledger routes. Every route acts for the authenticated user.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, auth gin.HandlerFunc) {
	h := &transactionHandler{transactionService: transactionService}

	txs := rg.Group("/transactions", auth)
	{
		txs.POST("", h.createTransaction)
		txs.GET("", h.listTransactions)
		txs.GET("/:transactionID", h.getTransaction)
		txs.PATCH("/:transactionID/status", h.updateTransactionStatus)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records a money movement for the authenticated user. Status starts as UNKNOWN.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate transaction"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created", slog.String("transaction_id", tx.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx))
}

// listTransactions godoc
// @Summary List my transactions
// @Description Lists the authenticated user's transactions, newest first
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   offset query int false "Rows to skip" minimum(0)
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txs, err := h.transactionService.ListTransactionsByUser(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txs))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction. With resolve=true its actor and target are loaded too.
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   resolve query bool false "Load referenced entities"
// @Success 200 {object} dto.TransactionDetailResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")
	logger = logger.With(slog.String("transaction_id", transactionID))

	tx, err := h.transactionService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	resp := dto.TransactionDetailResponse{TransactionResponse: dto.ToTransactionResponse(tx)}
	if c.Query("resolve") == "true" {
		if resp.ActorEntity, err = h.transactionService.ResolveActor(c.Request.Context(), tx); err != nil {
			respondServiceError(c, logger, err, "Failed to resolve transaction actor")
			return
		}
		if resp.TargetEntity, err = h.transactionService.ResolveTarget(c.Request.Context(), tx); err != nil {
			respondServiceError(c, logger, err, "Failed to resolve transaction target")
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}

// updateTransactionStatus godoc
// @Summary Change a transaction's status
// @Description Applies a lifecycle transition. Transitions not allowed from the current status are rejected.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   status body dto.UpdateTransactionStatusRequest true "New status"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transition not allowed or concurrent change"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID}/status [patch]
func (h *transactionHandler) updateTransactionStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransactionStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID), slog.String("user_id", userID))

	tx, err := h.transactionService.UpdateTransactionStatus(c.Request.Context(), transactionID, req.Status, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update transaction")
		return
	}

	logger.Info("Transaction status changed", slog.String("status", tx.Status.String()))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}
