package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/money_billing/internal/core/domain"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/dto"
	"github.com/SscSPs/money_billing/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to billing accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// RegisterAccountRoutes registers billing account routes. Writes require auth.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, auth gin.HandlerFunc) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", auth, h.createAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PATCH("/:accountID/status", auth, h.updateAccountStatus)
		accounts.GET("/:accountID/docs", h.listDocs)
		accounts.POST("/:accountID/docs", auth, h.attachDocument)
	}
}

// createAccount godoc
// @Summary Issue a bill
// @Description Creates a billing account. Dates default to today and the user may be left unassigned.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get a billing account
// @Description Retrieves an account. With resolve=true its target is loaded too.
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   resolve query bool false "Load the referenced target"
// @Success 200 {object} dto.AccountDetailResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("account_id", accountID))

	account, err := h.accountService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve account")
		return
	}

	resp := dto.AccountDetailResponse{AccountResponse: dto.ToAccountResponse(account)}
	if c.Query("resolve") == "true" {
		if resp.TargetEntity, err = h.accountService.ResolveTarget(c.Request.Context(), account); err != nil {
			respondServiceError(c, logger, err, "Failed to resolve account target")
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}

// updateAccountStatus godoc
// @Summary Change a billing account's status
// @Description Applies a lifecycle transition. Attached documents are unaffected.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   status body dto.UpdateAccountStatusRequest true "New status"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Transition not allowed or concurrent change"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{accountID}/status [patch]
func (h *accountHandler) updateAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.UpdateAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccountStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", accountID), slog.String("user_id", userID))

	account, err := h.accountService.UpdateAccountStatus(c.Request.Context(), accountID, req.Status, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update account")
		return
	}

	logger.Info("Account status changed", slog.String("status", account.Status.String()))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listDocs godoc
// @Summary List an account's documents
// @Description Returns the documents attached to the account, oldest first
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list documents"
// @Router /accounts/{accountID}/docs [get]
func (h *accountHandler) listDocs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	docs, err := h.accountService.Docs(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponses(docs))
}

// attachDocument godoc
// @Summary Attach a document to an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   document body dto.AttachDocumentRequest true "Document link"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Document already attached"
// @Failure 500 {object} map[string]string "Failed to attach document"
// @Security BearerAuth
// @Router /accounts/{accountID}/docs [post]
func (h *accountHandler) attachDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AttachDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", accountID), slog.String("document_id", req.DocumentID))

	doc, err := h.accountService.AttachDocument(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to attach document")
		return
	}

	logger.Info("Document attached")
	c.JSON(http.StatusCreated, dto.ToDocumentResponses([]domain.DocumentRef{*doc})[0])
}
