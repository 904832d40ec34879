package dto

import (
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BillsTab marks the bill listing for navigation highlighting.
const BillsTab = "bills"

// CreateAccountRequest defines the data needed to issue a bill.
type CreateAccountRequest struct {
	UserID       string               `json:"userID" binding:"omitempty,max=255"` // Optional: unassigned when empty
	Amount       decimal.Decimal      `json:"amount" binding:"required"`
	CurrencyCode string               `json:"currencyCode" binding:"omitempty,currency_code"`
	Date         *time.Time           `json:"date"`       // Defaults to today
	DateBilled   *time.Time           `json:"dateBilled"` // Defaults to today
	Status       domain.AccountStatus `json:"status"`     // UNKNOWN or BILLED; defaults to UNKNOWN
	Target       *RefRequest          `json:"target"`
	Description  string               `json:"description"`
}

// UpdateAccountStatusRequest moves an account through its lifecycle.
type UpdateAccountStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required"`
}

// AttachDocumentRequest links a document to an account.
type AttachDocumentRequest struct {
	DocumentID string `json:"documentID" binding:"required"`
	Title      string `json:"title" binding:"required,max=255"`
	URL        string `json:"url" binding:"omitempty,url"`
}

// ListBillsParams holds the query parameters of the bill listing.
type ListBillsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
	Status    string  `form:"status"`
	UserID    string  `form:"userID"`
}

// AccountResponse defines the data returned for a billing account.
type AccountResponse struct {
	AccountID     string               `json:"accountID"`
	UserID        string               `json:"userID,omitempty"`
	Date          string               `json:"date"`
	DateBilled    string               `json:"dateBilled"`
	Status        domain.AccountStatus `json:"status"`
	Target        *RefResponse         `json:"target,omitempty"`
	Description   string               `json:"description"`
	Amount        decimal.Decimal      `json:"amount"`
	CurrencyCode  string               `json:"currencyCode,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		UserID:        a.UserID,
		Date:          a.Date.Format(time.DateOnly),
		DateBilled:    a.DateBilled.Format(time.DateOnly),
		Status:        a.Status,
		Target:        ToRefResponse(a.Target),
		Description:   a.Description,
		Amount:        a.Amount,
		CurrencyCode:  a.CurrencyCode,
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

// BillResponse is one row of the bill listing.
type BillResponse struct {
	AccountResponse
	MinAmount      decimal.Decimal `json:"minAmount"`      // Amount converted for the caller
	MinAmountLabel string          `json:"minAmountLabel"` // MinAmount rounded for display
	CurrencySymbol string          `json:"currencySymbol"`
}

// ListBillsResponse is a page of the bill listing.
type ListBillsResponse struct {
	Tab       string         `json:"tab"`
	Bills     []BillResponse `json:"bills"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// DocumentResponse defines the data returned for an attached document.
type DocumentResponse struct {
	DocumentID string    `json:"documentID"`
	Title      string    `json:"title"`
	URL        string    `json:"url,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy"`
}

// ToDocumentResponses converts document links to DTOs.
func ToDocumentResponses(docs []domain.DocumentRef) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = DocumentResponse{
			DocumentID: d.DocumentID,
			Title:      d.Title,
			URL:        d.URL,
			CreatedAt:  d.CreatedAt,
			CreatedBy:  d.CreatedBy,
		}
	}
	return res
}

// AccountDetailResponse is an account with its target loaded.
type AccountDetailResponse struct {
	AccountResponse
	TargetEntity domain.Entity `json:"targetEntity,omitempty"`
}
