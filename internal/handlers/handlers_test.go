package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/money_billing/internal/apperrors"
	"github.com/SscSPs/money_billing/internal/core/domain"
	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
	"github.com/SscSPs/money_billing/internal/dto"
	"github.com/SscSPs/money_billing/internal/handlers"
	"github.com/SscSPs/money_billing/internal/middleware"
	"github.com/SscSPs/money_billing/internal/utils/export"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testUserID     = "user-1"
	currencyCookie = "currency"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	jwtSecret       string
	currencySvc     *MockCurrencyService
	exchangeRateSvc *MockExchangeRateService
	converter       *MockConverter
	transactionSvc  *MockTransactionService
	accountSvc      *MockAccountService
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.currencySvc = new(MockCurrencyService)
	suite.exchangeRateSvc = new(MockExchangeRateService)
	suite.converter = new(MockConverter)
	suite.transactionSvc = new(MockTransactionService)
	suite.accountSvc = new(MockAccountService)

	auth := middleware.AuthMiddleware(suite.jwtSecret)
	v1 := suite.router.Group("/api/v1", middleware.ClientCurrency(currencyCookie))
	handlers.RegisterCurrencyRoutes(v1, suite.currencySvc, auth)
	handlers.RegisterExchangeRateRoutes(v1, suite.exchangeRateSvc, auth)
	handlers.RegisterConversionRoutes(v1, suite.converter)
	handlers.RegisterTransactionRoutes(v1, suite.transactionSvc, auth)
	handlers.RegisterAccountRoutes(v1, suite.accountSvc, auth)
	handlers.RegisterBillRoutes(v1, suite.accountSvc, suite.converter, auth)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.currencySvc.AssertExpectations(suite.T())
	suite.exchangeRateSvc.AssertExpectations(suite.T())
	suite.converter.AssertExpectations(suite.T())
	suite.transactionSvc.AssertExpectations(suite.T())
	suite.accountSvc.AssertExpectations(suite.T())
}

// generateTestToken creates a signed bearer token for userID.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "billing-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

type requestOption func(*http.Request)

func (suite *HandlerTestSuite) withAuth() requestOption {
	token := suite.generateTestToken(testUserID)
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCurrency(code string) requestOption {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: currencyCookie, Value: code}) }
}

func (suite *HandlerTestSuite) do(method, url string, body any, opts ...requestOption) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](suite *HandlerTestSuite, w *httptest.ResponseRecorder) T {
	var v T
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// --- Currencies ---

func (suite *HandlerTestSuite) TestCreateCurrency_RequiresAuth() {
	w := suite.do(http.MethodPost, "/api/v1/currencies", gin.H{"currencyCode": "USD", "name": "Dollar"})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCreateCurrency_Success() {
	req := dto.CreateCurrencyRequest{CurrencyCode: "usd", Name: "Доллар", NameEn: "Dollar"}
	suite.currencySvc.On("CreateCurrency", mock.Anything, req, testUserID).
		Return(&domain.Currency{CurrencyCode: "USD", Name: "Доллар", NameEn: "Dollar"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/currencies", req, suite.withAuth())

	suite.Equal(http.StatusCreated, w.Code)
	resp := decodeBody[dto.CurrencyResponse](suite, w)
	suite.Equal("USD", resp.CurrencyCode)
}

func (suite *HandlerTestSuite) TestCreateCurrency_InvalidCode() {
	w := suite.do(http.MethodPost, "/api/v1/currencies",
		gin.H{"currencyCode": "DOLLAR", "name": "Dollar"}, suite.withAuth())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.currencySvc.AssertNotCalled(suite.T(), "CreateCurrency")
}

func (suite *HandlerTestSuite) TestGetCurrency_NotFound() {
	suite.currencySvc.On("GetCurrencyByCode", mock.Anything, "XTS").
		Return(nil, fmt.Errorf("currency XTS: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies/XTS", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListCurrencies() {
	suite.currencySvc.On("ListCurrencies", mock.Anything).
		Return([]domain.Currency{{CurrencyCode: "EUR"}, {CurrencyCode: "USD"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies", nil)

	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[[]dto.CurrencyResponse](suite, w)
	suite.Len(resp, 2)
}

// --- Exchange rates ---

func (suite *HandlerTestSuite) TestGetLatestRate() {
	asOf := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	suite.exchangeRateSvc.On("GetLatestRate", mock.Anything, "USD", asOf).
		Return(&domain.ExchangeRate{ExchangeRateID: "r1", CurrencyCode: "USD", Date: asOf, Nominal: 1, Rate: decimal.NewFromInt(61)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/usd/latest?asOf=2024-03-05", nil)

	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[dto.ExchangeRateResponse](suite, w)
	suite.Equal("2024-03-05", resp.Date)
	suite.True(resp.Rate.Equal(decimal.NewFromInt(61)))
}

func (suite *HandlerTestSuite) TestGetLatestRate_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/USD/latest?asOf=05.03.2024", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetLatestRate_NoRate() {
	suite.exchangeRateSvc.On("GetLatestRate", mock.Anything, "JPY", time.Time{}).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/JPY/latest", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListExchangeRates() {
	suite.exchangeRateSvc.On("ListExchangeRates", mock.Anything, mock.MatchedBy(func(p dto.ListExchangeRatesParams) bool {
		return p.CurrencyCode == "USD" && p.Limit == 10 && p.AsOf.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return([]domain.ExchangeRate{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates?currency=USD&asOf=2024-03-01&limit=10", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestCreateExchangeRate_Duplicate() {
	suite.exchangeRateSvc.On("CreateExchangeRate", mock.Anything, mock.AnythingOfType("dto.CreateExchangeRateRequest"), testUserID).
		Return(nil, fmt.Errorf("save: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/exchange-rates", gin.H{
		"currencyCode": "USD",
		"date":         "2024-03-05T00:00:00Z",
		"officialRate": "60.5",
		"rate":         "61",
	}, suite.withAuth())

	suite.Equal(http.StatusConflict, w.Code)
}

// --- Conversion ---

func (suite *HandlerTestSuite) TestMinAmount_UsesCookieCurrency() {
	cc := domain.ClientContext{Currency: "USD"}
	suite.converter.On("ResolveTargetCurrency", cc).Return("USD")
	suite.converter.On("CurrencySymbol", cc).Return("$").Once()
	suite.converter.On("DefaultCurrency").Return("RUB").Once()
	suite.converter.On("ConvertMinAmount", mock.Anything,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(100)) }),
		"USD", time.Time{}).
		Return(decimal.RequireFromString("1.6393")).Once()

	w := suite.do(http.MethodGet, "/api/v1/conversions/min-amount?amount=100", nil, withCurrency("usd"))

	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[dto.MinAmountResponse](suite, w)
	suite.Equal("USD", resp.CurrencyCode)
	suite.Equal("$", resp.CurrencySymbol)
	suite.Equal("RUB", resp.DefaultCurrency)
	suite.True(resp.Amount.Equal(decimal.RequireFromString("1.6393")))
}

func (suite *HandlerTestSuite) TestMinAmount_BadAmount() {
	w := suite.do(http.MethodGet, "/api/v1/conversions/min-amount?amount=lots", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Transactions ---

func (suite *HandlerTestSuite) TestTransactions_RequireAuth() {
	w := suite.do(http.MethodGet, "/api/v1/transactions", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTransaction_Duplicate() {
	suite.transactionSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
		return r.Amount.Equal(decimal.RequireFromString("10.5")) && r.CurrencyCode == "USD" &&
			r.Actor != nil && r.Actor.Kind == "user"
	}), testUserID).Return(nil, fmt.Errorf("save transaction: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", gin.H{
		"amount":       "10.5",
		"currencyCode": "USD",
		"actor":        gin.H{"kind": "user", "id": "user-2"},
	}, suite.withAuth())

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTransaction_UnknownKind() {
	w := suite.do(http.MethodPost, "/api/v1/transactions", gin.H{
		"amount": "10",
		"target": gin.H{"kind": "planet", "id": "mars"},
	}, suite.withAuth())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.transactionSvc.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *HandlerTestSuite) TestListTransactions() {
	suite.transactionSvc.On("ListTransactionsByUser", mock.Anything, testUserID, dto.ListTransactionsParams{Limit: 5, Offset: 10}).
		Return([]domain.Transaction{{TransactionID: "t1", UserID: testUserID}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=5&offset=10", nil, suite.withAuth())

	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[[]dto.TransactionResponse](suite, w)
	suite.Require().Len(resp, 1)
	suite.Equal("t1", resp[0].TransactionID)
}

func (suite *HandlerTestSuite) TestGetTransaction_Resolved() {
	tx := &domain.Transaction{
		TransactionID: "t1",
		UserID:        testUserID,
		Actor:         domain.NewRef(domain.KindCurrency, "USD"),
	}
	suite.transactionSvc.On("GetTransaction", mock.Anything, "t1").Return(tx, nil).Once()
	suite.transactionSvc.On("ResolveActor", mock.Anything, tx).Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.transactionSvc.On("ResolveTarget", mock.Anything, tx).Return(nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/t1?resolve=true", nil, suite.withAuth())

	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[map[string]any](suite, w)
	suite.Contains(resp, "actorEntity")
	suite.NotContains(resp, "targetEntity")
	suite.Equal(map[string]any{"kind": "currency", "id": "USD"}, resp["actor"])
}

func (suite *HandlerTestSuite) TestUpdateTransactionStatus_InvalidTransition() {
	suite.transactionSvc.On("UpdateTransactionStatus", mock.Anything, "t1", domain.TransactionCompleted, testUserID).
		Return(nil, fmt.Errorf("CANCELLED -> COMPLETED: %w", apperrors.ErrInvalidTransition)).Once()

	w := suite.do(http.MethodPatch, "/api/v1/transactions/t1/status", gin.H{"status": "COMPLETED"}, suite.withAuth())
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTransactionStatus_UnknownName() {
	w := suite.do(http.MethodPatch, "/api/v1/transactions/t1/status", gin.H{"status": "LOST"}, suite.withAuth())
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Accounts ---

func (suite *HandlerTestSuite) TestCreateAccount() {
	suite.accountSvc.On("CreateAccount", mock.Anything, mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
		return r.Status == domain.AccountBilled && r.Description == "March"
	}), testUserID).Return(&domain.Account{AccountID: "a1", Status: domain.AccountBilled}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", gin.H{
		"amount":      "100",
		"status":      "BILLED",
		"description": "March",
	}, suite.withAuth())

	suite.Equal(http.StatusCreated, w.Code)
	resp := decodeBody[dto.AccountResponse](suite, w)
	suite.Equal(domain.AccountBilled, resp.Status)
}

func (suite *HandlerTestSuite) TestDocs() {
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	suite.accountSvc.On("Docs", mock.Anything, "a1").Return([]domain.DocumentRef{
		{DocumentID: "d1", Title: "Invoice", CreatedAt: created},
		{DocumentID: "d2", Title: "Receipt", CreatedAt: created.Add(time.Hour)},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/a1/docs", nil)

	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[[]dto.DocumentResponse](suite, w)
	suite.Require().Len(resp, 2)
	suite.Equal("d1", resp[0].DocumentID)
}

func (suite *HandlerTestSuite) TestDocs_UnknownAccount() {
	suite.accountSvc.On("Docs", mock.Anything, "nope").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/nope/docs", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestAttachDocument() {
	req := dto.AttachDocumentRequest{DocumentID: "d1", Title: "Invoice"}
	suite.accountSvc.On("AttachDocument", mock.Anything, "a1", req, testUserID).
		Return(&domain.DocumentRef{DocumentID: "d1", Title: "Invoice", Owner: domain.NewRef(domain.KindAccount, "a1")}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/a1/docs", req, suite.withAuth())

	suite.Equal(http.StatusCreated, w.Code)
	resp := decodeBody[dto.DocumentResponse](suite, w)
	suite.Equal("d1", resp.DocumentID)
}

func (suite *HandlerTestSuite) TestAttachDocument_MissingTitle() {
	w := suite.do(http.MethodPost, "/api/v1/accounts/a1/docs", gin.H{"documentID": "d1"}, suite.withAuth())
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateAccountStatus_Conflict() {
	suite.accountSvc.On("UpdateAccountStatus", mock.Anything, "a1", domain.AccountPaid, testUserID).
		Return(nil, fmt.Errorf("update: %w", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPatch, "/api/v1/accounts/a1/status", gin.H{"status": "PAID"}, suite.withAuth())
	suite.Equal(http.StatusConflict, w.Code)
}

// --- Bills ---

func (suite *HandlerTestSuite) expectBillsPage(params dto.ListBillsParams, next *string) {
	cc := domain.ClientContext{Currency: "USD"}
	page := &portssvc.BillsPage{
		Accounts: []domain.Account{
			{AccountID: "a2", Status: domain.AccountBilled, Money: domain.Money{Amount: decimal.NewFromInt(100), CurrencyCode: "RUB"}},
			{AccountID: "a1", Status: domain.AccountPaid, Money: domain.Money{Amount: decimal.NewFromInt(50), CurrencyCode: "RUB"}},
		},
		NextToken: next,
	}
	suite.accountSvc.On("ListBills", mock.Anything, params).Return(page, nil).Once()
	suite.converter.On("ResolveTargetCurrency", cc).Return("USD")
	suite.converter.On("CurrencySymbol", cc).Return("$")
	suite.converter.On("MinAmountFor", mock.Anything, cc, mock.Anything).Return(decimal.RequireFromString("1.6393"))
}

func (suite *HandlerTestSuite) TestBills_RequireAuth() {
	for _, path := range []string{"/api/v1/bills", "/api/v1/bills/export"} {
		w := suite.do(http.MethodGet, path, nil)
		suite.Equal(http.StatusUnauthorized, w.Code, path)
	}
	suite.accountSvc.AssertNotCalled(suite.T(), "ListBills", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListBills() {
	next := "token-2"
	suite.expectBillsPage(dto.ListBillsParams{Limit: 2, Status: "BILLED"}, &next)

	w := suite.do(http.MethodGet, "/api/v1/bills?limit=2&status=BILLED", nil, withCurrency("USD"), suite.withAuth())

	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[dto.ListBillsResponse](suite, w)
	suite.Equal("bills", resp.Tab)
	suite.Require().Len(resp.Bills, 2)
	suite.Equal("a2", resp.Bills[0].AccountID)
	suite.Equal("1.64", resp.Bills[0].MinAmountLabel)
	suite.Equal("$", resp.Bills[0].CurrencySymbol)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListBills_BadToken() {
	token := "garbage"
	suite.accountSvc.On("ListBills", mock.Anything, dto.ListBillsParams{NextToken: &token}).
		Return(nil, fmt.Errorf("bad token: %w", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/bills?nextToken=garbage", nil, suite.withAuth())
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestExportBills() {
	next := "token-2"
	suite.expectBillsPage(dto.ListBillsParams{}, &next)

	w := suite.do(http.MethodGet, "/api/v1/bills/export", nil, withCurrency("USD"), suite.withAuth())

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(export.XLSXContentType, w.Header().Get("Content-Type"))
	suite.Equal(next, w.Header().Get("X-Next-Token"))
	suite.Contains(w.Header().Get("Content-Disposition"), "bills_")
	suite.NotZero(w.Body.Len())
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
