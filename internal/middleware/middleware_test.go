package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/SscSPs/money_billing/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, subject string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
		{"expired token", "Bearer " + signToken(t, "user-1", time.Now().Add(-time.Hour)), http.StatusUnauthorized, ""},
		{"missing subject", "Bearer " + signToken(t, "", time.Now().Add(time.Hour)), http.StatusUnauthorized, ""},
		{"valid token", "Bearer " + signToken(t, "user-1", time.Now().Add(time.Hour)), http.StatusOK, "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestClientCurrency(t *testing.T) {
	var got domain.ClientContext
	router := gin.New()
	router.Use(middleware.ClientCurrency("currency"))
	router.GET("/", func(c *gin.Context) {
		got = middleware.GetClientContext(c)
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{"no cookie", "", ""},
		{"upper case", "USD", "USD"},
		{"lower case is normalised", "eur", "EUR"},
		{"not an iso code", "ZZZ1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = domain.ClientContext{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "currency", Value: tt.cookie})
			}
			router.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got.Currency)
		})
	}
}

func TestStructuredLoggingMiddleware_SetsRequestID(t *testing.T) {
	router := gin.New()
	router.Use(middleware.StructuredLoggingMiddleware(nopLogger()))
	var seen string
	router.GET("/", func(c *gin.Context) {
		seen = middleware.GetRequestIDFromCtx(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RateLimit(lim))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewMemoryLimiter_BadFormat(t *testing.T) {
	_, err := middleware.NewMemoryLimiter("lots")
	assert.Error(t, err)
}
