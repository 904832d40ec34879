package middleware

import (
	"context"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey        = contextKey("userID")
	clientContextKey = contextKey("clientContext")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok && userID != ""
	}
	// check in the request context as well
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a copy of ctx carrying the acting user's ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetClientContext returns the display preferences extracted by ClientCurrency.
// A request that did not pass through the middleware gets the zero value.
func GetClientContext(c *gin.Context) domain.ClientContext {
	if v, exists := c.Get(string(clientContextKey)); exists {
		if cc, ok := v.(domain.ClientContext); ok {
			return cc
		}
	}
	return domain.ClientContext{}
}
