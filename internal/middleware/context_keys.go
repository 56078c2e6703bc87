package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// accountIDKey is the key used to store the authenticated account's ID.
const accountIDKey = contextKey("accountID")

// WithAccountID returns a copy of ctx carrying the authenticated account ID.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// GetAccountIDFromContext retrieves the authenticated account ID.
// It returns the ID and a boolean indicating if it was found.
func GetAccountIDFromContext(c *gin.Context) (string, bool) {
	if val, exists := c.Get(string(accountIDKey)); exists {
		accountID, ok := val.(string)
		return accountID, ok && accountID != ""
	}
	accountID, ok := c.Request.Context().Value(accountIDKey).(string)
	return accountID, ok && accountID != ""
}
