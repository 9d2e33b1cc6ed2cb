package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextAddressKey is the gin context key holding the authenticated wallet
// address after SessionAuth has run.
const ContextAddressKey = "wallet_address"

// SessionLookup resolves an opaque bearer token to the wallet address it was
// issued for. Implemented by the session service.
type SessionLookup interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// SessionAuth requires a valid "Authorization: Bearer <token>" header and puts
// the resolved wallet address into the request context.
func SessionAuth(sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: bearer session token required"})
			return
		}

		address, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: session expired or unknown"})
			return
		}

		c.Set(ContextAddressKey, address)
		c.Next()
	}
}

// RequireAdmin allows only wallet addresses from the configured allow-list.
// Must run after SessionAuth.
func RequireAdmin(adminAddresses []string) gin.HandlerFunc {
	admins := make(map[string]struct{}, len(adminAddresses))
	for _, a := range adminAddresses {
		if a = strings.TrimSpace(a); a != "" {
			admins[strings.ToLower(a)] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		address := c.GetString(ContextAddressKey)
		if address == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: bearer session token required"})
			return
		}

		if _, ok := admins[strings.ToLower(address)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}
