package middleware

import (
	"net/http"
	"strings"

	"nailart/services/session"

	"github.com/gin-gonic/gin"
)

// SessionVerifier checks admin session tokens. Implemented by session.Service.
type SessionVerifier interface {
	Configured() bool
	Verify(token string) bool
}

// AdminSessionMiddleware admits requests carrying a valid admin session cookie.
func AdminSessionMiddleware(tokens SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !tokens.Configured() {
			requestLogger(c).Error("Admin session secret is not configured")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server misconfigured"})
			return
		}

		token, ok := SessionCookie(c.GetHeader("Cookie"))
		if !ok || !tokens.Verify(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}

// SessionCookie finds the admin session value in a raw Cookie header. The first
// occurrence wins.
func SessionCookie(header string) (string, bool) {
	prefix := session.CookieName + "="
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, prefix) {
			return strings.TrimPrefix(part, prefix), true
		}
	}
	return "", false
}
