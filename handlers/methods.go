package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MethodNotAllowed answers any method other than allow with a 405.
func MethodNotAllowed(allow string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Allow", allow)
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	}
}
