package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler is a middleware to catch panics and return an opaque error
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response. The cause, if any, is logged and
// never returned to the client.
func JSONError(c *gin.Context, logger *zap.Logger, status int, message string, cause error) {
	if cause != nil {
		if status >= http.StatusInternalServerError {
			logger.Error(message, zap.Int("status", status), zap.Error(cause))
		} else {
			logger.Warn(message, zap.Int("status", status), zap.Error(cause))
		}
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
