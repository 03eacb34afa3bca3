package handlers

import (
	"net/http"

	"nailart/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports 200 while the store answers pings and 503 otherwise.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Check(c.Request.Context())
		if !status.Mongo {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "mongo": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
