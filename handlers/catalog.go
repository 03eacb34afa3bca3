package handlers

import (
	"net/http"

	"nailart/models"

	"github.com/gin-gonic/gin"
)

// CatalogHandler lists the services, add-ons and time slots offered by the booking form.
func CatalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.StudioCatalog())
}
