package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Public endpoints
	CreateAppointmentHandler gin.HandlerFunc
	CatalogHandler           gin.HandlerFunc
	HealthHandler            gin.HandlerFunc

	// Admin endpoints
	AdminLoginHandler            gin.HandlerFunc
	AdminLogoutHandler           gin.HandlerFunc
	AdminListAppointmentsHandler gin.HandlerFunc

	// AdminSession guards the admin listing.
	AdminSession gin.HandlerFunc
}
