package routes

import (
	"net/http"
	"strings"
	"time"

	"nailart/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var routedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// handleOnly registers h for method on path and a 405 with an Allow header for the
// other methods.
func handleOnly(g *gin.RouterGroup, method, path string, h ...gin.HandlerFunc) {
	g.Handle(method, path, h...)
	for _, m := range routedMethods {
		if m != method {
			g.Handle(m, path, handlers.MethodNotAllowed(method))
		}
	}
}

// RegisterAppointmentRoutes registers the public booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		handleOnly(api, http.MethodPost, "/appointments", hb.CreateAppointmentHandler)
		handleOnly(api, http.MethodGet, "/catalog", hb.CatalogHandler)
	}
}

// RegisterAdminRoutes registers admin endpoints. The method check runs before the
// session check.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		handleOnly(api, http.MethodPost, "/login", hb.AdminLoginHandler)
		handleOnly(api, http.MethodPost, "/logout", hb.AdminLogoutHandler)

		// Protected routes (Require a session cookie)
		handleOnly(api, http.MethodGet, "/appointments", hb.AdminSession, hb.AdminListAppointmentsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// corsConfig allows the configured origins with credentials so the admin cookie travels.
// An empty list allows every origin.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			origins = nil
			break
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// RegisterRoutes wires every route group onto the engine.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, corsOrigins []string) {
	r.Use(cors.New(corsConfig(corsOrigins)))

	RegisterHealthRoute(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
