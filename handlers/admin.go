package handlers

import (
	"errors"
	"net/http"
	"time"

	"nailart/models"
	"nailart/services/admin"
	"nailart/services/appointment"
	"nailart/services/session"
	"nailart/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates the admin login, logout and listing operations.
type AdminHandler struct {
	Auth         admin.AdminService
	Appointments appointment.AppointmentService
	SessionTTL   time.Duration
	// SecureCookie adds the Secure attribute to the session cookie.
	SecureCookie bool
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(auth admin.AdminService, appts appointment.AppointmentService, ttl time.Duration, secure bool) *AdminHandler {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &AdminHandler{
		Auth:         auth,
		Appointments: appts,
		SessionTTL:   ttl,
		SecureCookie: secure,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler exchanges admin credentials for a session cookie.
func (ah *AdminHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req loginRequest
	// A body that does not bind is treated as empty credentials.
	_ = c.ShouldBindJSON(&req)

	token, err := ah.Auth.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrCredentialsNotConfigured):
			utils.JSONError(c, logger, http.StatusInternalServerError, "Missing admin credentials in env vars", err)
		case errors.Is(err, admin.ErrMissingCredentials):
			utils.JSONError(c, logger, http.StatusBadRequest, "Email and password are required", nil)
		case errors.Is(err, admin.ErrInvalidCredentials):
			utils.JSONError(c, logger, http.StatusUnauthorized, "Invalid credentials", nil)
		default:
			utils.JSONError(c, logger, http.StatusInternalServerError, "Failed to create session", err)
		}
		return
	}

	ah.setSessionCookie(c, token, int(ah.SessionTTL.Seconds()))
	logger.Info("Admin logged in")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// LogoutHandler clears the session cookie. It always succeeds.
func (ah *AdminHandler) LogoutHandler(c *gin.Context) {
	ah.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListAppointmentsHandler returns every booking, newest first.
func (ah *AdminHandler) ListAppointmentsHandler(c *gin.Context) {
	appts, err := ah.Appointments.ListAppointments(c.Request.Context())
	if err != nil {
		utils.JSONError(c, getLogger(c), http.StatusInternalServerError, "Failed to fetch appointments", err)
		return
	}

	views := make([]models.AppointmentView, 0, len(appts))
	for _, a := range appts {
		views = append(views, a.View())
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

// setSessionCookie writes the admin cookie. A negative maxAge expires it immediately.
func (ah *AdminHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, value, maxAge, "/", "", ah.SecureCookie, true)
}
