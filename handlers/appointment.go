package handlers

import (
	"errors"
	"net/http"

	"nailart/services/appointment"
	"nailart/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBookingBodyBytes = 1 << 20

// AppointmentHandler serves the public booking endpoint.
type AppointmentHandler struct {
	Service appointment.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// CreateAppointmentHandler validates, stores and confirms a booking request.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBookingBodyBytes)

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, logger, http.StatusBadRequest, "Invalid appointment payload", err)
		return
	}

	result, err := h.Service.Book(c.Request.Context(), payload)
	if err != nil {
		var storageErr *appointment.StorageError
		switch {
		case errors.Is(err, appointment.ErrInvalidPayload):
			utils.JSONError(c, logger, http.StatusBadRequest, "Invalid appointment payload", nil)
		case errors.As(err, &storageErr):
			utils.JSONError(c, logger, http.StatusInternalServerError, "Failed to create appointment", storageErr.Err)
		default:
			utils.JSONError(c, logger, http.StatusInternalServerError, "Failed to create appointment", err)
		}
		return
	}

	logger.Info("Appointment created",
		zap.String("appointment_id", result.Appointment.ID.Hex()),
		zap.Bool("email_sent", result.EmailSent),
	)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "email_sent": result.EmailSent})
}
