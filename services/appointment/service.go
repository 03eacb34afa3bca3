package appointment

import (
	"context"

	appointmentRepo "nailart/database/repository/appointment"
	"nailart/models"

	"go.uber.org/zap"
)

// Notifier delivers the booking emails. Implemented by notification.DefaultNotifier.
type Notifier interface {
	SendAppointmentEmails(ctx context.Context, in models.AppointmentInput) error
}

// BookingResult reports the outcome of a successful booking.
type BookingResult struct {
	Appointment *models.Appointment
	EmailSent   bool
}

// AppointmentService is the booking and admin listing surface.
type AppointmentService interface {
	// Book validates a raw payload, stores it and sends the notification emails.
	Book(ctx context.Context, payload map[string]interface{}) (*BookingResult, error)
	// ListAppointments returns all bookings, newest first.
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
}

// DefaultAppointmentService wires the validator, store and notifier together.
type DefaultAppointmentService struct {
	Repo     appointmentRepo.AppointmentRepository
	Notifier Notifier
	Logger   *zap.Logger
}

// NewAppointmentService creates a DefaultAppointmentService.
func NewAppointmentService(repo appointmentRepo.AppointmentRepository, notifier Notifier, logger *zap.Logger) *DefaultAppointmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAppointmentService{Repo: repo, Notifier: notifier, Logger: logger}
}

// Book validates, persists and notifies. Validation failures return ErrInvalidPayload and
// nothing is stored; store failures return a *StorageError. A failed notification does not
// fail the booking and is reported through BookingResult.EmailSent.
func (s *DefaultAppointmentService) Book(ctx context.Context, payload map[string]interface{}) (*BookingResult, error) {
	in, err := ValidateAppointment(payload)
	if err != nil {
		return nil, err
	}

	appt := in.ToAppointment()
	if err := s.Repo.Insert(ctx, appt); err != nil {
		return nil, &StorageError{Err: err}
	}

	result := &BookingResult{Appointment: appt, EmailSent: true}
	if s.Notifier == nil {
		result.EmailSent = false
		return result, nil
	}
	if err := s.Notifier.SendAppointmentEmails(ctx, in); err != nil {
		result.EmailSent = false
		s.Logger.Warn("Appointment created but email send failed",
			zap.String("appointmentId", appt.ID.Hex()),
			zap.Error(err),
		)
	}
	return result, nil
}

// ListAppointments returns all stored appointments, newest first.
func (s *DefaultAppointmentService) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	return s.Repo.ListAll(ctx)
}
