package notification

import (
	"context"
	"errors"
	"fmt"

	"nailart/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotConfigured is returned by a provider whose credentials are missing.
	ErrNotConfigured = errors.New("email provider not configured")
	// ErrNoAdminRecipients means neither ADMIN_EMAILS nor ADMIN_EMAIL is set.
	ErrNoAdminRecipients = errors.New("missing admin recipient. Please set ADMIN_EMAIL or ADMIN_EMAILS")
)

// EmailMessage is a single HTML email to one or more recipients.
type EmailMessage struct {
	To      []string
	Subject string
	HTML    string
}

// Provider delivers one email. Implementations: Brevo, SendGrid, SES and SMTP.
type Provider interface {
	Name() string
	Send(ctx context.Context, msg EmailMessage) error
}

// Notifier sends the booking confirmation emails.
type Notifier interface {
	SendAppointmentEmails(ctx context.Context, in models.AppointmentInput) error
}

// DefaultNotifier sends the admin and customer emails through the configured provider.
type DefaultNotifier struct {
	provider        Provider
	adminRecipients []string
	logger          *zap.Logger
}

// NewDefaultNotifier creates a notifier for the given provider and admin recipients.
func NewDefaultNotifier(provider Provider, adminRecipients []string, logger *zap.Logger) *DefaultNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotifier{
		provider:        provider,
		adminRecipients: adminRecipients,
		logger:          logger,
	}
}

// SendAppointmentEmails sends the admin notice and the customer confirmation concurrently.
// It succeeds only if both sends succeed.
func (n *DefaultNotifier) SendAppointmentEmails(ctx context.Context, in models.AppointmentInput) error {
	if len(n.adminRecipients) == 0 {
		return ErrNoAdminRecipients
	}
	if n.provider == nil {
		return ErrNotConfigured
	}

	adminMsg, err := adminMessage(in, n.adminRecipients)
	if err != nil {
		return err
	}
	customerMsg, err := customerMessage(in)
	if err != nil {
		return err
	}

	// Both sends run to completion; Wait reports the first failure.
	var g errgroup.Group
	for _, msg := range []EmailMessage{adminMsg, customerMsg} {
		g.Go(func() error {
			if err := n.provider.Send(ctx, msg); err != nil {
				n.logger.Error("Email send failed",
					zap.String("provider", n.provider.Name()),
					zap.Strings("to", msg.To),
					zap.Error(err),
				)
				return fmt.Errorf("%s send failed: %w", n.provider.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
