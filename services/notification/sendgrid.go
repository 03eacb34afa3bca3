package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// SendGridProvider sends mail through the SendGrid v3 API.
type SendGridProvider struct {
	client *sendgrid.Client
	cfg    SendGridConfig
}

// NewSendGridProvider returns nil when the API key or sender address is missing.
func NewSendGridProvider(cfg SendGridConfig) *SendGridProvider {
	if cfg.APIKey == "" || cfg.FromEmail == "" {
		return nil
	}
	if cfg.FromName == "" {
		cfg.FromName = "Yusuf Nail Art"
	}
	return &SendGridProvider{
		client: sendgrid.NewSendClient(cfg.APIKey),
		cfg:    cfg,
	}
}

func (p *SendGridProvider) Name() string { return "sendgrid" }

// buildSendGridMail addresses one personalization to every recipient.
func buildSendGridMail(cfg SendGridConfig, msg EmailMessage) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(cfg.FromName, cfg.FromEmail))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, addr := range msg.To {
		p.AddTos(mail.NewEmail("", addr))
	}
	m.AddPersonalizations(p)
	m.AddContent(mail.NewContent("text/html", msg.HTML))
	return m
}

// Send sends one message via SendGrid.
func (p *SendGridProvider) Send(ctx context.Context, msg EmailMessage) error {
	if p.client == nil {
		return fmt.Errorf("sendgrid: %w", ErrNotConfigured)
	}
	resp, err := p.client.SendWithContext(ctx, buildSendGridMail(p.cfg, msg))
	if err != nil {
		return fmt.Errorf("sendgrid: send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}

var _ Provider = (*SendGridProvider)(nil)
