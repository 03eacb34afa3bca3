package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoConfig holds the Brevo transactional API settings.
type BrevoConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// BrevoProvider sends mail through Brevo's HTTP API.
type BrevoProvider struct {
	client   *rest.Client
	endpoint string
	cfg      BrevoConfig
}

// NewBrevoProvider returns nil when the API key or sender address is missing.
func NewBrevoProvider(cfg BrevoConfig) *BrevoProvider {
	if cfg.APIKey == "" || cfg.FromEmail == "" {
		return nil
	}
	if cfg.FromName == "" {
		cfg.FromName = "Yusuf Nail Art"
	}
	return &BrevoProvider{
		client:   &rest.Client{HTTPClient: &http.Client{Timeout: 15 * time.Second}},
		endpoint: brevoEndpoint,
		cfg:      cfg,
	}
}

func (p *BrevoProvider) Name() string { return "brevo" }

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoEmail struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

// Send posts one message; any non-2xx status is an error.
func (p *BrevoProvider) Send(ctx context.Context, msg EmailMessage) error {
	to := make([]brevoAddress, 0, len(msg.To))
	for _, addr := range msg.To {
		to = append(to, brevoAddress{Email: addr})
	}
	body, err := json.Marshal(brevoEmail{
		Sender:      brevoAddress{Email: p.cfg.FromEmail, Name: p.cfg.FromName},
		To:          to,
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("brevo: failed to encode request: %w", err)
	}

	resp, err := p.client.SendWithContext(ctx, rest.Request{
		Method:  rest.Post,
		BaseURL: p.endpoint,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
			"api-key":      p.cfg.APIKey,
		},
		Body: body,
	})
	if err != nil {
		return fmt.Errorf("brevo: request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}

var _ Provider = (*BrevoProvider)(nil)
