package notification

import (
	"context"
	"fmt"
	"strings"

	"nailart/config"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"go.uber.org/zap"
)

// unconfiguredProvider stands in for a provider whose settings are incomplete, so that
// bookings still go through and report email_sent=false.
type unconfiguredProvider struct {
	name   string
	reason error
}

func (p unconfiguredProvider) Name() string { return p.name }

func (p unconfiguredProvider) Send(context.Context, EmailMessage) error {
	return p.reason
}

// NewProvider selects the email provider named by EMAIL_PROVIDER. Unknown values fall
// back to SMTP.
func NewProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	name := strings.ToLower(strings.TrimSpace(cfg.EmailProvider))

	switch name {
	case "brevo":
		p := NewBrevoProvider(BrevoConfig{
			APIKey:    strings.TrimSpace(cfg.BrevoAPIKey),
			FromEmail: strings.TrimSpace(cfg.BrevoFromEmail),
			FromName:  strings.TrimSpace(cfg.BrevoFromName),
		})
		if p == nil {
			return unconfigured(logger, name, "missing Brevo configuration. Please set BREVO_API_KEY and BREVO_FROM_EMAIL")
		}
		return p

	case "sendgrid":
		p := NewSendGridProvider(SendGridConfig{
			APIKey:    strings.TrimSpace(cfg.SendGridAPIKey),
			FromEmail: strings.TrimSpace(cfg.SendGridFromEmail),
			FromName:  strings.TrimSpace(cfg.SendGridFromName),
		})
		if p == nil {
			return unconfigured(logger, name, "missing SendGrid configuration. Please set SENDGRID_API_KEY and SENDGRID_FROM_EMAIL")
		}
		return p

	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.SESRegion))
		if err != nil {
			return unconfigured(logger, name, "failed to load AWS configuration: "+err.Error())
		}
		p := NewSESProvider(sesv2.NewFromConfig(awsCfg), SESConfig{
			FromEmail: strings.TrimSpace(cfg.SESFromEmail),
			FromName:  strings.TrimSpace(cfg.SESFromName),
		})
		if p == nil {
			return unconfigured(logger, name, "missing SES configuration. Please set SES_FROM_EMAIL")
		}
		return p
	}

	smtpCfg := SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	}.Normalize()
	if err := smtpCfg.Validate(); err != nil {
		logger.Warn("Email provider not configured", zap.String("provider", "smtp"), zap.Error(err))
		return unconfiguredProvider{name: "smtp", reason: err}
	}
	if smtpCfg.LooksLikeGmailMisconfig() {
		logger.Warn("SMTP_PASS does not look like a Gmail App Password (expected 16 chars after removing spaces)")
	}
	return NewSMTPProvider(smtpCfg)
}

func unconfigured(logger *zap.Logger, name, reason string) Provider {
	err := fmt.Errorf("%w: %s", ErrNotConfigured, reason)
	logger.Warn("Email provider not configured", zap.String("provider", name), zap.Error(err))
	return unconfiguredProvider{name: name, reason: err}
}
