package notification

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAPI is the part of the SES v2 client this package uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	FromEmail string
	FromName  string
}

// SESProvider sends mail through AWS SES.
type SESProvider struct {
	client sesAPI
	cfg    SESConfig
}

// NewSESProvider returns nil when the client or sender address is missing.
func NewSESProvider(client sesAPI, cfg SESConfig) *SESProvider {
	if client == nil || cfg.FromEmail == "" {
		return nil
	}
	if cfg.FromName == "" {
		cfg.FromName = "Yusuf Nail Art"
	}
	return &SESProvider{client: client, cfg: cfg}
}

func (p *SESProvider) Name() string { return "ses" }

// Send sends one message via SES.
func (p *SESProvider) Send(ctx context.Context, msg EmailMessage) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", p.cfg.FromName, p.cfg.FromEmail)),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(msg.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(msg.HTML),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := p.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses: send failed: %w", err)
	}
	return nil
}

var _ Provider = (*SESProvider)(nil)
