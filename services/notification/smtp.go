package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const smtpDialTimeout = 10 * time.Second

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Normalize trims the settings, strips whitespace from the password (app passwords are often
// pasted in groups) and falls back to the user as sender.
func (c SMTPConfig) Normalize() SMTPConfig {
	c.Host = strings.TrimSpace(c.Host)
	c.User = strings.TrimSpace(c.User)
	c.Password = strings.Join(strings.Fields(c.Password), "")
	c.From = strings.TrimSpace(c.From)
	if c.From == "" {
		c.From = c.User
	}
	if c.Port == 0 {
		c.Port = 587
	}
	return c
}

// Validate reports missing settings.
func (c SMTPConfig) Validate() error {
	if c.Host == "" || c.User == "" || c.Password == "" || c.From == "" {
		return fmt.Errorf("%w: missing SMTP configuration. Please set SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM", ErrNotConfigured)
	}
	return nil
}

// LooksLikeGmailMisconfig is true for Gmail hosts whose password is not a 16 character app password.
func (c SMTPConfig) LooksLikeGmailMisconfig() bool {
	return strings.Contains(c.Host, "gmail.com") && len(c.Password) != 16
}

// SMTPProvider sends mail through an SMTP relay. Port 465 uses implicit TLS; other ports
// upgrade with STARTTLS when the server offers it.
type SMTPProvider struct {
	cfg SMTPConfig
}

// NewSMTPProvider expects a normalized config.
func NewSMTPProvider(cfg SMTPConfig) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Name() string { return "smtp" }

func (p *SMTPProvider) implicitTLS() bool {
	return p.cfg.Port == 465
}

func (p *SMTPProvider) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(p.cfg.Host, strconv.Itoa(p.cfg.Port))
	dialer := &net.Dialer{Timeout: smtpDialTimeout}
	if p.implicitTLS() {
		td := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: p.cfg.Host}}
		return td.DialContext(ctx, "tcp", addr)
	}
	return dialer.DialContext(ctx, "tcp", addr)
}

// Send delivers one message in its own SMTP session.
func (p *SMTPProvider) Send(ctx context.Context, msg EmailMessage) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("smtp: dial failed: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, p.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp: handshake failed: %w", err)
	}
	defer c.Close()

	if !p.implicitTLS() {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: p.cfg.Host}); err != nil {
				return fmt.Errorf("smtp: starttls failed: %w", err)
			}
		}
	}
	if p.cfg.User != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", p.cfg.User, p.cfg.Password, p.cfg.Host)); err != nil {
				return fmt.Errorf("smtp: auth failed: %w", err)
			}
		}
	}

	if err := c.Mail(p.cfg.From); err != nil {
		return fmt.Errorf("smtp: MAIL FROM failed: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp: RCPT TO %s failed: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp: DATA failed: %w", err)
	}
	raw, err := buildMIMEMessage(p.cfg.From, msg)
	if err != nil {
		w.Close()
		return err
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return fmt.Errorf("smtp: write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: message rejected: %w", err)
	}
	return c.Quit()
}

// buildMIMEMessage renders an RFC 5322 HTML message with a quoted-printable body.
func buildMIMEMessage(from string, msg EmailMessage) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(msg.HTML)); err != nil {
		return nil, fmt.Errorf("smtp: failed to encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("smtp: failed to encode body: %w", err)
	}
	buf.WriteString("\r\n")
	return buf.Bytes(), nil
}

var _ Provider = (*SMTPProvider)(nil)
