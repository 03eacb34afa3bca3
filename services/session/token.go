package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	// DefaultTTL is how long an admin session stays valid.
	DefaultTTL = 12 * time.Hour
	// CookieName carries the token between the browser and the admin endpoints.
	CookieName = "admin_session"

	adminSubject = "admin"
	separator    = "."
)

// ErrMissingSecret is returned when no signing secret is configured.
var ErrMissingSecret = errors.New("missing ADMIN_SESSION_SECRET environment variable")

var encoding = base64.RawURLEncoding

// Token is the two-segment wire form of an admin session.
type Token struct {
	EncodedPayload string
	Signature      string
}

// String renders the token as "<payload>.<signature>".
func (t Token) String() string {
	return t.EncodedPayload + separator + t.Signature
}

// ParseToken splits a raw token. It fails unless there are exactly two segments.
func ParseToken(raw string) (Token, bool) {
	parts := strings.Split(raw, separator)
	if len(parts) != 2 {
		return Token{}, false
	}
	return Token{EncodedPayload: parts[0], Signature: parts[1]}, true
}

type payload struct {
	Sub string `json:"sub"`
	Exp int64  `json:"exp"`
}

// Service issues and verifies admin session tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a token service. A zero ttl means DefaultTTL.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// TTL returns the validity window of issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Configured reports whether a signing secret is set.
func (s *Service) Configured() bool {
	return len(s.secret) > 0
}

func (s *Service) sign(encodedPayload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encodedPayload))
	return encoding.EncodeToString(mac.Sum(nil))
}

// Create issues a token for the admin subject expiring after the TTL.
func (s *Service) Create() (string, error) {
	if !s.Configured() {
		return "", ErrMissingSecret
	}
	raw, err := json.Marshal(payload{
		Sub: adminSubject,
		Exp: s.now().Add(s.ttl).Unix(),
	})
	if err != nil {
		return "", err
	}
	encoded := encoding.EncodeToString(raw)
	return Token{EncodedPayload: encoded, Signature: s.sign(encoded)}.String(), nil
}

// Verify reports whether raw is an untampered, unexpired admin token.
func (s *Service) Verify(raw string) bool {
	if !s.Configured() {
		return false
	}
	tok, ok := ParseToken(raw)
	if !ok {
		return false
	}

	expected := []byte(s.sign(tok.EncodedPayload))
	actual := []byte(tok.Signature)
	// ConstantTimeCompare needs equal lengths to run in constant time.
	if len(actual) != len(expected) {
		return false
	}
	if subtle.ConstantTimeCompare(actual, expected) != 1 {
		return false
	}

	decoded, err := encoding.DecodeString(tok.EncodedPayload)
	if err != nil {
		return false
	}
	var p payload
	if err := json.Unmarshal(decoded, &p); err != nil {
		return false
	}
	if p.Sub != adminSubject {
		return false
	}
	return p.Exp > s.now().Unix()
}
