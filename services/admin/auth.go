package admin

import (
	"fmt"
	"strings"
)

// Login validates the credentials and issues a session token.
func (s *DefaultAdminService) Login(email, password string) (string, error) {
	configuredPassword := strings.TrimSpace(s.password)
	if len(s.allowedEmails) == 0 || configuredPassword == "" {
		return "", ErrCredentialsNotConfigured
	}

	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	emailAllowed := false
	for _, allowed := range s.allowedEmails {
		if strings.ToLower(strings.TrimSpace(allowed)) == email {
			emailAllowed = true
			break
		}
	}
	// TODO: compare in constant time; plain equality leaks timing on the password.
	passwordValid := password == configuredPassword

	if !emailAllowed || !passwordValid {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Create()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}
