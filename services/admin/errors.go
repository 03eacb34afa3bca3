package admin

import "errors"

var (
	// ErrCredentialsNotConfigured means no admin email or password is configured.
	ErrCredentialsNotConfigured = errors.New("missing admin credentials in env vars")
	// ErrMissingCredentials means the login request lacked an email or password.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
