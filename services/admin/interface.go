package admin

// TokenIssuer creates admin session tokens. Implemented by session.Service.
type TokenIssuer interface {
	Create() (string, error)
}

// AdminService authenticates the studio admin.
type AdminService interface {
	// Login checks the submitted credentials and returns a fresh session token.
	Login(email, password string) (string, error)
}

// DefaultAdminService checks credentials against the configured allow-list.
type DefaultAdminService struct {
	allowedEmails []string
	password      string
	tokens        TokenIssuer
}

// NewAdminService creates the admin service. allowedEmails are matched case-insensitively.
func NewAdminService(allowedEmails []string, password string, tokens TokenIssuer) *DefaultAdminService {
	return &DefaultAdminService{
		allowedEmails: allowedEmails,
		password:      password,
		tokens:        tokens,
	}
}
