package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/folio/folio-go/internal/config"
	"github.com/folio/folio-go/internal/crypto"
	"github.com/folio/folio-go/internal/model"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrUseAdminLogin       = errors.New("please use the admin login for admin access")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAdminNotConfigured  = errors.New("admin login is not configured")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginRecorder records user login activity.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, email, passwordHash string) error
}

// AuthService resolves logins to identities. None of this is access
// control: any well-formed email/password pair that is not the admin pair
// signs in as a user, and nothing is issued that the server later checks.
type AuthService struct {
	users LoginRecorder
	admin config.AdminConfig
	hash  func(string) (string, error)
}

// NewAuthService creates a new AuthService.
func NewAuthService(users LoginRecorder, admin config.AdminConfig) *AuthService {
	return &AuthService{
		users: users,
		admin: admin,
		hash:  crypto.HashPassword,
	}
}

// LoginUser signs in a regular user and records the login. It rejects the
// admin pair so admins go through AuthenticateAdmin.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (model.Identity, error) {
	if email == "" || password == "" {
		return model.Identity{}, ErrCredentialsRequired
	}
	if s.isAdminPair(email, password) {
		return model.Identity{}, ErrUseAdminLogin
	}
	if !emailPattern.MatchString(email) {
		return model.Identity{}, ErrInvalidEmail
	}

	digest, err := s.hash(password)
	if err != nil {
		return model.Identity{}, err
	}
	if err := s.users.RecordLogin(ctx, email, digest); err != nil {
		return model.Identity{}, err
	}

	return model.Identity{Email: email, Role: model.RoleUser}, nil
}

// AuthenticateAdmin checks the pair against the configured admin secrets.
func (s *AuthService) AuthenticateAdmin(email, password string) (model.Identity, error) {
	if email == "" || password == "" {
		return model.Identity{}, ErrCredentialsRequired
	}
	if !s.adminConfigured() {
		return model.Identity{}, ErrAdminNotConfigured
	}

	emailOK := crypto.SecretEqual(email, s.admin.Email)
	passwordOK := crypto.SecretEqual(password, s.admin.Password)
	if !emailOK || !passwordOK {
		return model.Identity{}, ErrInvalidCredentials
	}

	return model.Identity{Email: s.admin.Email, Role: model.RoleAdmin}, nil
}

func (s *AuthService) adminConfigured() bool {
	return s.admin.Email != "" && s.admin.Password != ""
}

func (s *AuthService) isAdminPair(email, password string) bool {
	return s.adminConfigured() &&
		crypto.SecretEqual(email, s.admin.Email) &&
		crypto.SecretEqual(password, s.admin.Password)
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
