package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/folio/folio-go/internal/config"
	"github.com/folio/folio-go/internal/model"
)

var testAdmin = config.AdminConfig{Email: "admin@example.com", Password: "hunter2"}

func newTestAuthService() (*AuthService, *memLoginRecorder) {
	users := newMemLoginRecorder()
	svc := NewAuthService(users, testAdmin)
	svc.hash = func(p string) (string, error) { return "hashed:" + p, nil }
	return svc, users
}

func TestLoginUser_MissingFields(t *testing.T) {
	svc, users := newTestAuthService()

	for _, req := range []model.LoginRequest{
		{Email: "", Password: "pw"},
		{Email: "jane@example.com", Password: ""},
	} {
		_, err := svc.LoginUser(context.Background(), req.Email, req.Password)
		if err != ErrCredentialsRequired {
			t.Errorf("LoginUser(%+v) error = %v, want ErrCredentialsRequired", req, err)
		}
	}
	if len(users.logins) != 0 {
		t.Error("rejected login was recorded")
	}
}

func TestLoginUser_AdminPairRejected(t *testing.T) {
	svc, users := newTestAuthService()

	_, err := svc.LoginUser(context.Background(), testAdmin.Email, testAdmin.Password)
	if err != ErrUseAdminLogin {
		t.Fatalf("LoginUser() error = %v, want ErrUseAdminLogin", err)
	}
	if len(users.logins) != 0 {
		t.Error("admin pair was recorded as a user login")
	}
}

func TestLoginUser_AdminEmailWithOtherPasswordSucceeds(t *testing.T) {
	svc, _ := newTestAuthService()

	id, err := svc.LoginUser(context.Background(), testAdmin.Email, "not-the-admin-password")
	if err != nil {
		t.Fatalf("LoginUser() unexpected error: %v", err)
	}
	if id.Role != model.RoleUser {
		t.Errorf("Role = %q, want user", id.Role)
	}
}

func TestLoginUser_InvalidEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	for _, email := range []string{"jane", "jane@example", "jane @example.com", "@example.com"} {
		_, err := svc.LoginUser(context.Background(), email, "pw")
		if err != ErrInvalidEmail {
			t.Errorf("LoginUser(%q) error = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestLoginUser_AnyPasswordSucceedsAndIsRecorded(t *testing.T) {
	svc, users := newTestAuthService()

	for _, pw := range []string{"first", "second"} {
		id, err := svc.LoginUser(context.Background(), "jane@example.com", pw)
		if err != nil {
			t.Fatalf("LoginUser(%q) unexpected error: %v", pw, err)
		}
		if id != (model.Identity{Email: "jane@example.com", Role: "user"}) {
			t.Errorf("identity = %+v", id)
		}
	}

	if users.logins["jane@example.com"] != 2 {
		t.Errorf("logins = %d, want 2", users.logins["jane@example.com"])
	}
	if users.hashes["jane@example.com"] != "hashed:second" {
		t.Errorf("stored hash = %q, want the latest password's hash", users.hashes["jane@example.com"])
	}
}

func TestLoginUser_StoresHashNotPlaintext(t *testing.T) {
	users := newMemLoginRecorder()
	svc := NewAuthService(users, testAdmin)

	if _, err := svc.LoginUser(context.Background(), "jane@example.com", "plain-secret"); err != nil {
		t.Fatalf("LoginUser() unexpected error: %v", err)
	}
	stored := users.hashes["jane@example.com"]
	if !strings.HasPrefix(stored, "$argon2id$") || strings.Contains(stored, "plain-secret") {
		t.Errorf("stored value %q is not an argon2id digest", stored)
	}
}

func TestLoginUser_StoreFailure(t *testing.T) {
	svc, users := newTestAuthService()
	users.err = errors.New("connection refused")

	if _, err := svc.LoginUser(context.Background(), "jane@example.com", "pw"); err == nil {
		t.Fatal("expected store error")
	}
}

func TestAuthenticateAdmin(t *testing.T) {
	svc, _ := newTestAuthService()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"exact match", "admin@example.com", "hunter2", nil},
		{"wrong password", "admin@example.com", "hunter3", ErrInvalidCredentials},
		{"wrong email", "root@example.com", "hunter2", ErrInvalidCredentials},
		{"case differs", "Admin@example.com", "hunter2", ErrInvalidCredentials},
		{"trailing space", "admin@example.com ", "hunter2", ErrInvalidCredentials},
		{"missing password", "admin@example.com", "", ErrCredentialsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.AuthenticateAdmin(tt.email, tt.password)
			if err != tt.wantErr {
				t.Fatalf("AuthenticateAdmin() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && id.Role != model.RoleAdmin {
				t.Errorf("Role = %q, want admin", id.Role)
			}
		})
	}
}

func TestAuthenticateAdmin_NotConfigured(t *testing.T) {
	svc := NewAuthService(newMemLoginRecorder(), config.AdminConfig{})

	if _, err := svc.AuthenticateAdmin("a@b.co", "pw"); err != ErrAdminNotConfigured {
		t.Fatalf("AuthenticateAdmin() error = %v, want ErrAdminNotConfigured", err)
	}
}
