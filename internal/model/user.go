package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a login-tracking row. PasswordHash holds the hash of the password
// submitted on the most recent login; it is never checked.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    time.Time
}

// LoginRequest is the body of both login endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is who a login resolved to.
type Identity struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserAuthResponse is returned by POST /api/user-auth.
type UserAuthResponse struct {
	OK    bool      `json:"ok"`
	User  *Identity `json:"user,omitempty"`
	Error string    `json:"error,omitempty"`
}

// AdminAuthResponse is returned by POST /api/admin-auth.
type AdminAuthResponse struct {
	OK    bool      `json:"ok"`
	Admin *Identity `json:"admin,omitempty"`
	Error string    `json:"error,omitempty"`
}
