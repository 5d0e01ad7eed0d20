package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/folio/folio-go/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository tracks login activity. It is not a credential store:
// RecordLogin accepts whatever password it is given.
type UserRepository struct {
	pool   Pool
	schema *Schema
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool Pool, schema *Schema) *UserRepository {
	return &UserRepository{pool: pool, schema: schema}
}

const upsertUserQuery = `
	INSERT INTO users (email, password, last_login) VALUES (?, ?, NOW())
	ON DUPLICATE KEY UPDATE
		password   = VALUES(password),
		last_login = NOW()`

// RecordLogin inserts the user or, for a known email, overwrites the stored
// password hash and refreshes last_login.
func (r *UserRepository) RecordLogin(ctx context.Context, email, passwordHash string) error {
	db, err := acquireTable(ctx, r.pool, r.schema, UsersTable)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, upsertUserQuery, email, passwordHash)
	return err
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	db, err := acquireTable(ctx, r.pool, r.schema, UsersTable)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, email, password, created_at, last_login FROM users WHERE email = ?`

	user := &model.User{}
	err = db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
