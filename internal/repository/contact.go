package repository

import (
	"context"

	"github.com/folio/folio-go/internal/model"
)

// ContactRepository stores contact-form submissions.
type ContactRepository struct {
	pool   Pool
	schema *Schema
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(pool Pool, schema *Schema) *ContactRepository {
	return &ContactRepository{pool: pool, schema: schema}
}

// Create inserts a submission and sets the generated ID on it.
func (r *ContactRepository) Create(ctx context.Context, c *model.Contact) error {
	db, err := acquireTable(ctx, r.pool, r.schema, ContactsTable)
	if err != nil {
		return err
	}

	query := `INSERT INTO contacts (name, email, phone, message) VALUES (?, ?, ?, ?)`

	result, err := db.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.Message)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	c.ID = id
	return nil
}
