package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/folio/folio-go/internal/model"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository handles project persistence operations.
type ProjectRepository struct {
	pool   Pool
	schema *Schema
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(pool Pool, schema *Schema) *ProjectRepository {
	return &ProjectRepository{pool: pool, schema: schema}
}

const projectColumns = `id, title, description, category, status, link, tags, created_at`

// List returns all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	db, err := acquireTable(ctx, r.pool, r.schema, ProjectsTable)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	db, err := acquireTable(ctx, r.pool, r.schema, ProjectsTable)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	p, err := scanProject(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	return &p, nil
}

// Create inserts a project and sets the generated ID and the store-assigned
// created_at on it.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	db, err := acquireTable(ctx, r.pool, r.schema, ProjectsTable)
	if err != nil {
		return err
	}

	query := `INSERT INTO projects (title, description, category, status, link, tags) VALUES (?, ?, ?, ?, ?, ?)`

	result, err := db.ExecContext(ctx, query,
		p.Title, p.Description, p.Category, p.Status, p.Link, JoinTags(p.Tags),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	var createdAt time.Time
	err = db.QueryRowContext(ctx, `SELECT created_at FROM projects WHERE id = ?`, id).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("reading back project %d: %w", id, err)
	}

	p.ID = id
	p.CreatedAt = createdAt
	return nil
}

// Update overwrites every column of an existing project. The existence
// check comes first because MySQL reports zero affected rows for an
// unchanged row.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	db, err := acquireTable(ctx, r.pool, r.schema, ProjectsTable)
	if err != nil {
		return err
	}

	var createdAt time.Time
	err = db.QueryRowContext(ctx, `SELECT created_at FROM projects WHERE id = ?`, p.ID).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProjectNotFound
		}
		return err
	}

	query := `UPDATE projects SET title = ?, description = ?, category = ?, status = ?, link = ?, tags = ?
		WHERE id = ?`

	_, err = db.ExecContext(ctx, query,
		p.Title, p.Description, p.Category, p.Status, p.Link, JoinTags(p.Tags), p.ID,
	)
	if err != nil {
		return err
	}

	p.CreatedAt = createdAt
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (model.Project, error) {
	var (
		p                                         model.Project
		description, category, status, link, tags sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.Title, &description, &category, &status, &link, &tags, &p.CreatedAt,
	); err != nil {
		return model.Project{}, err
	}

	p.Description = description.String
	p.Category = category.String
	p.Status = status.String
	p.Link = link.String
	p.Tags = SplitTags(tags.String)
	return p, nil
}
