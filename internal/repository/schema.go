package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// TableSpec names a table and the idempotent DDL that creates it.
type TableSpec struct {
	Name string
	DDL  string
}

var ProjectsTable = TableSpec{
	Name: "projects",
	DDL: `
CREATE TABLE IF NOT EXISTS projects (
    id INT AUTO_INCREMENT PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    category VARCHAR(100),
    status VARCHAR(50) DEFAULT 'Planned',
    link VARCHAR(500),
    tags TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var UsersTable = TableSpec{
	Name: "users",
	DDL: `
CREATE TABLE IF NOT EXISTS users (
    id INT AUTO_INCREMENT PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    password VARCHAR(255) NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_login TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var ContactsTable = TableSpec{
	Name: "contacts",
	DDL: `
CREATE TABLE IF NOT EXISTS contacts (
    id INT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL,
    phone VARCHAR(50),
    message TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Schema runs table DDL once per process. Only successful runs are
// remembered. Each table has its own lock, so a slow DDL blocks only
// callers of the same table.
type Schema struct {
	mu     sync.Mutex
	tables map[string]*tableState
}

type tableState struct {
	mu      sync.Mutex
	ensured bool
}

// NewSchema creates an empty Schema.
func NewSchema() *Schema {
	return &Schema{tables: make(map[string]*tableState)}
}

func (s *Schema) table(name string) *tableState {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[name]
	if !ok {
		t = &tableState{}
		s.tables[name] = t
	}
	return t
}

// Ensure creates the table if it does not exist yet.
func (s *Schema) Ensure(ctx context.Context, db *sql.DB, spec TableSpec) error {
	t := s.table(spec.Name)
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ensured {
		return nil
	}
	if _, err := db.ExecContext(ctx, spec.DDL); err != nil {
		return fmt.Errorf("ensuring table %s: %w", spec.Name, err)
	}
	t.ensured = true
	return nil
}

// acquireTable is the common prologue of every repository operation.
func acquireTable(ctx context.Context, pool Pool, schema *Schema, spec TableSpec) (*sql.DB, error) {
	db, err := pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if err := schema.Ensure(ctx, db, spec); err != nil {
		return nil, err
	}
	return db, nil
}
