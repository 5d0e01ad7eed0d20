package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

const (
	DefaultCategory = "Web Application"
	DefaultStatus   = "Planned"
)

// Project represents a portfolio entry.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Link        string    `json:"link"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectInput is the create/update payload. Every field is resupplied on
// update; there are no partial updates.
type ProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	Link        string   `json:"link"`
	Tags        []string `json:"tags"`
}

// UpdateProjectRequest is the PUT /api/projects body.
type UpdateProjectRequest struct {
	ID ProjectID `json:"id"`
	ProjectInput
}

// ProjectResponse wraps a single project.
type ProjectResponse struct {
	Project Project `json:"project"`
}

// ProjectListResponse wraps a listing.
type ProjectListResponse struct {
	Projects []Project `json:"projects"`
}

// ProjectSections groups the catalog the way the site renders it.
type ProjectSections struct {
	Live       []Project `json:"live"`
	InProgress []Project `json:"in_progress"`
	N8N        []Project `json:"n8n"`
	Featured   []Project `json:"featured"`
}

var ErrInvalidProjectID = errors.New("invalid project id")

// ProjectID accepts a JSON number or a numeric string. Edit forms send the
// id they read from the URL, which arrives as a string.
type ProjectID int64

func (id *ProjectID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return ErrInvalidProjectID
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrInvalidProjectID
		}
		b = []byte(s)
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return ErrInvalidProjectID
	}
	*id = ProjectID(n)
	return nil
}
