package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/folio/folio-go/internal/model"
	"github.com/folio/folio-go/internal/repository"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrProjectNotFound = errors.New("project not found")
)

// ProjectStore is the persistence the catalog needs.
type ProjectStore interface {
	List(ctx context.Context) ([]model.Project, error)
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, p *model.Project) error
}

// ProjectService handles project catalog business logic.
type ProjectService struct {
	repo ProjectStore
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo ProjectStore) *ProjectService {
	return &ProjectService{repo: repo}
}

// List returns the catalog newest first. Store failures are logged and
// reported as an empty catalog so public pages still render.
func (s *ProjectService) List(ctx context.Context) []model.Project {
	projects, err := s.repo.List(ctx)
	if err != nil {
		slog.Error("listing projects failed", "error", err)
		return []model.Project{}
	}
	if projects == nil {
		return []model.Project{}
	}
	return projects
}

// GetByID looks up a project by its raw (unparsed) id. A malformed id, a
// missing row and a store failure all report absent.
func (s *ProjectService) GetByID(ctx context.Context, rawID string) (model.Project, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		slog.Warn("invalid project id", "id", rawID)
		return model.Project{}, false
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrProjectNotFound) {
			slog.Error("fetching project failed", "id", id, "error", err)
		}
		return model.Project{}, false
	}

	return *p, true
}

// Create validates and stores a new project.
func (s *ProjectService) Create(ctx context.Context, in model.ProjectInput) (model.Project, error) {
	p := normalizeProject(in)
	if p.Title == "" {
		return model.Project{}, ErrTitleRequired
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return model.Project{}, err
	}

	return p, nil
}

// Update overwrites every field of an existing project.
func (s *ProjectService) Update(ctx context.Context, id int64, in model.ProjectInput) (model.Project, error) {
	p := normalizeProject(in)
	if p.Title == "" {
		return model.Project{}, ErrTitleRequired
	}
	p.ID = id

	if err := s.repo.Update(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return model.Project{}, ErrProjectNotFound
		}
		return model.Project{}, err
	}

	return p, nil
}

// normalizeProject trims every field and applies the category and status
// defaults. Blank tags are dropped.
func normalizeProject(in model.ProjectInput) model.Project {
	p := model.Project{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Status:      strings.TrimSpace(in.Status),
		Link:        strings.TrimSpace(in.Link),
		Tags:        []string{},
	}
	if p.Category == "" {
		p.Category = model.DefaultCategory
	}
	if p.Status == "" {
		p.Status = model.DefaultStatus
	}
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			p.Tags = append(p.Tags, t)
		}
	}
	return p
}
