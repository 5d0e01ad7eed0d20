package service

import (
	"context"
	"strings"

	"github.com/folio/folio-go/internal/model"
)

const featuredLimit = 3

var inProgressMarkers = []string{"progress", "building", "planned"}

// Sections groups the catalog for display.
func (s *ProjectService) Sections(ctx context.Context) model.ProjectSections {
	return PartitionProjects(s.List(ctx))
}

// PartitionProjects splits projects into the site's sections. n8n is keyed
// on category and is independent of the live/in-progress split, so a
// project can appear twice. Featured holds the newest non-n8n projects.
func PartitionProjects(projects []model.Project) model.ProjectSections {
	sections := model.ProjectSections{
		Live:       []model.Project{},
		InProgress: []model.Project{},
		N8N:        []model.Project{},
		Featured:   []model.Project{},
	}

	for _, p := range projects {
		n8n := strings.Contains(strings.ToLower(p.Category), "n8n")
		if n8n {
			sections.N8N = append(sections.N8N, p)
		} else if len(sections.Featured) < featuredLimit {
			sections.Featured = append(sections.Featured, p)
		}

		if isInProgress(p.Status) {
			sections.InProgress = append(sections.InProgress, p)
		} else {
			sections.Live = append(sections.Live, p)
		}
	}

	return sections
}

func isInProgress(status string) bool {
	status = strings.ToLower(status)
	for _, m := range inProgressMarkers {
		if strings.Contains(status, m) {
			return true
		}
	}
	return false
}
