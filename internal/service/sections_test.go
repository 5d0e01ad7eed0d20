package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio-go/internal/model"
)

func titles(ps []model.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestPartitionProjects(t *testing.T) {
	projects := []model.Project{
		{Title: "Lead Router", Category: "N8N Workflow", Status: "Live"},
		{Title: "CRM Portal", Category: "Web Application", Status: "Delivered"},
		{Title: "Shop", Category: "Web Application", Status: "In Progress"},
		{Title: "Inbox Bot", Category: "n8n automation", Status: "Building"},
		{Title: "Docs Site", Category: "Web Application", Status: "Planned"},
		{Title: "Blog", Category: "Web Application", Status: "Live"},
	}

	s := PartitionProjects(projects)

	assert.Equal(t, []string{"Lead Router", "Inbox Bot"}, titles(s.N8N))
	assert.Equal(t, []string{"Shop", "Inbox Bot", "Docs Site"}, titles(s.InProgress))
	assert.Equal(t, []string{"Lead Router", "CRM Portal", "Blog"}, titles(s.Live))
	assert.Equal(t, []string{"CRM Portal", "Shop", "Docs Site"}, titles(s.Featured))
}

func TestPartitionProjects_Empty(t *testing.T) {
	s := PartitionProjects(nil)

	assert.NotNil(t, s.Live)
	assert.NotNil(t, s.InProgress)
	assert.NotNil(t, s.N8N)
	assert.NotNil(t, s.Featured)
}

func TestSections_UsesCatalog(t *testing.T) {
	svc, _ := newTestProjectService()

	_, err := svc.Create(context.Background(), model.ProjectInput{Title: "CRM Portal", Tags: []string{"crm", "saas"}})
	require.NoError(t, err)

	s := svc.Sections(context.Background())
	require.Len(t, s.InProgress, 1)
	assert.Equal(t, "CRM Portal", s.InProgress[0].Title)
	assert.Empty(t, s.Live)
}
