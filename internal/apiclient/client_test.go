package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio-go/internal/model"
)

func newTestClient(t *testing.T, r http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestNewRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"localhost:8080", "ftp://example.com", "://"} {
		_, err := New(raw)
		assert.Error(t, err, raw)
	}
}

func TestUserAuth(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/user-auth", func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		if req.Password == "admin" {
			writeJSON(w, http.StatusUnauthorized, model.UserAuthResponse{Error: "please use the admin login for admin access"})
			return
		}
		writeJSON(w, http.StatusOK, model.UserAuthResponse{OK: true, User: &model.Identity{Email: req.Email, Role: model.RoleUser}})
	})
	c := newTestClient(t, r)

	id, err := c.UserAuth(context.Background(), "ann@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, model.Identity{Email: "ann@example.com", Role: model.RoleUser}, id)

	_, err = c.UserAuth(context.Background(), "ann@example.com", "admin")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Contains(t, apiErr.Message, "admin login")
}

func TestAdminAuth(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/admin-auth", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.AdminAuthResponse{OK: true, Admin: &model.Identity{Email: "admin@example.com", Role: model.RoleAdmin}})
	})
	c := newTestClient(t, r)

	id, err := c.AdminAuth(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, id.Role)
}

func TestGetProjectNotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "project not found"})
	})
	c := newTestClient(t, r)

	_, err := c.GetProject(context.Background(), "42")
	assert.True(t, errors.Is(err, ErrNotFound))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "project not found", apiErr.Message)
}

func TestProjectCalls(t *testing.T) {
	stored := model.Project{ID: 7, Title: "Folio", Tags: []string{"go"}}

	r := chi.NewRouter()
	r.Get("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.ProjectListResponse{Projects: []model.Project{stored}})
	})
	r.Get("/api/projects/sections", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.ProjectSections{Live: []model.Project{stored}})
	})
	r.Get("/api/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", chi.URLParam(r, "id"))
		writeJSON(w, http.StatusOK, model.ProjectResponse{Project: stored})
	})
	r.Post("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		var in model.ProjectInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusCreated, model.ProjectResponse{Project: model.Project{ID: 8, Title: in.Title}})
	})
	r.Put("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var raw map[string]any
		require.NoError(t, json.Unmarshal(body, &raw))
		assert.Equal(t, float64(7), raw["id"])
		assert.Equal(t, "Renamed", raw["title"])
		writeJSON(w, http.StatusOK, model.ProjectResponse{Project: model.Project{ID: 7, Title: "Renamed"}})
	})
	c := newTestClient(t, r)
	ctx := context.Background()

	list, err := c.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Project{stored}, list)

	sections, err := c.Sections(ctx)
	require.NoError(t, err)
	assert.Len(t, sections.Live, 1)

	got, err := c.GetProject(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	created, err := c.CreateProject(ctx, model.ProjectInput{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), created.ID)

	updated, err := c.UpdateProject(ctx, 7, model.ProjectInput{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestSubmitContactAndSite(t *testing.T) {
	var got model.ContactRequest
	r := chi.NewRouter()
	r.Post("/api/contact", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
	})
	r.Get("/api/site", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.SiteProfile{Email: "hello@example.com"})
	})
	c := newTestClient(t, r)

	req := model.ContactRequest{Name: "Ann", Email: "ann@example.com", Message: "hi"}
	require.NoError(t, c.SubmitContact(context.Background(), req))
	assert.Equal(t, req, got)

	site, err := c.Site(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello@example.com", site.Email)
}

func TestPlainTextError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	err := c.Health(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Message)
}
