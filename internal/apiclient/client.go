package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/folio/folio-go/internal/model"
)

const DefaultTimeout = 30 * time.Second

var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// Client talks to the portfolio API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the server at baseURL.
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server URL must be http or https: %q", baseURL)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Health checks GET /health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// UserAuth signs in through POST /api/user-auth.
func (c *Client) UserAuth(ctx context.Context, email, password string) (model.Identity, error) {
	var resp model.UserAuthResponse
	err := c.do(ctx, http.MethodPost, "/api/user-auth", model.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return model.Identity{}, err
	}
	if !resp.OK || resp.User == nil {
		return model.Identity{}, &APIError{Status: http.StatusOK, Message: "malformed login response"}
	}
	return *resp.User, nil
}

// AdminAuth signs in through POST /api/admin-auth.
func (c *Client) AdminAuth(ctx context.Context, email, password string) (model.Identity, error) {
	var resp model.AdminAuthResponse
	err := c.do(ctx, http.MethodPost, "/api/admin-auth", model.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return model.Identity{}, err
	}
	if !resp.OK || resp.Admin == nil {
		return model.Identity{}, &APIError{Status: http.StatusOK, Message: "malformed login response"}
	}
	return *resp.Admin, nil
}

// ListProjects fetches the catalog, newest first.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var resp model.ProjectListResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// Sections fetches the catalog grouped for display.
func (c *Client) Sections(ctx context.Context) (model.ProjectSections, error) {
	var resp model.ProjectSections
	err := c.do(ctx, http.MethodGet, "/api/projects/sections", nil, &resp)
	return resp, err
}

// GetProject fetches one project. Unknown ids return ErrNotFound.
func (c *Client) GetProject(ctx context.Context, id string) (model.Project, error) {
	var resp model.ProjectResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, &resp); err != nil {
		return model.Project{}, err
	}
	return resp.Project, nil
}

// CreateProject adds a project.
func (c *Client) CreateProject(ctx context.Context, in model.ProjectInput) (model.Project, error) {
	var resp model.ProjectResponse
	if err := c.do(ctx, http.MethodPost, "/api/projects", in, &resp); err != nil {
		return model.Project{}, err
	}
	return resp.Project, nil
}

// UpdateProject overwrites every field of project id.
func (c *Client) UpdateProject(ctx context.Context, id int64, in model.ProjectInput) (model.Project, error) {
	var resp model.ProjectResponse
	req := model.UpdateProjectRequest{ID: model.ProjectID(id), ProjectInput: in}
	if err := c.do(ctx, http.MethodPut, "/api/projects", req, &resp); err != nil {
		return model.Project{}, err
	}
	return resp.Project, nil
}

// SubmitContact sends a contact-form message.
func (c *Client) SubmitContact(ctx context.Context, req model.ContactRequest) error {
	return c.do(ctx, http.MethodPost, "/api/contact", req, nil)
}

// Site fetches the public contact channels.
func (c *Client) Site(ctx context.Context) (model.SiteProfile, error) {
	var resp model.SiteProfile
	err := c.do(ctx, http.MethodGet, "/api/site", nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &payload) == nil {
		msg = payload.Error
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: msg}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
	}
	return apiErr
}
