package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/deckpilot/deckpilot/internal/client/models"
)

// CreateProjectRequest seeds a new project. Exactly one of Idea, Outline or
// Description should be set, matching the creation mode.
type CreateProjectRequest struct {
	Title        string              `json:"title"`
	CreationMode models.CreationMode `json:"creation_mode"`
	Idea         string              `json:"idea,omitempty"`
	Outline      []string            `json:"outline,omitempty"`
	Description  string              `json:"description,omitempty"`
	TemplateID   string              `json:"template_id,omitempty"`
}

// UpdateProjectRequest carries a partial project update.
type UpdateProjectRequest struct {
	Title      *string `json:"title,omitempty"`
	TemplateID *string `json:"template_id,omitempty"`
}

// PageRequest carries page content for create/update calls.
type PageRequest struct {
	Outline     string                    `json:"outline,omitempty"`
	Description []models.DescriptionBlock `json:"description,omitempty"`
	OrderIndex  *int                      `json:"order_index,omitempty"`
}

func (c *HTTPClient) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListProjects(ctx context.Context, page, perPage int) ([]*models.Project, *models.ListMeta, error) {
	var out struct {
		Projects []*models.Project `json:"projects"`
		models.ListMeta
	}
	path := fmt.Sprintf("/api/projects?page=%d&per_page=%d", page, perPage)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Projects, &out.ListMeta, nil
}

func (c *HTTPClient) UpdateProject(ctx context.Context, projectID string, req UpdateProjectRequest) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+projectID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProject(ctx context.Context, projectID string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+projectID, nil, nil)
}

func (c *HTTPClient) AddPage(ctx context.Context, projectID string, req PageRequest) (*models.Page, error) {
	var out models.Page
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/pages", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePage(ctx context.Context, projectID, pageID string, req PageRequest) (*models.Page, error) {
	var out models.Page
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+projectID+"/pages/"+pageID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePage(ctx context.Context, projectID, pageID string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+projectID+"/pages/"+pageID, nil, nil)
}
