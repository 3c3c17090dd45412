package api

import (
	"context"
	"net/http"

	"github.com/deckpilot/deckpilot/internal/client/models"
)

// startedTask is the immediate response of every async generation call.
type startedTask struct {
	TaskID string `json:"task_id"`
}

// GenerateOutline produces the project outline synchronously and returns
// the updated project.
func (c *HTTPClient) GenerateOutline(ctx context.Context, projectID string) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/generate/outline", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateFromDescription builds pages from the free-form description the
// project was created with.
func (c *HTTPClient) GenerateFromDescription(ctx context.Context, projectID string) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/generate/from-description", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateDescriptions starts the batch description task and returns its id.
func (c *HTTPClient) GenerateDescriptions(ctx context.Context, projectID string) (string, error) {
	var out startedTask
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/generate/descriptions", nil, &out); err != nil {
		return "", err
	}
	return out.TaskID, nil
}

// GeneratePageDescription regenerates one page's description synchronously.
func (c *HTTPClient) GeneratePageDescription(ctx context.Context, projectID, pageID string) (*models.Page, error) {
	var out models.Page
	path := "/api/projects/" + projectID + "/pages/" + pageID + "/generate/description"
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateImages starts the batch image generation task and returns its id.
func (c *HTTPClient) GenerateImages(ctx context.Context, projectID string) (string, error) {
	var out startedTask
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/generate/images", nil, &out); err != nil {
		return "", err
	}
	return out.TaskID, nil
}

// GeneratePageImage starts a single-page image task and returns its id.
func (c *HTTPClient) GeneratePageImage(ctx context.Context, projectID, pageID string) (string, error) {
	var out startedTask
	path := "/api/projects/" + projectID + "/pages/" + pageID + "/generate/image"
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return "", err
	}
	return out.TaskID, nil
}

// RefineOutline rewrites the outline following a user instruction.
func (c *HTTPClient) RefineOutline(ctx context.Context, projectID, instruction string) (*models.Project, error) {
	body := map[string]string{"instruction": instruction}
	var out models.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/refine/outline", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefineDescriptions rewrites page descriptions following a user instruction.
func (c *HTTPClient) RefineDescriptions(ctx context.Context, projectID, instruction string) (*models.Project, error) {
	body := map[string]string{"instruction": instruction}
	var out models.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/refine/descriptions", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
