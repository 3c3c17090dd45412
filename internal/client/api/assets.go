package api

import (
	"context"
	"io"
	"net/http"

	"github.com/deckpilot/deckpilot/internal/client/models"
)

// UploadMaterial uploads an asset usable across projects.
func (c *HTTPClient) UploadMaterial(ctx context.Context, filename string, r io.Reader) (*models.Material, error) {
	var out models.Material
	if err := c.upload(ctx, "/api/materials", nil, "file", filename, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListMaterials(ctx context.Context) ([]*models.Material, error) {
	var out struct {
		Materials []*models.Material `json:"materials"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/materials", nil, &out); err != nil {
		return nil, err
	}
	return out.Materials, nil
}

func (c *HTTPClient) DeleteMaterial(ctx context.Context, materialID string) error {
	return c.do(ctx, http.MethodDelete, "/api/materials/"+materialID, nil, nil)
}

// UploadReferenceFile attaches a document to a project as generation context.
func (c *HTTPClient) UploadReferenceFile(ctx context.Context, projectID, filename string, r io.Reader) (*models.ReferenceFile, error) {
	fields := map[string]string{"project_id": projectID}
	var out models.ReferenceFile
	if err := c.upload(ctx, "/api/reference-files", fields, "file", filename, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListReferenceFiles(ctx context.Context, projectID string) ([]*models.ReferenceFile, error) {
	var out struct {
		Files []*models.ReferenceFile `json:"files"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/reference-files?project_id="+projectID, nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

func (c *HTTPClient) DeleteReferenceFile(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/api/reference-files/"+fileID, nil, nil)
}

// ListTemplates returns the user's templates plus presets.
func (c *HTTPClient) ListTemplates(ctx context.Context) ([]*models.UserTemplate, error) {
	var out struct {
		Templates []*models.UserTemplate `json:"templates"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/user-templates", nil, &out); err != nil {
		return nil, err
	}
	return out.Templates, nil
}

// UploadTemplate adds a custom template.
func (c *HTTPClient) UploadTemplate(ctx context.Context, name, filename string, r io.Reader) (*models.UserTemplate, error) {
	fields := map[string]string{"name": name}
	var out models.UserTemplate
	if err := c.upload(ctx, "/api/user-templates", fields, "file", filename, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteTemplate(ctx context.Context, templateID string) error {
	return c.do(ctx, http.MethodDelete, "/api/user-templates/"+templateID, nil, nil)
}
