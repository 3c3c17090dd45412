package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/deckpilot/deckpilot/internal/client/models"
)

// ListQuery carries common paging/filter parameters of admin listings.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Status  string
}

func (q ListQuery) encode() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", fmt.Sprint(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", fmt.Sprint(q.PerPage))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *HTTPClient) AdminListUsers(ctx context.Context, q ListQuery) ([]*models.User, *models.ListMeta, error) {
	var out struct {
		Users []*models.User `json:"users"`
		models.ListMeta
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users"+q.encode(), nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Users, &out.ListMeta, nil
}

func (c *HTTPClient) AdminCreateUser(ctx context.Context, username, password, role string) (*models.User, error) {
	body := map[string]string{"username": username, "password": password, "role": role}
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/users", body, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// AdminResetPassword sets a temporary password; the user must change it on
// next login.
func (c *HTTPClient) AdminResetPassword(ctx context.Context, userID string) (string, error) {
	var out struct {
		TemporaryPassword string `json:"temporary_password"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/users/"+userID+"/reset-password", nil, &out); err != nil {
		return "", err
	}
	return out.TemporaryPassword, nil
}

func (c *HTTPClient) AdminSetUserStatus(ctx context.Context, userID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/api/admin/users/"+userID+"/status", body, nil)
}

func (c *HTTPClient) AdminListProjects(ctx context.Context, q ListQuery) ([]*models.Project, *models.ListMeta, error) {
	var out struct {
		Projects []*models.Project `json:"projects"`
		models.ListMeta
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/projects"+q.encode(), nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Projects, &out.ListMeta, nil
}

func (c *HTTPClient) AdminDeleteProject(ctx context.Context, projectID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/projects/"+projectID, nil, nil)
}

func (c *HTTPClient) AdminListOrders(ctx context.Context, q ListQuery) ([]*models.Order, *models.ListMeta, error) {
	var out struct {
		Orders []*models.Order `json:"orders"`
		models.ListMeta
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders"+q.encode(), nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Orders, &out.ListMeta, nil
}

func (c *HTTPClient) AdminListAuditLogs(ctx context.Context, q ListQuery) ([]*models.AuditLog, *models.ListMeta, error) {
	var out struct {
		Logs []*models.AuditLog `json:"logs"`
		models.ListMeta
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/audit-logs"+q.encode(), nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Logs, &out.ListMeta, nil
}

func (c *HTTPClient) AdminGetConfig(ctx context.Context) (*models.SystemConfig, error) {
	var out models.SystemConfig
	if err := c.do(ctx, http.MethodGet, "/api/admin/config", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AdminUpdateConfig(ctx context.Context, cfg *models.SystemConfig) error {
	return c.do(ctx, http.MethodPut, "/api/admin/config", cfg, nil)
}
