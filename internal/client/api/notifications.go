package api

import (
	"context"
	"net/http"

	"github.com/deckpilot/deckpilot/internal/client/models"
)

func (c *HTTPClient) ListNotifications(ctx context.Context, onlyUnread bool) ([]*models.Notification, error) {
	path := "/api/notifications"
	if onlyUnread {
		path += "?unread=true"
	}
	var out struct {
		Notifications []*models.Notification `json:"notifications"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}

func (c *HTTPClient) UnreadNotificationCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/"+notificationID+"/read", nil, nil)
}

// AdminPublishNotification publishes an announcement to all users.
func (c *HTTPClient) AdminPublishNotification(ctx context.Context, title, content, notifType string) (*models.Notification, error) {
	body := map[string]string{"title": title, "content": content, "type": notifType}
	var out models.Notification
	if err := c.do(ctx, http.MethodPost, "/api/notifications/admin/publish", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteNotification withdraws a published announcement.
func (c *HTTPClient) AdminDeleteNotification(ctx context.Context, notificationID string) error {
	return c.do(ctx, http.MethodDelete, "/api/notifications/admin/"+notificationID, nil, nil)
}
