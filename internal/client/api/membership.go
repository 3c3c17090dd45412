package api

import (
	"context"
	"net/http"

	"github.com/deckpilot/deckpilot/internal/client/models"
)

// ListPlans returns the purchasable membership tiers. Public endpoint.
func (c *HTTPClient) ListPlans(ctx context.Context) ([]*models.MembershipPlan, error) {
	var out []*models.MembershipPlan
	if err := c.do(ctx, http.MethodGet, "/api/membership/plans", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MembershipStatus returns the user's current tier, expiry and quotas.
func (c *HTTPClient) MembershipStatus(ctx context.Context) (*models.MembershipStatus, error) {
	var out models.MembershipStatus
	if err := c.do(ctx, http.MethodGet, "/api/membership/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Quota returns the remaining generation allowance.
func (c *HTTPClient) Quota(ctx context.Context) (*models.QuotaStatus, error) {
	var out models.QuotaStatus
	if err := c.do(ctx, http.MethodGet, "/api/membership/quota", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder opens a purchase order for the given plan. The returned order
// carries the external payment page URL while it is pending.
func (c *HTTPClient) CreateOrder(ctx context.Context, planID string) (*models.Order, error) {
	body := map[string]string{"plan_id": planID}
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyOrders lists the authenticated user's orders, newest first.
func (c *HTTPClient) MyOrders(ctx context.Context, q ListQuery) ([]*models.Order, *models.ListMeta, error) {
	var out struct {
		Orders []*models.Order `json:"orders"`
		models.ListMeta
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/my"+q.encode(), nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Orders, &out.ListMeta, nil
}

// CancelOrder cancels a pending order.
func (c *HTTPClient) CancelOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders/"+orderID+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlanRequest carries plan fields for admin create/update calls. Pointer
// fields are omitted when nil, so updates can be partial.
type PlanRequest struct {
	Name         *string `json:"name,omitempty"`
	Level        *string `json:"level,omitempty"`
	PeriodType   *string `json:"period_type,omitempty"`
	PriceCents   *int64  `json:"price_cents,omitempty"`
	DurationDays *int    `json:"duration_days,omitempty"`
	ImageQuota   *int    `json:"image_quota,omitempty"`
	PremiumQuota *int    `json:"premium_quota,omitempty"`
	Enabled      *bool   `json:"enabled,omitempty"`
}

// AdminListPlans lists every plan, including disabled and default ones.
func (c *HTTPClient) AdminListPlans(ctx context.Context) ([]*models.MembershipPlan, error) {
	var out []*models.MembershipPlan
	if err := c.do(ctx, http.MethodGet, "/api/admin/membership/plans", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AdminCreatePlan(ctx context.Context, req PlanRequest) (*models.MembershipPlan, error) {
	var out models.MembershipPlan
	if err := c.do(ctx, http.MethodPost, "/api/admin/membership/plans", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AdminUpdatePlan(ctx context.Context, planID string, req PlanRequest) (*models.MembershipPlan, error) {
	var out models.MembershipPlan
	if err := c.do(ctx, http.MethodPut, "/api/admin/membership/plans/"+planID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeletePlan removes a plan. The server refuses to delete the default
// plan or one that users still hold.
func (c *HTTPClient) AdminDeletePlan(ctx context.Context, planID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/membership/plans/"+planID, nil, nil)
}
