package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deckpilot/deckpilot/internal/common"
)

func TestListPlans_DecodesArrayData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/membership/plans", r.URL.Path)
		writeJSON(t, w, http.StatusOK,
			`{"success":true,"data":[{"id":"pl1","name":"Basic monthly","level":"basic","price_cents":990,"enabled":true},{"id":"pl2","name":"Premium yearly","level":"premium","price_cents":9900,"enabled":true}]}`)
	}, "")

	plans, err := c.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	require.Equal(t, "basic", plans[0].Level)
	require.Equal(t, int64(9900), plans[1].PriceCents)
}

func TestMembershipStatusAndQuota(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/membership/status":
			writeJSON(t, w, http.StatusOK,
				`{"success":true,"data":{"user_id":"u1","level":"premium","effective_level":"free","is_active":false,"image_quota":0,"premium_quota":0}}`)
		case "/api/membership/quota":
			writeJSON(t, w, http.StatusOK,
				`{"success":true,"data":{"image_quota":37,"premium_quota":4}}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}, "t")

	ctx := context.Background()

	st, err := c.MembershipStatus(ctx)
	require.NoError(t, err)
	// An expired premium membership reports free as the effective level.
	require.Equal(t, "premium", st.Level)
	require.Equal(t, "free", st.EffectiveLevel)
	require.False(t, st.IsActive)

	q, err := c.Quota(ctx)
	require.NoError(t, err)
	require.Equal(t, 37, q.ImageQuota)
	require.Equal(t, 4, q.PremiumQuota)
}

func TestCreateOrder_SendsPlanID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/orders", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "pl2", body["plan_id"])

		writeJSON(t, w, http.StatusOK,
			`{"success":true,"data":{"id":"o1","order_no":"20260830-001","plan_id":"pl2","status":"PENDING","pay_url":"https://pay.example/o1"}}`)
	}, "t")

	o, err := c.CreateOrder(context.Background(), "pl2")
	require.NoError(t, err)
	require.Equal(t, "PENDING", o.Status)
	require.Equal(t, "https://pay.example/o1", o.PayURL)
}

func TestMyOrders_QueryAndMeta(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/my", r.URL.Path)
		require.Equal(t, "PENDING", r.URL.Query().Get("status"))
		writeJSON(t, w, http.StatusOK,
			`{"success":true,"data":{"orders":[{"id":"o1","order_no":"20260830-001","status":"PENDING"}],"page":1,"per_page":10,"total":1}}`)
	}, "t")

	orders, meta, err := c.MyOrders(context.Background(), ListQuery{Page: 1, PerPage: 10, Status: "PENDING"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, 1, meta.Total)
}

func TestCancelOrder_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound,
			`{"success":false,"error":{"code":"ORDER_NOT_FOUND","message":"order not found"}}`)
	}, "t")

	_, err := c.CancelOrder(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestAdminUpdatePlan_PartialBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/admin/membership/plans/pl1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]any{"enabled": false}, body)

		writeJSON(t, w, http.StatusOK,
			`{"success":true,"data":{"id":"pl1","name":"Basic monthly","enabled":false}}`)
	}, "t")

	enabled := false
	p, err := c.AdminUpdatePlan(context.Background(), "pl1", PlanRequest{Enabled: &enabled})
	require.NoError(t, err)
	require.False(t, p.Enabled)
}
