package cli

import (
	"context"
	"fmt"

	"github.com/deckpilot/deckpilot/internal/client/api"
)

// Plans lists the purchasable membership tiers.
func (a *App) Plans(ctx context.Context) error {
	plans, err := a.client.ListPlans(ctx)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Println("No plans available.")
		return nil
	}
	for _, p := range plans {
		fmt.Printf("%s  %-24s  %-8s  %8.2f  %d images / %d premium\n",
			p.ID, p.Name, p.Level, float64(p.PriceCents)/100, p.ImageQuota, p.PremiumQuota)
	}
	return nil
}

// Quota shows the membership status and remaining generation allowance.
func (a *App) Quota(ctx context.Context) error {
	st, err := a.client.MembershipStatus(ctx)
	if err != nil {
		return err
	}

	display := st.Display
	if display == "" {
		display = st.EffectiveLevel
	}
	fmt.Printf("Membership: %s\n", display)
	if st.ExpiresAt != nil {
		fmt.Printf("Expires: %s\n", st.ExpiresAt.Format("2006-01-02"))
	}
	fmt.Printf("Image quota: %d, premium quota: %d\n", st.ImageQuota, st.PremiumQuota)
	if st.QuotaResetAt != nil {
		fmt.Printf("Quota resets: %s\n", st.QuotaResetAt.Format("2006-01-02"))
	}
	return nil
}

// Orders lists the user's orders or manages one.
//
//	orders               — list
//	orders new <plan id> — open a purchase order, prints the payment link
//	orders cancel <id>   — cancel a pending order
func (a *App) Orders(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "new":
			if len(args) < 2 {
				fmt.Println("Usage: orders new <plan id>")
				return nil
			}
			return a.orderNew(ctx, args[1])
		case "cancel":
			if len(args) < 2 {
				fmt.Println("Usage: orders cancel <order id>")
				return nil
			}
			return a.orderCancel(ctx, args[1])
		default:
			fmt.Println("Usage: orders [new <plan id> | cancel <order id>]")
			return nil
		}
	}

	orders, meta, err := a.client.MyOrders(ctx, api.ListQuery{Page: 1, PerPage: 50})
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders.")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("%s  %-20s  %-24s  %8.2f  %s\n",
			o.ID, o.OrderNo, o.PlanName, float64(o.AmountCents)/100, o.Status)
	}
	if meta != nil && meta.Total > len(orders) {
		fmt.Printf("(%d of %d shown)\n", len(orders), meta.Total)
	}
	return nil
}

func (a *App) orderNew(ctx context.Context, planID string) error {
	o, err := a.client.CreateOrder(ctx, planID)
	if err != nil {
		return err
	}

	fmt.Printf("Order %s created (%.2f).\n", o.OrderNo, float64(o.AmountCents)/100)
	if o.PayURL != "" {
		fmt.Printf("Pay at: %s\n", o.PayURL)
	}
	return nil
}

func (a *App) orderCancel(ctx context.Context, orderID string) error {
	o, err := a.client.CancelOrder(ctx, orderID)
	if err != nil {
		return err
	}
	fmt.Printf("Order %s cancelled.\n", o.OrderNo)
	return nil
}
