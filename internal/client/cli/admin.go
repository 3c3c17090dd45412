package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/deckpilot/deckpilot/internal/client/api"
)

// Admin dispatches the back-office subcommands. Every call is rejected
// locally for non-admin accounts; the server enforces the same rule.
//
//	admin users [search]        — list accounts
//	admin adduser               — create an account (interactive)
//	admin resetpw <user id>     — reset a password, prints the new one
//	admin status <user id> <s>  — set account status (active|disabled)
//	admin projects [search]     — list all projects
//	admin delproject <id>       — delete any project
//	admin orders                — list orders
//	admin plans                 — list all membership plans
//	admin addplan               — create a plan (interactive)
//	admin setplan <id> on|off   — enable or disable a plan
//	admin delplan <id>          — delete a plan
//	admin audit                 — list audit log entries
//	admin config                — show system configuration
//	admin registration on|off   — toggle open registration
//	admin publish               — publish a notification (interactive)
//	admin delnotice <id>        — delete a notification
func (a *App) Admin(ctx context.Context, args []string) error {
	u := a.session.User()
	if !u.IsAdmin() {
		fmt.Println("Admin commands require an administrator account.")
		return nil
	}
	if len(args) == 0 {
		fmt.Println("Usage: admin users|adduser|resetpw|status|projects|delproject|orders|plans|addplan|setplan|delplan|audit|config|registration|publish|delnotice")
		return nil
	}

	rest := args[1:]
	switch args[0] {
	case "users":
		return a.adminUsers(ctx, rest)
	case "adduser":
		return a.adminAddUser(ctx)
	case "resetpw":
		return a.adminResetPassword(ctx, rest)
	case "status":
		return a.adminSetStatus(ctx, rest)
	case "projects":
		return a.adminProjects(ctx, rest)
	case "delproject":
		return a.adminDeleteProject(ctx, rest)
	case "orders":
		return a.adminOrders(ctx)
	case "plans":
		return a.adminPlans(ctx)
	case "addplan":
		return a.adminAddPlan(ctx)
	case "setplan":
		return a.adminSetPlan(ctx, rest)
	case "delplan":
		return a.adminDeletePlan(ctx, rest)
	case "audit":
		return a.adminAudit(ctx)
	case "config":
		return a.adminConfig(ctx)
	case "registration":
		return a.adminRegistration(ctx, rest)
	case "publish":
		return a.adminPublish(ctx)
	case "delnotice":
		return a.adminDeleteNotice(ctx, rest)
	default:
		fmt.Println("Unknown admin command:", args[0])
		return nil
	}
}

func (a *App) adminUsers(ctx context.Context, args []string) error {
	q := api.ListQuery{Page: 1, PerPage: 50}
	if len(args) > 0 {
		q.Search = args[0]
	}

	users, meta, err := a.client.AdminListUsers(ctx, q)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("%s  %-20s  %-6s  %s\n", u.ID, u.Username, u.Role, u.Status)
	}
	if meta != nil {
		fmt.Printf("(%d total)\n", meta.Total)
	}
	return nil
}

func (a *App) adminAddUser(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Role (user/admin)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Initial password")
	if err != nil {
		return err
	}

	u, err := a.client.AdminCreateUser(ctx, username, string(password), role)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s (%s). The user must change the password on first login.\n", u.Username, u.ID)
	return nil
}

func (a *App) adminResetPassword(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: admin resetpw <user id>")
		return nil
	}

	pw, err := a.client.AdminResetPassword(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("New password: %s\n", pw)
	return nil
}

func (a *App) adminSetStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Println("Usage: admin status <user id> active|disabled")
		return nil
	}

	if err := a.client.AdminSetUserStatus(ctx, args[0], args[1]); err != nil {
		return err
	}

	fmt.Println("Status updated.")
	return nil
}

func (a *App) adminProjects(ctx context.Context, args []string) error {
	q := api.ListQuery{Page: 1, PerPage: 50}
	if len(args) > 0 {
		q.Search = args[0]
	}

	projects, meta, err := a.client.AdminListProjects(ctx, q)
	if err != nil {
		return err
	}
	for _, p := range projects {
		fmt.Printf("%s  %-30s  %s\n", p.ID, p.Title, p.Status)
	}
	if meta != nil {
		fmt.Printf("(%d total)\n", meta.Total)
	}
	return nil
}

func (a *App) adminDeleteProject(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: admin delproject <project id>")
		return nil
	}

	if err := a.client.AdminDeleteProject(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Project deleted.")
	return nil
}

func (a *App) adminOrders(ctx context.Context) error {
	orders, meta, err := a.client.AdminListOrders(ctx, api.ListQuery{Page: 1, PerPage: 50})
	if err != nil {
		return err
	}
	for _, o := range orders {
		fmt.Printf("%s  %-20s  %8.2f  %s\n", o.OrderNo, o.Username, float64(o.AmountCents)/100, o.Status)
	}
	if meta != nil {
		fmt.Printf("(%d total)\n", meta.Total)
	}
	return nil
}

func (a *App) adminPlans(ctx context.Context) error {
	plans, err := a.client.AdminListPlans(ctx)
	if err != nil {
		return err
	}
	for _, p := range plans {
		state := "off"
		if p.Enabled {
			state = "on"
		}
		fmt.Printf("%s  %-24s  %-8s  %8.2f  %-3s  %d images / %d premium\n",
			p.ID, p.Name, p.Level, float64(p.PriceCents)/100, state, p.ImageQuota, p.PremiumQuota)
	}
	return nil
}

func (a *App) adminAddPlan(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	level, err := getSimpleText(a.reader, "Level (free/basic/premium)", os.Stdout)
	if err != nil {
		return err
	}
	priceText, err := getSimpleText(a.reader, "Price (e.g. 9.90)", os.Stdout)
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q", priceText)
	}
	daysText, err := getSimpleText(a.reader, "Duration in days", os.Stdout)
	if err != nil {
		return err
	}
	days, err := strconv.Atoi(daysText)
	if err != nil {
		return fmt.Errorf("invalid duration %q", daysText)
	}
	quotaText, err := getSimpleText(a.reader, "Image quota per period", os.Stdout)
	if err != nil {
		return err
	}
	quota, err := strconv.Atoi(quotaText)
	if err != nil {
		return fmt.Errorf("invalid quota %q", quotaText)
	}

	cents := int64(price * 100)
	enabled := true
	p, err := a.client.AdminCreatePlan(ctx, api.PlanRequest{
		Name:         &name,
		Level:        &level,
		PriceCents:   &cents,
		DurationDays: &days,
		ImageQuota:   &quota,
		Enabled:      &enabled,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created plan %s\n", p.ID)
	return nil
}

func (a *App) adminSetPlan(ctx context.Context, args []string) error {
	if len(args) < 2 || (args[1] != "on" && args[1] != "off") {
		fmt.Println("Usage: admin setplan <plan id> on|off")
		return nil
	}

	enabled := args[1] == "on"
	if _, err := a.client.AdminUpdatePlan(ctx, args[0], api.PlanRequest{Enabled: &enabled}); err != nil {
		return err
	}

	fmt.Println("Plan updated.")
	return nil
}

func (a *App) adminDeletePlan(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: admin delplan <plan id>")
		return nil
	}

	if err := a.client.AdminDeletePlan(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Plan deleted.")
	return nil
}

func (a *App) adminAudit(ctx context.Context) error {
	logs, _, err := a.client.AdminListAuditLogs(ctx, api.ListQuery{Page: 1, PerPage: 50})
	if err != nil {
		return err
	}
	for _, l := range logs {
		fmt.Printf("%s  %-16s  %-24s  %s\n",
			l.CreatedAt.Format("2006-01-02 15:04"), l.Username, l.Action, l.Resource)
	}
	return nil
}

func (a *App) adminConfig(ctx context.Context) error {
	cfg, err := a.client.AdminGetConfig(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Registration open: %s\n", strconv.FormatBool(cfg.AllowRegistration))
	if cfg.OCREngine != "" {
		fmt.Printf("OCR engine: %s\n", cfg.OCREngine)
	}
	if cfg.MaintenanceNotice != "" {
		fmt.Printf("Maintenance notice: %s\n", cfg.MaintenanceNotice)
	}
	return nil
}

func (a *App) adminRegistration(ctx context.Context, args []string) error {
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		fmt.Println("Usage: admin registration on|off")
		return nil
	}

	cfg, err := a.client.AdminGetConfig(ctx)
	if err != nil {
		return err
	}
	cfg.AllowRegistration = args[0] == "on"

	if err := a.client.AdminUpdateConfig(ctx, cfg); err != nil {
		return err
	}

	fmt.Println("Configuration updated.")
	return nil
}

func (a *App) adminPublish(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		return err
	}
	notifType, err := getSimpleText(a.reader, "Type (system/membership/feature)", os.Stdout)
	if err != nil {
		return err
	}

	n, err := a.client.AdminPublishNotification(ctx, title, content, notifType)
	if err != nil {
		return err
	}

	fmt.Printf("Published %s\n", n.ID)
	return nil
}

func (a *App) adminDeleteNotice(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: admin delnotice <id>")
		return nil
	}

	if err := a.client.AdminDeleteNotification(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Notification deleted.")
	return nil
}
