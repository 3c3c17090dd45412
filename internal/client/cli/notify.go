package cli

import (
	"context"
	"fmt"
)

// Notifications lists announcements or marks one as read.
//
//	notifications            — list all
//	notifications unread     — list unread only
//	notifications read <id>  — mark as read
func (a *App) Notifications(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "read" {
		if len(args) < 2 {
			fmt.Println("Usage: notifications read <id>")
			return nil
		}
		if err := a.client.MarkNotificationRead(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Marked as read.")
		return nil
	}

	onlyUnread := len(args) > 0 && args[0] == "unread"
	items, err := a.client.ListNotifications(ctx, onlyUnread)
	if err != nil {
		return err
	}

	if !onlyUnread {
		if count, err := a.client.UnreadNotificationCount(ctx); err == nil && count > 0 {
			fmt.Printf("%d unread.\n", count)
		}
	}

	if len(items) == 0 {
		fmt.Println("No notifications.")
		return nil
	}
	for _, n := range items {
		mark := " "
		if !n.IsRead {
			mark = "*"
		}
		fmt.Printf("%s %s  [%s] %s\n", mark, n.ID, n.Type, n.Title)
		if n.Content != "" {
			fmt.Printf("    %s\n", n.Content)
		}
	}
	return nil
}
