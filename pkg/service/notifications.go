package service

import (
	"context"
	"fmt"
	"time"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/formatter"
	"github.com/impactboard/admin-cli/pkg/logger"
	"github.com/impactboard/admin-cli/pkg/output"
)

// NotificationService provides notification-related operations
type NotificationService struct {
	notifications *api.NotificationsService
	now           func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(svc *api.Services) *NotificationService {
	return &NotificationService{notifications: svc.Notifications, now: time.Now}
}

// ListNotifications displays the admin's notifications
func (s *NotificationService) ListNotifications(ctx context.Context, p api.ListParams) error {
	logger.Debug("Listing notifications", "page", p.Page)
	res := s.notifications.List(ctx, p)
	if err := api.AsError(res, "Failed to list notifications"); err != nil {
		return err
	}
	if len(res.Data) == 0 {
		return printEmpty("No notifications.")
	}

	now := s.now()
	rows := make([][]string, 0, len(res.Data))
	for _, n := range res.Data {
		mark := " "
		if !n.Read {
			mark = "●"
		}
		text := n.Message
		if n.Title != "" {
			text = n.Title + ": " + n.Message
		}
		rows = append(rows, []string{
			mark,
			n.Key(),
			formatter.OrDash(n.Type),
			formatter.Truncate(text, 60),
			formatter.RelativeTime(n.CreatedAt.Time, now),
		})
	}
	if err := output.PrintList(res.Data, []string{"", "ID", "TYPE", "MESSAGE", "WHEN"}, rows); err != nil {
		return err
	}
	printPagination(res.Pagination, len(res.Data))
	return nil
}

// UnreadCount displays the count of unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context) error {
	res := s.notifications.UnreadCount(ctx)
	if err := api.AsError(res, "Failed to get unread count"); err != nil {
		return err
	}
	count := int(res.Data.Count)
	if output.GetOutputFormat() == output.FormatJSON {
		return output.PrintJSON(res.Data)
	}
	if count == 0 {
		output.PrintInfo("No unread notifications.")
		return nil
	}
	fmt.Fprintf(output.Out, "📬 %s\n", formatter.Count(count, "unread notification"))
	return nil
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if err := api.AsError(s.notifications.MarkRead(ctx, id), "Failed to mark notification as read"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Notification marked as read.")
	return nil
}

// MarkAllRead marks every notification as read
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	if err := api.AsError(s.notifications.MarkAllRead(ctx), "Failed to mark all as read"); err != nil {
		return err
	}
	output.PrintSuccess("✓ All notifications marked as read.")
	return nil
}

// Delete removes a notification
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	if err := api.AsError(s.notifications.Delete(ctx, id), "Failed to delete notification"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Notification deleted.")
	return nil
}

// Broadcast sends an announcement to an audience (all members by default)
func (s *NotificationService) Broadcast(ctx context.Context, in api.BroadcastInput) error {
	if in.Title == "" || in.Message == "" {
		return fmt.Errorf("title and message are required")
	}
	logger.Info("Broadcasting notification", "audience", in.Audience)
	if err := api.AsError(s.notifications.Broadcast(ctx, in), "Broadcast failed"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Broadcast sent.")
	return nil
}
