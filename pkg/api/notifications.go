package api

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// NotificationsService wraps /api/notifications and the admin broadcast.
type NotificationsService struct {
	c *resty.Client
}

func NewNotificationsService(c *resty.Client) *NotificationsService {
	return &NotificationsService{c: c}
}

// List retrieves notifications with pagination
func (s *NotificationsService) List(ctx context.Context, p ListParams) Result[[]Notification] {
	return callList[Notification](ctx, s.c, "notifications", "list", p.Limit, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(p.Query()).Get("/api/notifications")
	})
}

// UnreadCount retrieves the count of unread notifications
func (s *NotificationsService) UnreadCount(ctx context.Context) Result[UnreadCount] {
	return call(ctx, s.c, "notifications", "unread_count", UnreadCount{}, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/api/notifications/unread-count")
	})
}

// MarkRead marks a single notification as read
func (s *NotificationsService) MarkRead(ctx context.Context, id string) Result[any] {
	return call[any](ctx, s.c, "notifications", "mark_read", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Put("/api/notifications/{id}/read")
	})
}

// MarkAllRead marks every notification as read
func (s *NotificationsService) MarkAllRead(ctx context.Context) Result[any] {
	return call[any](ctx, s.c, "notifications", "mark_all_read", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.Put("/api/notifications/read-all")
	})
}

// Delete removes a notification
func (s *NotificationsService) Delete(ctx context.Context, id string) Result[any] {
	return call[any](ctx, s.c, "notifications", "delete", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Delete("/api/notifications/{id}")
	})
}

// Broadcast sends a notification to every user in the audience
func (s *NotificationsService) Broadcast(ctx context.Context, in BroadcastInput) Result[any] {
	return call[any](ctx, s.c, "notifications", "broadcast", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(in).Post("/api/admin/notifications/broadcast")
	})
}
