package api

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// ConnectionsService wraps /api/connections.
type ConnectionsService struct {
	c *resty.Client
}

func NewConnectionsService(c *resty.Client) *ConnectionsService {
	return &ConnectionsService{c: c}
}

// List retrieves established connections
func (s *ConnectionsService) List(ctx context.Context, p ListParams) Result[[]Connection] {
	return callList[Connection](ctx, s.c, "connections", "list", p.Limit, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(p.Query()).Get("/api/connections")
	})
}

// ListRequests retrieves pending connection requests
func (s *ConnectionsService) ListRequests(ctx context.Context, p ListParams) Result[[]ConnectionRequest] {
	return callList[ConnectionRequest](ctx, s.c, "connections", "list_requests", p.Limit, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(p.Query()).Get("/api/connections/requests")
	})
}

// Accept accepts a pending request
func (s *ConnectionsService) Accept(ctx context.Context, requestID string) Result[any] {
	return s.respond(ctx, "accept", requestID)
}

// Decline declines a pending request
func (s *ConnectionsService) Decline(ctx context.Context, requestID string) Result[any] {
	return s.respond(ctx, "decline", requestID)
}

func (s *ConnectionsService) respond(ctx context.Context, action, requestID string) Result[any] {
	return call[any](ctx, s.c, "connections", action, nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParams(map[string]string{"id": requestID, "action": action}).
			Post("/api/connections/requests/{id}/{action}")
	})
}

// Remove deletes an established connection
func (s *ConnectionsService) Remove(ctx context.Context, id string) Result[any] {
	return call[any](ctx, s.c, "connections", "remove", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Delete("/api/connections/{id}")
	})
}
