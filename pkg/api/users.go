package api

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// UsersService wraps the admin user management endpoints.
type UsersService struct {
	c *resty.Client
}

func NewUsersService(c *resty.Client) *UsersService {
	return &UsersService{c: c}
}

// List retrieves users, filtered by status, role (Type) or search
func (s *UsersService) List(ctx context.Context, p ListParams) Result[[]User] {
	return callList[User](ctx, s.c, "users", "list", p.Limit, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(p.Query()).Get("/api/admin/users")
	})
}

// Get retrieves one user
func (s *UsersService) Get(ctx context.Context, id string) Result[User] {
	return call(ctx, s.c, "users", "get", User{}, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Get("/api/admin/users/{id}")
	})
}

// UpdateStatus activates, suspends or bans a user
func (s *UsersService) UpdateStatus(ctx context.Context, id, status, reason string) Result[User] {
	return call(ctx, s.c, "users", "update_status", User{}, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).
			SetBody(StatusUpdate{Status: status, Reason: reason}).
			Put("/api/admin/users/{id}/status")
	})
}

// UpdateRole changes a user's role
func (s *UsersService) UpdateRole(ctx context.Context, id, role string) Result[User] {
	return call(ctx, s.c, "users", "update_role", User{}, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).
			SetBody(RoleUpdate{Role: role}).
			Put("/api/admin/users/{id}/role")
	})
}

// Delete removes a user account
func (s *UsersService) Delete(ctx context.Context, id string) Result[any] {
	return call[any](ctx, s.c, "users", "delete", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Delete("/api/admin/users/{id}")
	})
}
