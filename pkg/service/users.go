package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/formatter"
	"github.com/impactboard/admin-cli/pkg/logger"
	"github.com/impactboard/admin-cli/pkg/output"
)

var (
	UserRoles    = []string{"user", "moderator", "admin"}
	UserStatuses = []string{"active", "suspended", "banned"}
)

// UserService manages member accounts.
type UserService struct {
	users *api.UsersService
	now   func() time.Time
}

// NewUserService creates a new user service
func NewUserService(svc *api.Services) *UserService {
	return &UserService{users: svc.Users, now: time.Now}
}

// ListUsers displays a page of accounts
func (s *UserService) ListUsers(ctx context.Context, p api.ListParams) error {
	res := s.users.List(ctx, p)
	if err := api.AsError(res, "Failed to list users"); err != nil {
		return err
	}
	if len(res.Data) == 0 {
		return printEmpty("No users found.")
	}

	now := s.now()
	rows := make([][]string, 0, len(res.Data))
	for _, u := range res.Data {
		rows = append(rows, []string{
			u.Key(),
			formatter.Truncate(u.DisplayName(), 28),
			formatter.OrDash(u.Email),
			formatter.OrDash(u.Role),
			statusCell(u.Status),
			formatter.RelativeTime(u.CreatedAt.Time, now),
		})
	}
	if err := output.PrintList(res.Data, []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "JOINED"}, rows); err != nil {
		return err
	}
	printPagination(res.Pagination, len(res.Data))
	return nil
}

func statusCell(status string) string {
	switch status {
	case "suspended":
		return formatter.Warning.Sprint(status)
	case "banned":
		return formatter.Error.Sprint(status)
	default:
		return formatter.OrDash(status)
	}
}

// ViewUser displays one account
func (s *UserService) ViewUser(ctx context.Context, id string) error {
	res := s.users.Get(ctx, id)
	if err := api.AsError(res, "Failed to fetch user"); err != nil {
		return err
	}
	u := res.Data
	return output.PrintRecord(u.DisplayName(), u, []output.Field{
		{Label: "ID", Value: u.Key()},
		{Label: "Username", Value: formatter.OrDash(u.Username)},
		{Label: "Email", Value: formatter.OrDash(u.Email)},
		{Label: "Role", Value: formatter.OrDash(u.Role)},
		{Label: "Status", Value: formatter.OrDash(u.Status)},
		{Label: "Joined", Value: formatter.RelativeTime(u.CreatedAt.Time, s.now())},
	})
}

// SetStatus activates, suspends or bans an account
func (s *UserService) SetStatus(ctx context.Context, id, status, reason string) error {
	if !slices.Contains(UserStatuses, status) {
		return fmt.Errorf("invalid status %q (want one of %v)", status, UserStatuses)
	}
	logger.Info("Updating user status", "user_id", id, "status", status)
	if err := api.AsError(s.users.UpdateStatus(ctx, id, status, reason), "Failed to update status"); err != nil {
		return err
	}
	output.PrintSuccess("✓ User %s is now %s", id, status)
	return nil
}

// SetRole changes an account's role
func (s *UserService) SetRole(ctx context.Context, id, role string) error {
	if !slices.Contains(UserRoles, role) {
		return fmt.Errorf("invalid role %q (want one of %v)", role, UserRoles)
	}
	logger.Info("Updating user role", "user_id", id, "role", role)
	if err := api.AsError(s.users.UpdateRole(ctx, id, role), "Failed to update role"); err != nil {
		return err
	}
	output.PrintSuccess("✓ User %s is now %s", id, role)
	return nil
}

// DeleteUser removes an account
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	logger.Info("Deleting user", "user_id", id)
	if err := api.AsError(s.users.Delete(ctx, id), "Failed to delete user"); err != nil {
		return err
	}
	output.PrintSuccess("✓ User deleted: %s", id)
	return nil
}
