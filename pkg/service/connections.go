package service

import (
	"context"
	"time"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/formatter"
	"github.com/impactboard/admin-cli/pkg/output"
)

// ConnectionService lists and answers connection requests.
type ConnectionService struct {
	connections *api.ConnectionsService
	now         func() time.Time
}

// NewConnectionService creates a new connection service
func NewConnectionService(svc *api.Services) *ConnectionService {
	return &ConnectionService{connections: svc.Connections, now: time.Now}
}

// ListConnections displays established connections
func (s *ConnectionService) ListConnections(ctx context.Context, p api.ListParams) error {
	res := s.connections.List(ctx, p)
	if err := api.AsError(res, "Failed to list connections"); err != nil {
		return err
	}
	if len(res.Data) == 0 {
		return printEmpty("No connections yet.")
	}

	now := s.now()
	rows := make([][]string, 0, len(res.Data))
	for _, c := range res.Data {
		rows = append(rows, []string{
			c.Key(),
			c.User.DisplayName(),
			formatter.OrDash(c.Status),
			formatter.RelativeTime(c.CreatedAt.Time, now),
		})
	}
	if err := output.PrintList(res.Data, []string{"ID", "USER", "STATUS", "SINCE"}, rows); err != nil {
		return err
	}
	printPagination(res.Pagination, len(res.Data))
	return nil
}

// ListRequests displays pending connection requests
func (s *ConnectionService) ListRequests(ctx context.Context, p api.ListParams) error {
	res := s.connections.ListRequests(ctx, p)
	if err := api.AsError(res, "Failed to list connection requests"); err != nil {
		return err
	}
	if len(res.Data) == 0 {
		return printEmpty("No pending connection requests.")
	}

	now := s.now()
	rows := make([][]string, 0, len(res.Data))
	for _, r := range res.Data {
		rows = append(rows, []string{
			r.Key(),
			r.Requester.DisplayName(),
			r.Recipient.DisplayName(),
			formatter.RelativeTime(r.CreatedAt.Time, now),
		})
	}
	return output.PrintList(res.Data, []string{"ID", "FROM", "TO", "SENT"}, rows)
}

// Accept accepts a connection request
func (s *ConnectionService) Accept(ctx context.Context, requestID string) error {
	if err := api.AsError(s.connections.Accept(ctx, requestID), "Failed to accept request"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Connection request accepted")
	return nil
}

// Decline declines a connection request
func (s *ConnectionService) Decline(ctx context.Context, requestID string) error {
	if err := api.AsError(s.connections.Decline(ctx, requestID), "Failed to decline request"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Connection request declined")
	return nil
}

// Remove deletes an established connection
func (s *ConnectionService) Remove(ctx context.Context, id string) error {
	if err := api.AsError(s.connections.Remove(ctx, id), "Failed to remove connection"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Connection removed")
	return nil
}
