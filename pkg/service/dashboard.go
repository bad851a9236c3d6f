package service

import (
	"context"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/output"
)

// DashboardService shows the platform's headline numbers.
type DashboardService struct {
	admin *api.AdminService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(svc *api.Services) *DashboardService {
	return &DashboardService{admin: svc.Admin}
}

// Show prints the dashboard counters
func (s *DashboardService) Show(ctx context.Context) error {
	res := s.admin.GetDashboardStats(ctx)
	if err := api.AsError(res, "Failed to load dashboard"); err != nil {
		return err
	}
	st := res.Data
	return output.PrintRecord("Dashboard", st, []output.Field{
		{Label: "Users", Value: int(st.TotalUsers)},
		{Label: "Active users", Value: int(st.ActiveUsers)},
		{Label: "Posts", Value: int(st.TotalPosts)},
		{Label: "Resources", Value: int(st.TotalResources)},
		{Label: "Stories", Value: int(st.TotalStories)},
		{Label: "Questions", Value: int(st.TotalQuestions)},
		{Label: "Connections", Value: int(st.TotalConnections)},
		{Label: "Pending approvals", Value: int(st.PendingApprovals)},
	})
}
