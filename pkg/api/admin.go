package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/impactboard/admin-cli/pkg/approvals"
)

// AdminService wraps the moderation and dashboard endpoints.
type AdminService struct {
	c   *resty.Client
	now func() time.Time
}

func NewAdminService(c *resty.Client) *AdminService {
	return &AdminService{c: c, now: time.Now}
}

// GetDashboardStats retrieves the headline counts
func (s *AdminService) GetDashboardStats(ctx context.Context) Result[DashboardStats] {
	return call(ctx, s.c, "admin", "dashboard_stats", DashboardStats{}, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/api/admin/dashboard/stats")
	})
}

// GetPendingApprovals lists content awaiting moderation. Whatever shape the
// backend sends is normalized into approvals.Item values.
func (s *AdminService) GetPendingApprovals(ctx context.Context, p ListParams) (res Result[[]approvals.Item]) {
	const op = "pending_approvals"
	defer recoverResult(&res, []approvals.Item{}, "admin", op)

	env := do(ctx, s.c, "admin", op, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(p.Query()).Get("/api/admin/approvals/pending")
	})
	res = Result[[]approvals.Item]{Success: env.success, Data: []approvals.Item{}, Message: env.message, Err: env.err}
	if !env.success {
		return res
	}

	switch env.data.(type) {
	case nil, []any, map[string]any:
	default:
		shapeAnomaly("admin", op, fmt.Errorf("pending approvals payload is %T", env.data))
	}
	res.Data = approvals.NormalizeList(env.data, s.now())
	res.Pagination = listPagination(env, p.Limit)
	return res
}

// ApproveContent approves one pending item
func (s *AdminService) ApproveContent(ctx context.Context, contentType approvals.ContentType, id string) Result[any] {
	return call[any](ctx, s.c, "admin", "approve", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParams(map[string]string{"type": string(contentType), "id": id}).
			Post("/api/admin/approvals/{type}/{id}/approve")
	})
}

// RejectContent rejects one pending item. The reason is always sent, even
// when empty.
func (s *AdminService) RejectContent(ctx context.Context, contentType approvals.ContentType, id, reason string) Result[any] {
	return call[any](ctx, s.c, "admin", "reject", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParams(map[string]string{"type": string(contentType), "id": id}).
			SetBody(map[string]string{"reason": reason}).
			Post("/api/admin/approvals/{type}/{id}/reject")
	})
}
