package service

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/approvals"
	clierrors "github.com/impactboard/admin-cli/pkg/errors"
	"github.com/impactboard/admin-cli/pkg/logger"
	"github.com/impactboard/admin-cli/pkg/metrics"
	"github.com/impactboard/admin-cli/pkg/notify"
	"github.com/impactboard/admin-cli/pkg/optimistic"
)

const demoFallbackMessage = "Failed to load approvals — using demo"

// ApprovalsBackend is the moderation API. *api.AdminService satisfies it.
type ApprovalsBackend interface {
	GetPendingApprovals(ctx context.Context, p api.ListParams) api.Result[[]approvals.Item]
	ApproveContent(ctx context.Context, contentType approvals.ContentType, id string) api.Result[any]
	RejectContent(ctx context.Context, contentType approvals.ContentType, id, reason string) api.Result[any]
}

// ApprovalsOptions configures the approvals controller.
type ApprovalsOptions struct {
	// DemoFallback shows the demo dataset when the initial load fails.
	DemoFallback bool
	PageSize     int
}

// DialogState is where the reject dialog is.
type DialogState int

const (
	DialogIdle DialogState = iota
	DialogCollectingReason
	DialogSubmitting
)

func (s DialogState) String() string {
	switch s {
	case DialogCollectingReason:
		return "collecting_reason"
	case DialogSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// ApprovalsService owns the pending-approvals list and moderates it
// optimistically: an item leaves the list as soon as it is approved or
// rejected and comes back if the backend refuses.
type ApprovalsService struct {
	backend ApprovalsBackend
	toasts  *notify.Queue
	list    *optimistic.List[approvals.Item]
	opts    ApprovalsOptions
	log     *log.Logger

	mu       sync.Mutex
	query    approvals.Query
	demo     bool
	dialog   DialogState
	rejectID string
}

// NewApprovalsService creates the controller with an empty list.
func NewApprovalsService(backend ApprovalsBackend, toasts *notify.Queue, opts ApprovalsOptions) *ApprovalsService {
	if toasts == nil {
		toasts = notify.NewQueue()
	}
	q := approvals.DefaultQuery()
	if opts.PageSize > 0 {
		q.Limit = opts.PageSize
	}
	return &ApprovalsService{
		backend: backend,
		toasts:  toasts,
		list:    optimistic.NewList(approvals.Key, nil),
		opts:    opts,
		log:     logger.With("component", "approvals"),
		query:   q,
	}
}

// Load replaces the list with the backend's pending items. It reports
// whether the backend answered; on failure the list holds the demo dataset
// or nothing, depending on DemoFallback.
func (s *ApprovalsService) Load(ctx context.Context) bool {
	res := s.backend.GetPendingApprovals(ctx, api.ListParams{})
	if res.Success {
		s.list.Replace(res.Data)
		s.setDemo(false)
		s.log.Debug("Loaded pending approvals", "count", len(res.Data))
		return true
	}

	if s.opts.DemoFallback {
		s.list.Replace(approvals.DemoItems())
		s.setDemo(true)
		metrics.DemoFallbacksTotal.Inc()
		s.log.Warn("Showing demo approvals", "message", res.Message)
		s.toasts.Error(demoFallbackMessage)
		return false
	}

	s.list.Replace(nil)
	s.setDemo(false)
	s.toasts.Error(api.MessageOr(res, "Failed to load approvals"))
	return false
}

func (s *ApprovalsService) setDemo(v bool) {
	s.mu.Lock()
	s.demo = v
	s.mu.Unlock()
}

// UsingDemoData reports whether the list is the demo dataset.
func (s *ApprovalsService) UsingDemoData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.demo
}

// Items returns every loaded item in backend order.
func (s *ApprovalsService) Items() []approvals.Item {
	return s.list.Items()
}

// Find looks an item up by its list ID or its content ID.
func (s *ApprovalsService) Find(id string) (approvals.Item, bool) {
	if it, ok := s.list.Get(id); ok {
		return it, true
	}
	for _, it := range s.list.Items() {
		if it.ContentID == id {
			return it, true
		}
	}
	return approvals.Item{}, false
}

// Query returns the current view settings.
func (s *ApprovalsService) Query() approvals.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// View filters, sorts and paginates the current list.
func (s *ApprovalsService) View() approvals.Page {
	return approvals.Apply(s.list.Items(), s.Query())
}

func (s *ApprovalsService) SetTypeFilter(t string) {
	s.mu.Lock()
	s.query.TypeFilter = t
	s.query.Page = 1
	s.mu.Unlock()
}

func (s *ApprovalsService) SetSearch(search string) {
	s.mu.Lock()
	s.query.Search = search
	s.query.Page = 1
	s.mu.Unlock()
}

func (s *ApprovalsService) ToggleSort(key approvals.SortKey) {
	s.mu.Lock()
	s.query = s.query.ToggleSort(key)
	s.mu.Unlock()
}

// SetSort selects a sort key and order directly.
func (s *ApprovalsService) SetSort(key approvals.SortKey, order approvals.SortOrder) {
	s.mu.Lock()
	s.query.SortBy = key
	s.query.SortOrder = order
	s.mu.Unlock()
}

func (s *ApprovalsService) SetPage(page int) {
	s.mu.Lock()
	s.query.Page = page
	s.mu.Unlock()
}

func (s *ApprovalsService) SetLimit(limit int) {
	s.mu.Lock()
	s.query.Limit = limit
	s.query.Page = 1
	s.mu.Unlock()
}

// Approve removes the item and asks the backend to approve it.
func (s *ApprovalsService) Approve(ctx context.Context, id string) Outcome {
	it, ok := s.Find(id)
	if !ok {
		return OutcomeNoop
	}
	m := s.list.Remove(approvals.Key(it))
	return settle(ctx, s.toasts, m, step{
		action:  "approve",
		pending: "Approving…",
		done:    "Approved",
		failed:  "Approve failed",
	}, func(ctx context.Context) api.Result[any] {
		return s.backend.ApproveContent(ctx, it.ContentType, it.ContentID)
	})
}

// DialogState returns the reject dialog state.
func (s *ApprovalsService) DialogState() DialogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialog
}

// RejectTarget returns the item the open reject dialog is for.
func (s *ApprovalsService) RejectTarget() (approvals.Item, bool) {
	s.mu.Lock()
	id := s.rejectID
	open := s.dialog != DialogIdle
	s.mu.Unlock()
	if !open {
		return approvals.Item{}, false
	}
	return s.list.Get(id)
}

// OpenReject starts collecting a rejection reason for id.
func (s *ApprovalsService) OpenReject(id string) error {
	it, ok := s.Find(id)
	if !ok {
		return clierrors.NotFoundError("Pending item", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog != DialogIdle {
		return clierrors.ConflictError("Another rejection is already in progress")
	}
	s.dialog = DialogCollectingReason
	s.rejectID = approvals.Key(it)
	return nil
}

// CancelReject closes the dialog without touching the list.
func (s *ApprovalsService) CancelReject() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog != DialogCollectingReason {
		return false
	}
	s.dialog = DialogIdle
	s.rejectID = ""
	return true
}

// SubmitReject rejects the dialog's item with reason, which may be empty.
// The dialog is idle again when it returns.
func (s *ApprovalsService) SubmitReject(ctx context.Context, reason string) (Outcome, error) {
	s.mu.Lock()
	if s.dialog != DialogCollectingReason {
		s.mu.Unlock()
		return OutcomeNoop, clierrors.ValidationError("reject", "no rejection is being collected")
	}
	s.dialog = DialogSubmitting
	id := s.rejectID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.dialog = DialogIdle
		s.rejectID = ""
		s.mu.Unlock()
	}()

	it, ok := s.list.Get(id)
	if !ok {
		return OutcomeNoop, nil
	}
	m := s.list.Remove(id)
	return settle(ctx, s.toasts, m, step{
		action:  "reject",
		pending: "Rejecting…",
		done:    "Rejected",
		failed:  "Reject failed",
	}, func(ctx context.Context) api.Result[any] {
		return s.backend.RejectContent(ctx, it.ContentType, it.ContentID, reason)
	}), nil
}

// Toasts exposes the notification queue.
func (s *ApprovalsService) Toasts() *notify.Queue {
	return s.toasts
}
