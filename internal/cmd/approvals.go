package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/approvals"
	"github.com/impactboard/admin-cli/pkg/config"
	clierrors "github.com/impactboard/admin-cli/pkg/errors"
	"github.com/impactboard/admin-cli/pkg/output"
	"github.com/impactboard/admin-cli/pkg/prompter"
	"github.com/impactboard/admin-cli/pkg/service"
)

// cancelWord aborts the reason prompt.
const cancelWord = ":cancel"

var (
	approvalsType   string
	approvalsSearch string
	approvalsSort   string
	approvalsOrder  string
	approvalsPage   int
	approvalsLimit  int
	rejectReason    string
	rejectNoReason  bool
)

var approvalsCmd = &cobra.Command{
	Use:     "approvals",
	Aliases: []string{"approval", "queue"},
	Short:   "Review pending submissions",
	Long:    "List, approve and reject posts, resources, Q&A and stories awaiting moderation",
}

// loadApprovals builds the controller and loads the pending list.
func loadApprovals(ctx context.Context) *service.ApprovalsService {
	svc := service.NewApprovalsService(api.Default().Admin, newToasts(), service.ApprovalsOptions{
		DemoFallback: config.GetBool("approvals.demo_fallback"),
		PageSize:     config.GetInt("approvals.page_size"),
	})
	svc.Load(ctx)
	return svc
}

// applyViewFlags copies the list flags onto the controller's query.
func applyViewFlags(cmd *cobra.Command, svc *service.ApprovalsService) error {
	if cmd.Flags().Changed("type") && approvalsType != approvals.TypeAll {
		if !approvals.ContentType(approvalsType).Valid() {
			return clierrors.ValidationError("type", "must be one of all, post, resource, qna, story")
		}
	}
	svc.SetTypeFilter(approvalsType)
	svc.SetSearch(approvalsSearch)

	if cmd.Flags().Changed("sort") || cmd.Flags().Changed("order") {
		q := svc.Query()
		key, order := q.SortBy, q.SortOrder
		if approvalsSort != "" {
			k, ok := approvals.ParseSortKey(approvalsSort)
			if !ok {
				return clierrors.ValidationError("sort", "must be one of title, author, type, submitted")
			}
			key = k
		}
		switch strings.ToLower(approvalsOrder) {
		case "":
		case string(approvals.Asc):
			order = approvals.Asc
		case string(approvals.Desc):
			order = approvals.Desc
		default:
			return clierrors.ValidationError("order", "must be asc or desc")
		}
		svc.SetSort(key, order)
	}

	if cmd.Flags().Changed("limit") {
		svc.SetLimit(approvalsLimit)
	}
	if cmd.Flags().Changed("page") {
		svc.SetPage(approvalsPage)
	}
	return nil
}

var approvalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending submissions",
	Long: `List pending submissions. Filtering, search, sorting and paging are
applied locally to the loaded queue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := loadApprovals(cmd.Context())
		if err := applyViewFlags(cmd, svc); err != nil {
			return err
		}
		return service.PrintApprovalsPage(svc.View(), svc.UsingDemoData(), time.Now())
	},
}

var approvalsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one pending submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := loadApprovals(cmd.Context())
		it, ok := svc.Find(args[0])
		if !ok {
			return clierrors.NotFoundError("Pending item", args[0])
		}
		return service.PrintApproval(it, time.Now())
	},
}

var approvalsApproveCmd = &cobra.Command{
	Use:   "approve <id>...",
	Short: "Approve pending submissions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := loadApprovals(cmd.Context())
		var failed error
		for _, id := range args {
			if err := outcomeError(svc.Approve(cmd.Context(), id), "Pending item", id); err != nil {
				failed = reportFirst(failed, err)
			}
		}
		return failed
	},
}

var approvalsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending submission",
	Long: `Reject a pending submission. Without --reason the reason is read
from the terminal; enter an empty answer or ":cancel" to abort.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := loadApprovals(cmd.Context())
		return rejectOne(cmd, svc, prompter.Default(), args[0])
	},
}

// rejectOne runs the reject dialog for id. It returns nil when the user
// cancels.
func rejectOne(cmd *cobra.Command, svc *service.ApprovalsService, p *prompter.Prompter, id string) error {
	if err := svc.OpenReject(id); err != nil {
		return err
	}

	reason := rejectReason
	if !cmd.Flags().Changed("reason") && !rejectNoReason {
		it, _ := svc.RejectTarget()
		var err error
		reason, err = p.Multiline(fmt.Sprintf("Reason for rejecting %q", it.Title), 20)
		if errors.Is(err, prompter.ErrCancelled) || strings.TrimSpace(reason) == cancelWord {
			svc.CancelReject()
			output.PrintInfo("Rejection cancelled")
			return nil
		}
		if err != nil {
			svc.CancelReject()
			return err
		}
	}

	o, err := svc.SubmitReject(cmd.Context(), strings.TrimSpace(reason))
	if err != nil {
		return err
	}
	return outcomeError(o, "Pending item", id)
}

var approvalsReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Walk through the queue interactively",
	Long: `Show each pending submission in turn and approve, reject or skip it.
The --type and --search flags narrow the queue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := loadApprovals(cmd.Context())
		if err := applyViewFlags(cmd, svc); err != nil {
			return err
		}
		svc.SetLimit(len(svc.Items()) + 1)
		return review(cmd, svc, prompter.Default())
	},
}

func review(cmd *cobra.Command, svc *service.ApprovalsService, p *prompter.Prompter) error {
	queue := svc.View().Items
	if len(queue) == 0 {
		output.PrintInfo("Nothing awaiting review.")
		return nil
	}
	if svc.UsingDemoData() {
		output.PrintWarning("Reviewing demo data; the backend could not be reached")
	}

	options := []string{"Approve", "Reject", "Skip", "Quit"}
	var approved, rejected, skipped int
	for i, it := range queue {
		fmt.Fprintf(output.Out, "\n[%d/%d] ", i+1, len(queue))
		if err := service.PrintApproval(it, time.Now()); err != nil {
			return err
		}

		choice, err := p.Select("Action:", options)
		if err != nil {
			return err
		}
		switch options[choice] {
		case "Approve":
			if svc.Approve(cmd.Context(), it.ID) == service.OutcomeCommitted {
				approved++
			}
		case "Reject":
			before := len(svc.Items())
			if err := rejectOne(cmd, svc, p, it.ID); err != nil && !errors.Is(err, errReported) {
				return err
			}
			if len(svc.Items()) < before {
				rejected++
			}
		case "Skip":
			skipped++
		case "Quit":
			return printReviewSummary(approved, rejected, skipped)
		}
	}
	return printReviewSummary(approved, rejected, skipped)
}

func printReviewSummary(approved, rejected, skipped int) error {
	summary := map[string]int{"approved": approved, "rejected": rejected, "skipped": skipped}
	return output.Render(summary, func(w io.Writer) {
		fmt.Fprintf(w, "\nReviewed: %d approved, %d rejected, %d skipped\n", approved, rejected, skipped)
	})
}

// reportFirst keeps the first meaningful error across several actions.
func reportFirst(prev, err error) error {
	if prev == nil || errors.Is(prev, errReported) {
		return err
	}
	return prev
}

func init() {
	for _, c := range []*cobra.Command{approvalsListCmd, approvalsReviewCmd} {
		c.Flags().StringVar(&approvalsType, "type", approvals.TypeAll, "Filter by type: all, post, resource, qna, story")
		c.Flags().StringVar(&approvalsSearch, "search", "", "Match title, author name or handle, content type or tags")
	}
	approvalsListCmd.Flags().StringVar(&approvalsSort, "sort", "", "Sort by: title, author, type, submitted")
	approvalsListCmd.Flags().StringVar(&approvalsOrder, "order", "", "Sort order: asc or desc")
	approvalsListCmd.Flags().IntVar(&approvalsPage, "page", 1, "Page number")
	approvalsListCmd.Flags().IntVar(&approvalsLimit, "limit", approvals.DefaultLimit, "Items per page")

	approvalsRejectCmd.Flags().StringVar(&rejectReason, "reason", "", "Reason shown to the author")
	approvalsRejectCmd.Flags().BoolVar(&rejectNoReason, "no-reason", false, "Reject without a reason")
	approvalsReviewCmd.Flags().BoolVar(&rejectNoReason, "no-reason", false, "Reject without asking for a reason")

	approvalsCmd.AddCommand(approvalsListCmd)
	approvalsCmd.AddCommand(approvalsShowCmd)
	approvalsCmd.AddCommand(approvalsApproveCmd)
	approvalsCmd.AddCommand(approvalsRejectCmd)
	approvalsCmd.AddCommand(approvalsReviewCmd)
}
