package service

import (
	"context"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/logger"
	"github.com/impactboard/admin-cli/pkg/metrics"
	"github.com/impactboard/admin-cli/pkg/notify"
	"github.com/impactboard/admin-cli/pkg/optimistic"
)

// Outcome is how an optimistic action ended.
type Outcome string

const (
	OutcomeNoop       Outcome = "noop"
	OutcomeCommitted  Outcome = "committed"
	OutcomeRolledBack Outcome = "rolled_back"
)

// step names the toasts one optimistic action shows.
type step struct {
	action  string
	pending string
	done    string
	failed  string
}

// settle sends the request behind an applied mutation and commits or rolls
// it back on the result. The pending toast is replaced by the outcome.
func settle[T any](ctx context.Context, toasts *notify.Queue, m *optimistic.Mutation[T], st step, send func(context.Context) api.Result[any]) Outcome {
	if !m.Applied() {
		return OutcomeNoop
	}

	id := toasts.Info(st.pending)
	res := send(ctx)
	if res.Success {
		m.Commit()
		toasts.Replace(id, notify.LevelSuccess, st.done)
		metrics.OptimisticMutationsTotal.WithLabelValues(st.action, string(OutcomeCommitted)).Inc()
		return OutcomeCommitted
	}

	m.Rollback()
	msg := api.MessageOr(res, st.failed)
	toasts.Replace(id, notify.LevelError, msg)
	metrics.OptimisticMutationsTotal.WithLabelValues(st.action, string(OutcomeRolledBack)).Inc()
	logger.Warn("Rolled back optimistic change", "action", st.action, "keys", m.Keys(), "message", msg)
	return OutcomeRolledBack
}
