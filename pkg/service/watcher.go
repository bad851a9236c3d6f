package service

import (
	"context"
	"fmt"

	"github.com/impactboard/admin-cli/pkg/logger"
	"github.com/impactboard/admin-cli/pkg/notify"
	"github.com/impactboard/admin-cli/pkg/output"
	"github.com/impactboard/admin-cli/pkg/realtime"
)

// Stream is the realtime connection the watcher reads from.
// *realtime.Client satisfies it.
type Stream interface {
	Connect(ctx context.Context, token string) error
	On(t realtime.EventType, fn func(realtime.Event)) func()
	Done() <-chan struct{}
	Close() error
}

// NotificationWatcher turns realtime events into toasts.
type NotificationWatcher struct {
	stream Stream
	toasts *notify.Queue
}

// NewNotificationWatcher creates a watcher that pushes to toasts.
func NewNotificationWatcher(stream Stream, toasts *notify.Queue) *NotificationWatcher {
	if toasts == nil {
		toasts = notify.NewQueue()
	}
	return &NotificationWatcher{stream: stream, toasts: toasts}
}

// Watch connects and blocks until ctx is done or the stream gives up.
func (w *NotificationWatcher) Watch(ctx context.Context, token string) error {
	if err := w.stream.Connect(ctx, token); err != nil {
		return fmt.Errorf("failed to connect to notification stream: %w", err)
	}
	defer w.stream.Close()

	unsubs := []func(){
		w.stream.On(realtime.EventNotification, w.onNotification),
		w.stream.On(realtime.EventApprovalSubmitted, w.onApprovalSubmitted),
		w.stream.On(realtime.EventApprovalDecided, w.onApprovalDecided),
		w.stream.On(realtime.EventMessage, w.onMessage),
		w.stream.On(realtime.EventError, w.onError),
	}
	defer func() {
		for _, off := range unsubs {
			off()
		}
	}()

	output.PrintInfo("🔔 Watching for notifications. Press Ctrl+C to stop.")

	select {
	case <-ctx.Done():
		output.PrintSuccess("Notification watcher stopped")
		return nil
	case <-w.stream.Done():
		return fmt.Errorf("notification stream closed")
	}
}

func (w *NotificationWatcher) onNotification(e realtime.Event) {
	msg := e.Field("message")
	if title := e.Field("title"); title != "" {
		msg = title + ": " + msg
	}
	if msg == "" {
		msg = "New notification"
	}
	w.toasts.Info("📬 " + msg)
}

func (w *NotificationWatcher) onApprovalSubmitted(e realtime.Event) {
	what := e.Field("contentType")
	if what == "" {
		what = "item"
	}
	msg := fmt.Sprintf("New %s awaiting approval", what)
	if title := e.Field("title"); title != "" {
		msg += ": " + title
	}
	w.toasts.Warn(msg + ". Run 'approvals list' to reload.")
}

func (w *NotificationWatcher) onApprovalDecided(e realtime.Event) {
	decision := e.Field("status")
	if decision == "" {
		decision = "moderated"
	}
	w.toasts.Info(fmt.Sprintf("%s was %s", orDefault(e.Field("contentId"), "An item"), decision))
}

func (w *NotificationWatcher) onMessage(e realtime.Event) {
	from := orDefault(e.Field("senderName"), "someone")
	w.toasts.Info(fmt.Sprintf("💬 New message from %s", from))
}

func (w *NotificationWatcher) onError(e realtime.Event) {
	msg := orDefault(e.Field("message"), "stream error")
	logger.Warn("Realtime error event", "message", msg)
	w.toasts.Error(msg)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
