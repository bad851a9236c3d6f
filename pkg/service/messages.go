package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/formatter"
	"github.com/impactboard/admin-cli/pkg/logger"
	"github.com/impactboard/admin-cli/pkg/notify"
	"github.com/impactboard/admin-cli/pkg/optimistic"
	"github.com/impactboard/admin-cli/pkg/output"
)

const maxMessageLength = 5000

// MessagesBackend is the direct-messaging API. *api.MessagesService
// satisfies it.
type MessagesBackend interface {
	ListConversations(ctx context.Context, p api.ListParams) api.Result[[]api.Conversation]
	ListMessages(ctx context.Context, conversationID string, p api.ListParams) api.Result[[]api.Message]
	Send(ctx context.Context, conversationID, content string) api.Result[api.Message]
	Delete(ctx context.Context, messageID string) api.Result[any]
	MarkRead(ctx context.Context, conversationID string) api.Result[any]
}

// MessagesService holds the loaded conversations and one open thread, and
// changes them optimistically.
type MessagesService struct {
	backend MessagesBackend
	toasts  *notify.Queue

	conversations *optimistic.List[api.Conversation]
	thread        *optimistic.List[api.Message]

	mu       sync.Mutex
	threadID string
}

// NewMessagesService creates a messages controller.
func NewMessagesService(backend MessagesBackend, toasts *notify.Queue) *MessagesService {
	if toasts == nil {
		toasts = notify.NewQueue()
	}
	return &MessagesService{
		backend:       backend,
		toasts:        toasts,
		conversations: optimistic.NewList(api.Conversation.Key, nil),
		thread:        optimistic.NewList(api.Message.Key, nil),
	}
}

// LoadConversations replaces the conversation list.
func (s *MessagesService) LoadConversations(ctx context.Context, p api.ListParams) api.Result[[]api.Conversation] {
	res := s.backend.ListConversations(ctx, p)
	if res.Success {
		s.conversations.Replace(res.Data)
	}
	return res
}

// OpenThread loads the messages of one conversation.
func (s *MessagesService) OpenThread(ctx context.Context, conversationID string, p api.ListParams) api.Result[[]api.Message] {
	res := s.backend.ListMessages(ctx, conversationID, p)
	if res.Success {
		s.thread.Replace(res.Data)
		s.mu.Lock()
		s.threadID = conversationID
		s.mu.Unlock()
	}
	return res
}

func (s *MessagesService) Conversations() []api.Conversation { return s.conversations.Items() }
func (s *MessagesService) Messages() []api.Message           { return s.thread.Items() }

// ThreadID is the conversation OpenThread last loaded.
func (s *MessagesService) ThreadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threadID
}

// DeleteMessage removes a message from the open thread and deletes it on
// the backend. Messages outside the loaded thread are deleted without the
// optimistic step.
func (s *MessagesService) DeleteMessage(ctx context.Context, messageID string) Outcome {
	st := step{action: "delete_message", pending: "Deleting…", done: "Message deleted", failed: "Delete failed"}
	send := func(ctx context.Context) api.Result[any] { return s.backend.Delete(ctx, messageID) }

	m := s.thread.Remove(messageID)
	if !m.Applied() {
		res := send(ctx)
		if !res.Success {
			s.toasts.Error(api.MessageOr(res, st.failed))
			return OutcomeRolledBack
		}
		s.toasts.Success(st.done)
		return OutcomeCommitted
	}
	return settle(ctx, s.toasts, m, st, send)
}

// MarkConversationRead zeroes a conversation's unread count and tells the
// backend. A failure restores the count.
func (s *MessagesService) MarkConversationRead(ctx context.Context, conversationID string) Outcome {
	m := s.conversations.Update(conversationID, func(c api.Conversation) api.Conversation {
		c.UnreadCount = 0
		return c
	})
	return settle(ctx, s.toasts, m, step{
		action:  "mark_read",
		pending: "Marking as read…",
		done:    "Marked as read",
		failed:  "Mark read failed",
	}, func(ctx context.Context) api.Result[any] {
		return s.backend.MarkRead(ctx, conversationID)
	})
}

// Send posts a message to a conversation. The message joins the open
// thread when it belongs to it.
func (s *MessagesService) Send(ctx context.Context, conversationID, content string) (api.Message, error) {
	if content == "" {
		return api.Message{}, fmt.Errorf("message content cannot be empty")
	}
	if len([]rune(content)) > maxMessageLength {
		return api.Message{}, fmt.Errorf("message exceeds maximum length (%d characters)", maxMessageLength)
	}

	res := s.backend.Send(ctx, conversationID, content)
	if err := api.AsError(res, "Send failed"); err != nil {
		logger.Error("Failed to send message", "conversation_id", conversationID, "error", err)
		return api.Message{}, err
	}
	if s.ThreadID() == conversationID {
		s.thread.Replace(append(s.thread.Items(), res.Data))
	}
	logger.Debug("Message sent", "message_id", res.Data.Key())
	return res.Data, nil
}

// PrintConversations writes the loaded conversations.
func (s *MessagesService) PrintConversations(now time.Time) error {
	convs := s.conversations.Items()
	if len(convs) == 0 {
		return printEmpty("No conversations yet.")
	}
	rows := make([][]string, 0, len(convs))
	for _, c := range convs {
		names := make([]string, 0, len(c.Participants))
		for _, p := range c.Participants {
			names = append(names, p.DisplayName())
		}
		last := ""
		if c.LastMessage != nil {
			last = formatter.Truncate(c.LastMessage.Content, 40)
		}
		rows = append(rows, []string{
			c.Key(),
			formatter.Truncate(joinNames(names), 30),
			fmt.Sprint(int(c.UnreadCount)),
			formatter.OrDash(last),
			formatter.RelativeTime(c.UpdatedAt.Time, now),
		})
	}
	return output.PrintList(convs, []string{"ID", "PARTICIPANTS", "UNREAD", "LAST MESSAGE", "UPDATED"}, rows)
}

// PrintThread writes the open thread in the order the backend sent it.
func (s *MessagesService) PrintThread(now time.Time) error {
	msgs := s.thread.Items()
	return output.Render(msgs, func(w io.Writer) {
		if len(msgs) == 0 {
			fmt.Fprintln(w, "No messages in this conversation.")
			return
		}
		for _, m := range msgs {
			formatter.Bold.Fprintf(w, "%s", m.Sender.DisplayName())
			formatter.Faint.Fprintf(w, "  %s  %s\n", formatter.RelativeTime(m.CreatedAt.Time, now), m.Key())
			fmt.Fprintf(w, "  %s\n", m.Content)
		}
	})
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
