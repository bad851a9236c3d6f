package api

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// MessagesService wraps /api/messages.
type MessagesService struct {
	c *resty.Client
}

func NewMessagesService(c *resty.Client) *MessagesService {
	return &MessagesService{c: c}
}

// ListConversations retrieves the signed-in user's threads
func (s *MessagesService) ListConversations(ctx context.Context, p ListParams) Result[[]Conversation] {
	return callList[Conversation](ctx, s.c, "messages", "list_conversations", p.Limit, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(p.Query()).Get("/api/messages/conversations")
	})
}

// ListMessages retrieves the messages of one thread
func (s *MessagesService) ListMessages(ctx context.Context, conversationID string, p ListParams) Result[[]Message] {
	return callList[Message](ctx, s.c, "messages", "list_messages", p.Limit, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", conversationID).
			SetQueryParams(p.Query()).
			Get("/api/messages/conversations/{id}/messages")
	})
}

// Send posts a message to a thread
func (s *MessagesService) Send(ctx context.Context, conversationID, content string) Result[Message] {
	return call(ctx, s.c, "messages", "send", Message{}, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", conversationID).
			SetBody(SendMessageInput{Content: content}).
			Post("/api/messages/conversations/{id}/messages")
	})
}

// Delete removes one message
func (s *MessagesService) Delete(ctx context.Context, messageID string) Result[any] {
	return call[any](ctx, s.c, "messages", "delete", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", messageID).Delete("/api/messages/{id}")
	})
}

// MarkRead marks every message in a thread as read
func (s *MessagesService) MarkRead(ctx context.Context, conversationID string) Result[any] {
	return call[any](ctx, s.c, "messages", "mark_read", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", conversationID).Put("/api/messages/conversations/{id}/read")
	})
}
