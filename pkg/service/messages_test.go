package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/config"
	clierrors "github.com/impactboard/admin-cli/pkg/errors"
	"github.com/impactboard/admin-cli/pkg/notify"
	"github.com/impactboard/admin-cli/pkg/output"
)

type fakeMessages struct {
	conversations []api.Conversation
	messages      []api.Message
	result        api.Result[any]
	deleted       []string
	marked        []string
}

func (f *fakeMessages) ListConversations(context.Context, api.ListParams) api.Result[[]api.Conversation] {
	return api.Result[[]api.Conversation]{Success: true, Data: f.conversations}
}

func (f *fakeMessages) ListMessages(context.Context, string, api.ListParams) api.Result[[]api.Message] {
	return api.Result[[]api.Message]{Success: true, Data: f.messages}
}

func (f *fakeMessages) Send(_ context.Context, conversationID, content string) api.Result[api.Message] {
	if !f.result.Success {
		return api.Result[api.Message]{Message: f.result.Message, Err: f.result.Err}
	}
	return api.Result[api.Message]{Success: true, Data: api.Message{ID: "m9", ConversationID: api.FlexString(conversationID), Content: content}}
}

func (f *fakeMessages) Delete(_ context.Context, id string) api.Result[any] {
	f.deleted = append(f.deleted, id)
	return f.result
}

func (f *fakeMessages) MarkRead(_ context.Context, id string) api.Result[any] {
	f.marked = append(f.marked, id)
	return f.result
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	color.NoColor = true
	config.Set("output.format", "text")
	var buf bytes.Buffer
	t.Cleanup(output.SetWriter(&buf))
	return &buf
}

func loadedMessages(t *testing.T, b *fakeMessages) (*MessagesService, *notify.Queue) {
	t.Helper()
	toasts := notify.NewQueue()
	s := NewMessagesService(b, toasts)
	require.True(t, s.LoadConversations(context.Background(), api.ListParams{}).Success)
	require.True(t, s.OpenThread(context.Background(), "c1", api.ListParams{}).Success)
	return s, toasts
}

func threadFixture() *fakeMessages {
	return &fakeMessages{
		conversations: []api.Conversation{
			{ID: "c1", UnreadCount: 3, Participants: []api.User{{Name: "Mei Lin"}}},
			{ID: "c2", UnreadCount: 1},
		},
		messages: []api.Message{
			{ID: "m1", Content: "hello"},
			{ID: "m2", Content: "spam"},
			{ID: "m3", Content: "bye"},
		},
	}
}

func messageKeys(ms []api.Message) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Key()
	}
	return out
}

func TestDeleteMessageRollback(t *testing.T) {
	b := threadFixture()
	b.result = api.Result[any]{Err: clierrors.ServerError()}
	s, toasts := loadedMessages(t, b)

	assert.Equal(t, OutcomeRolledBack, s.DeleteMessage(context.Background(), "m2"))
	assert.Equal(t, []string{"m1", "m2", "m3"}, messageKeys(s.Messages()))
	assert.Equal(t, "Delete failed", toasts.Active()[0].Message)
}

func TestDeleteMessageCommit(t *testing.T) {
	b := threadFixture()
	b.result = api.Result[any]{Success: true}
	s, _ := loadedMessages(t, b)

	assert.Equal(t, OutcomeCommitted, s.DeleteMessage(context.Background(), "m2"))
	assert.Equal(t, []string{"m1", "m3"}, messageKeys(s.Messages()))
	assert.Equal(t, []string{"m2"}, b.deleted)
}

func TestDeleteMessageOutsideThread(t *testing.T) {
	b := threadFixture()
	b.result = api.Result[any]{Success: true}
	s, toasts := loadedMessages(t, b)

	assert.Equal(t, OutcomeCommitted, s.DeleteMessage(context.Background(), "elsewhere"))
	assert.Equal(t, []string{"elsewhere"}, b.deleted)
	assert.Equal(t, "Message deleted", toasts.Active()[0].Message)
}

func TestMarkConversationRead(t *testing.T) {
	b := threadFixture()
	b.result = api.Result[any]{Message: "offline", Err: clierrors.BackendRejection("offline", 200)}
	s, toasts := loadedMessages(t, b)

	assert.Equal(t, OutcomeRolledBack, s.MarkConversationRead(context.Background(), "c1"))
	assert.Equal(t, api.FlexInt(3), s.Conversations()[0].UnreadCount)
	assert.Equal(t, "offline", toasts.Active()[0].Message)

	b.result = api.Result[any]{Success: true}
	assert.Equal(t, OutcomeCommitted, s.MarkConversationRead(context.Background(), "c1"))
	assert.Equal(t, api.FlexInt(0), s.Conversations()[0].UnreadCount)
	assert.Equal(t, api.FlexInt(1), s.Conversations()[1].UnreadCount)

	assert.Equal(t, OutcomeNoop, s.MarkConversationRead(context.Background(), "nope"))
}

func TestSendAppendsToThread(t *testing.T) {
	b := threadFixture()
	b.result = api.Result[any]{Success: true}
	s, _ := loadedMessages(t, b)

	_, err := s.Send(context.Background(), "c1", "")
	assert.Error(t, err)

	msg, err := s.Send(context.Background(), "c1", "thanks")
	require.NoError(t, err)
	assert.Equal(t, "m9", msg.Key())
	assert.Equal(t, []string{"m1", "m2", "m3", "m9"}, messageKeys(s.Messages()))
}

func TestSendFailure(t *testing.T) {
	b := threadFixture()
	b.result = api.Result[any]{Message: "blocked", Err: clierrors.BackendRejection("blocked", 200)}
	s, _ := loadedMessages(t, b)

	_, err := s.Send(context.Background(), "c1", "hi")
	require.Error(t, err)
	assert.Equal(t, "blocked", err.Error())
}

func TestPrintConversations(t *testing.T) {
	buf := captureOutput(t)
	s, _ := loadedMessages(t, threadFixture())

	require.NoError(t, s.PrintConversations(time.Now()))
	assert.Contains(t, buf.String(), "Mei Lin")
	assert.Contains(t, buf.String(), "PARTICIPANTS")
}
