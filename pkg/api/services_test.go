package api

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/impactboard/admin-cli/pkg/approvals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	query  string
	body   string
	auth   string
}

// recorder answers every request with body and remembers the last one.
func recorder(got *captured, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*got = captured{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			body:   string(b),
			auth:   r.Header.Get("Authorization"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func TestServiceRoutes(t *testing.T) {
	var got captured
	s := New(newTestClient(t, recorder(&got, `{"success":true}`)))
	ctx := context.Background()

	tests := []struct {
		name   string
		run    func()
		method string
		path   string
	}{
		{"dashboard", func() { s.Admin.GetDashboardStats(ctx) }, "GET", "/api/admin/dashboard/stats"},
		{"approve", func() { s.Admin.ApproveContent(ctx, approvals.ContentStory, "s_412") }, "POST", "/api/admin/approvals/story/s_412/approve"},
		{"post get", func() { s.Posts.Get(ctx, "p1") }, "GET", "/api/posts/p1"},
		{"post update", func() { s.Posts.Update(ctx, "p1", PostInput{Title: "x"}) }, "PUT", "/api/posts/p1"},
		{"resource delete", func() { s.Resources.Delete(ctx, "r1") }, "DELETE", "/api/resources/r1"},
		{"story create", func() { s.Stories.Create(ctx, StoryInput{Title: "t"}) }, "POST", "/api/stories"},
		{"answer", func() { s.QnA.AnswerQuestion(ctx, "q1", "42") }, "POST", "/api/qna/questions/q1/answers"},
		{"delete answer", func() { s.QnA.DeleteAnswer(ctx, "q1", "a9") }, "DELETE", "/api/qna/questions/q1/answers/a9"},
		{"accept", func() { s.Connections.Accept(ctx, "c1") }, "POST", "/api/connections/requests/c1/accept"},
		{"decline", func() { s.Connections.Decline(ctx, "c1") }, "POST", "/api/connections/requests/c1/decline"},
		{"remove connection", func() { s.Connections.Remove(ctx, "c1") }, "DELETE", "/api/connections/c1"},
		{"unread", func() { s.Notifications.UnreadCount(ctx) }, "GET", "/api/notifications/unread-count"},
		{"read all", func() { s.Notifications.MarkAllRead(ctx) }, "PUT", "/api/notifications/read-all"},
		{"broadcast", func() { s.Notifications.Broadcast(ctx, BroadcastInput{Title: "t", Message: "m"}) }, "POST", "/api/admin/notifications/broadcast"},
		{"user role", func() { s.Users.UpdateRole(ctx, "u1", "moderator") }, "PUT", "/api/admin/users/u1/role"},
		{"user status", func() { s.Users.UpdateStatus(ctx, "u1", "suspended", "spam") }, "PUT", "/api/admin/users/u1/status"},
		{"thread", func() { s.Messages.ListMessages(ctx, "c7", ListParams{}) }, "GET", "/api/messages/conversations/c7/messages"},
		{"mark thread read", func() { s.Messages.MarkRead(ctx, "c7") }, "PUT", "/api/messages/conversations/c7/read"},
		{"delete message", func() { s.Messages.Delete(ctx, "m1") }, "DELETE", "/api/messages/m1"},
		{"me", func() { s.Auth.Me(ctx) }, "GET", "/api/auth/me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run()
			assert.Equal(t, tt.method, got.method)
			assert.Equal(t, tt.path, got.path)
		})
	}
}

func TestRejectSendsReason(t *testing.T) {
	var got captured
	s := NewAdminService(newTestClient(t, recorder(&got, `{"success":true,"message":"Rejected"}`)))

	res := s.RejectContent(context.Background(), approvals.ContentQnA, "q_309", "")
	assert.True(t, res.Success)
	assert.Equal(t, "/api/admin/approvals/qna/q_309/reject", got.path)
	assert.JSONEq(t, `{"reason":""}`, got.body)

	s.RejectContent(context.Background(), approvals.ContentQnA, "q_309", "off topic")
	assert.JSONEq(t, `{"reason":"off topic"}`, got.body)
}

func TestListQueryOmitsZeroValues(t *testing.T) {
	var got captured
	s := NewAdminService(newTestClient(t, recorder(&got, `[]`)))

	s.GetPendingApprovals(context.Background(), ListParams{Page: 2, Type: "post"})
	assert.Equal(t, "page=2&type=post", got.query)

	s.GetPendingApprovals(context.Background(), ListParams{})
	assert.Empty(t, got.query)
}

func TestListParamsQuery(t *testing.T) {
	q := ListParams{
		Page:      1,
		Limit:     20,
		Search:    "rust",
		SortBy:    "title",
		SortOrder: "asc",
		Extra:     map[string]string{"role": "admin", "blank": ""},
	}.Query()

	assert.Equal(t, map[string]string{
		"page":      "1",
		"limit":     "20",
		"search":    "rust",
		"sortBy":    "title",
		"sortOrder": "asc",
		"role":      "admin",
	}, q)
}

func TestLoginToken(t *testing.T) {
	var got captured
	c := newTestClient(t, recorder(&got, `{"success":true,"data":{"token":"abc","user":{"_id":"u1","email":"a@b.c"}}}`))

	res := NewAuthService(c).Login(context.Background(), "a@b.c", "pw")
	require.True(t, res.Success)
	assert.Equal(t, "abc", res.Data.AuthToken())
	assert.Equal(t, "u1", res.Data.User.Key())
	assert.JSONEq(t, `{"email":"a@b.c","password":"pw"}`, got.body)
}

func TestLoginWithoutToken(t *testing.T) {
	c := newTestClient(t, respond(200, `{"success":true,"data":{"user":{"_id":"u1"}}}`))
	res := NewAuthService(c).Login(context.Background(), "a@b.c", "pw")
	assert.False(t, res.Success)
	assert.Equal(t, LoginResponse{}, res.Data)
}

func TestLenientFields(t *testing.T) {
	body := `{"data":[{"_id":7,"title":"Q","author":"u_42","tags":"a,b","answers":[{"content":"x"}],"createdAt":1736501400}]}`
	res := NewQnAService(newTestClient(t, respond(200, body))).ListQuestions(context.Background(), ListParams{})

	require.Len(t, res.Data, 1)
	q := res.Data[0]
	assert.Equal(t, "7", q.Key())
	assert.Equal(t, "u_42", q.Author.Key())
	assert.Equal(t, Tags{"a", "b"}, q.Tags)
	assert.Equal(t, 1, q.NumAnswers())
	assert.Equal(t, 2025, q.CreatedAt.Year())
}

func TestUnreadCountString(t *testing.T) {
	c := newTestClient(t, respond(200, `{"data":{"count":"4"}}`))
	res := NewNotificationsService(c).UnreadCount(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, FlexInt(4), res.Data.Count)
}
