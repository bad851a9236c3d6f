package api

import (
	"strings"
	"time"

	"github.com/impactboard/admin-cli/pkg/util"
)

// FlexString decodes from a JSON string or number. IDs arrive as either.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	str, _ := util.AsString(v)
	*s = FlexString(str)
	return nil
}

// FlexInt decodes from a JSON number or numeric string.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	i, _ := util.AsInt(v)
	*n = FlexInt(i)
	return nil
}

// Tags decodes from a string list, a list of {name} objects, or a
// comma-separated string.
type Tags []string

func (t *Tags) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = util.AsStringList(v)
	return nil
}

// Timestamp decodes RFC 3339 strings and unix seconds or milliseconds.
// Unparseable values leave it zero.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	t, _ := util.AsTime(v)
	ts.Time = t
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339))
}

func keyOf(id, mongoID FlexString) string {
	if id != "" {
		return string(id)
	}
	return string(mongoID)
}

// Auth types
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	User        User   `json:"user"`
}

// AuthToken returns whichever token field the backend filled in.
func (r LoginResponse) AuthToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// User is an account as the admin endpoints return it. A bare string in
// place of the object is taken as the user's ID.
type User struct {
	ID        FlexString `json:"id,omitempty"`
	MongoID   FlexString `json:"_id,omitempty"`
	Name      string     `json:"name,omitempty"`
	FirstName string     `json:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty"`
	Username  string     `json:"username,omitempty"`
	Email     string     `json:"email,omitempty"`
	Role      string     `json:"role,omitempty"`
	Status    string     `json:"status,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
	CreatedAt Timestamp  `json:"createdAt"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	var id string
	if json.Unmarshal(b, &id) == nil {
		*u = User{ID: FlexString(id)}
		return nil
	}
	type plain User
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*u = User(p)
	return nil
}

func (u User) Key() string { return keyOf(u.ID, u.MongoID) }

// DisplayName prefers the full name, then the username, then the ID.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if full := strings.TrimSpace(u.FirstName + " " + u.LastName); full != "" {
		return full
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Key()
}

// DashboardStats are the headline counts on the admin dashboard.
type DashboardStats struct {
	TotalUsers       FlexInt `json:"totalUsers"`
	ActiveUsers      FlexInt `json:"activeUsers"`
	TotalPosts       FlexInt `json:"totalPosts"`
	TotalResources   FlexInt `json:"totalResources"`
	TotalStories     FlexInt `json:"totalStories"`
	TotalQuestions   FlexInt `json:"totalQuestions"`
	PendingApprovals FlexInt `json:"pendingApprovals"`
	TotalConnections FlexInt `json:"totalConnections"`
}

// Post is a community post.
type Post struct {
	ID        FlexString `json:"id,omitempty"`
	MongoID   FlexString `json:"_id,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    User       `json:"author"`
	Tags      Tags       `json:"tags"`
	Status    string     `json:"status,omitempty"`
	Likes     FlexInt    `json:"likes"`
	Comments  FlexInt    `json:"comments"`
	CreatedAt Timestamp  `json:"createdAt"`
}

func (p Post) Key() string { return keyOf(p.ID, p.MongoID) }

type PostInput struct {
	Title   string   `json:"title,omitempty"`
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Status  string   `json:"status,omitempty"`
}

// Resource is a shared document or link.
type Resource struct {
	ID          FlexString `json:"id,omitempty"`
	MongoID     FlexString `json:"_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	FileType    string     `json:"fileType,omitempty"`
	Category    string     `json:"category,omitempty"`
	Author      User       `json:"author"`
	Tags        Tags       `json:"tags"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   Timestamp  `json:"createdAt"`
}

func (r Resource) Key() string { return keyOf(r.ID, r.MongoID) }

type ResourceInput struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// Story is an impact story.
type Story struct {
	ID           FlexString `json:"id,omitempty"`
	MongoID      FlexString `json:"_id,omitempty"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	CoverImage   string     `json:"coverImage,omitempty"`
	Location     string     `json:"location,omitempty"`
	ImpactMetric string     `json:"impactMetric,omitempty"`
	Author       User       `json:"author"`
	Status       string     `json:"status,omitempty"`
	CreatedAt    Timestamp  `json:"createdAt"`
}

func (s Story) Key() string { return keyOf(s.ID, s.MongoID) }

type StoryInput struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Location     string `json:"location,omitempty"`
	ImpactMetric string `json:"impactMetric,omitempty"`
}

// Question is a Q&A thread.
type Question struct {
	ID          FlexString `json:"id,omitempty"`
	MongoID     FlexString `json:"_id,omitempty"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Author      User       `json:"author"`
	Tags        Tags       `json:"tags"`
	Answers     []Answer   `json:"answers"`
	AnswerCount FlexInt    `json:"answerCount"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   Timestamp  `json:"createdAt"`
}

func (q Question) Key() string { return keyOf(q.ID, q.MongoID) }

// NumAnswers returns the answer count, counting embedded answers when the
// backend left the count out.
func (q Question) NumAnswers() int {
	if q.AnswerCount > 0 {
		return int(q.AnswerCount)
	}
	return len(q.Answers)
}

type Answer struct {
	ID        FlexString `json:"id,omitempty"`
	MongoID   FlexString `json:"_id,omitempty"`
	Content   string     `json:"content"`
	Author    User       `json:"author"`
	CreatedAt Timestamp  `json:"createdAt"`
}

func (a Answer) Key() string { return keyOf(a.ID, a.MongoID) }

// Connection links two users.
type Connection struct {
	ID        FlexString `json:"id,omitempty"`
	MongoID   FlexString `json:"_id,omitempty"`
	User      User       `json:"user"`
	Status    string     `json:"status,omitempty"`
	CreatedAt Timestamp  `json:"createdAt"`
}

func (c Connection) Key() string { return keyOf(c.ID, c.MongoID) }

// ConnectionRequest is a pending connection awaiting accept or decline.
type ConnectionRequest struct {
	ID        FlexString `json:"id,omitempty"`
	MongoID   FlexString `json:"_id,omitempty"`
	Requester User       `json:"requester"`
	Recipient User       `json:"recipient"`
	Status    string     `json:"status,omitempty"`
	CreatedAt Timestamp  `json:"createdAt"`
}

func (r ConnectionRequest) Key() string { return keyOf(r.ID, r.MongoID) }

// Notification is an in-app notification.
type Notification struct {
	ID        FlexString `json:"id,omitempty"`
	MongoID   FlexString `json:"_id,omitempty"`
	Type      string     `json:"type"`
	Title     string     `json:"title,omitempty"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	Link      string     `json:"link,omitempty"`
	CreatedAt Timestamp  `json:"createdAt"`
}

func (n Notification) Key() string { return keyOf(n.ID, n.MongoID) }

type BroadcastInput struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Audience string `json:"audience,omitempty"`
}

type UnreadCount struct {
	Count FlexInt `json:"count"`
}

// Conversation is a direct-message thread.
type Conversation struct {
	ID           FlexString `json:"id,omitempty"`
	MongoID      FlexString `json:"_id,omitempty"`
	Participants []User     `json:"participants"`
	LastMessage  *Message   `json:"lastMessage,omitempty"`
	UnreadCount  FlexInt    `json:"unreadCount"`
	UpdatedAt    Timestamp  `json:"updatedAt"`
}

func (c Conversation) Key() string { return keyOf(c.ID, c.MongoID) }

// Message is one direct message.
type Message struct {
	ID             FlexString `json:"id,omitempty"`
	MongoID        FlexString `json:"_id,omitempty"`
	ConversationID FlexString `json:"conversationId,omitempty"`
	Sender         User       `json:"sender"`
	Content        string     `json:"content"`
	Read           bool       `json:"read"`
	CreatedAt      Timestamp  `json:"createdAt"`
}

func (m Message) Key() string { return keyOf(m.ID, m.MongoID) }

type SendMessageInput struct {
	Content string `json:"content"`
}

type StatusUpdate struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type RoleUpdate struct {
	Role string `json:"role"`
}
