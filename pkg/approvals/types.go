package approvals

import "time"

// ContentType discriminates the kinds of content that go through moderation.
type ContentType string

const (
	ContentPost     ContentType = "post"
	ContentResource ContentType = "resource"
	ContentQnA      ContentType = "qna"
	ContentStory    ContentType = "story"
)

// ContentTypes lists every known type in display order.
var ContentTypes = []ContentType{ContentPost, ContentResource, ContentQnA, ContentStory}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentPost, ContentResource, ContentQnA, ContentStory:
		return true
	}
	return false
}

// Detail carries the fields specific to one content type. Exactly one
// implementation exists per ContentType.
type Detail interface {
	Kind() ContentType
}

// PostDetail is the body of a community post.
type PostDetail struct {
	Body      string   `json:"body,omitempty"`
	MediaURLs []string `json:"mediaUrls,omitempty"`
}

// ResourceDetail describes a shared document or link.
type ResourceDetail struct {
	URL      string `json:"url,omitempty"`
	FileType string `json:"fileType,omitempty"`
	Category string `json:"category,omitempty"`
}

// QnADetail is a question awaiting moderation.
type QnADetail struct {
	Question    string `json:"question,omitempty"`
	AnswerCount int    `json:"answerCount"`
}

// StoryDetail is an impact story.
type StoryDetail struct {
	CoverImage   string `json:"coverImage,omitempty"`
	Location     string `json:"location,omitempty"`
	ImpactMetric string `json:"impactMetric,omitempty"`
}

func (PostDetail) Kind() ContentType     { return ContentPost }
func (ResourceDetail) Kind() ContentType { return ContentResource }
func (QnADetail) Kind() ContentType      { return ContentQnA }
func (StoryDetail) Kind() ContentType    { return ContentStory }

// Item is the normalized view of one pending submission. Items are never
// mutated after normalization; a reload replaces them.
type Item struct {
	ID                 string         `json:"id"`
	ContentID          string         `json:"contentId"`
	ContentType        ContentType    `json:"contentType"`
	Title              string         `json:"title"`
	Snippet            string         `json:"snippet"`
	AuthorName         string         `json:"authorName"`
	AuthorHandle       string         `json:"authorHandle"`
	SubmittedAt        time.Time      `json:"submittedAt"`
	SubmittedAtMissing bool           `json:"submittedAtMissing,omitempty"`
	Tags               []string       `json:"tags"`
	Detail             Detail         `json:"detail,omitempty"`
	Raw                map[string]any `json:"-"`
}

// Key identifies an item within a loaded list.
func Key(it Item) string {
	return it.ID
}
