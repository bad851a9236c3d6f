package approvals

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/impactboard/admin-cli/pkg/util"
	jsoniter "github.com/json-iterator/go"
)

const (
	DefaultTitle        = "(Untitled)"
	DefaultAuthorName   = "Unknown"
	DefaultAuthorHandle = "unknown"

	snippetLimit = 160
)

// canonical sorts map keys so equal objects hash to equal temp IDs.
var canonical = jsoniter.ConfigCompatibleWithStandardLibrary

// tempIDSpace namespaces the UUIDv5 temp IDs given to items the backend
// sent without any identifier.
var tempIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("impactboard-admin/approvals"))

// listKeys are the object keys a backend may nest the pending list under.
var listKeys = []string{"items", "approvals", "pending", "results", "docs", "rows", "data"}

// groupKeys map per-type collections onto their content type.
var groupKeys = map[string]ContentType{
	"posts":     ContentPost,
	"resources": ContentResource,
	"qna":       ContentQnA,
	"questions": ContentQnA,
	"stories":   ContentStory,
}

// Normalize converts one backend object into an Item. It is pure: the same
// raw object and loadedAt always produce the same Item. loadedAt only fills
// SubmittedAt when the backend omitted it.
func Normalize(raw map[string]any, loadedAt time.Time) Item {
	if raw == nil {
		raw = map[string]any{}
	}

	id := util.FirstString(raw, "id", "_id", "contentId", "content_id")
	if id == "" {
		id = tempID(raw)
	}

	contentID := util.FirstString(raw, "contentId", "content_id", "id", "_id")
	if contentID == "" {
		contentID = id
	}

	ct := contentTypeOf(raw)

	title := util.FirstString(raw, "title", "name", "question", "heading")
	if title == "" {
		title = DefaultTitle
	}

	name, handle := authorOf(raw)

	submittedAt, missing := loadedAt.UTC(), true
	if v, ok := util.First(raw, "submittedAt", "submitted_at", "createdAt", "created_at", "updatedAt"); ok {
		if ts, ok := util.AsTime(v); ok {
			submittedAt, missing = ts, false
		}
	}

	tags := []string{}
	if v, ok := raw["tags"]; ok {
		tags = util.AsStringList(v)
	}

	return Item{
		ID:                 id,
		ContentID:          contentID,
		ContentType:        ct,
		Title:              title,
		Snippet:            util.Truncate(util.FirstString(raw, "snippet", "excerpt", "description", "summary", "content", "body"), snippetLimit),
		AuthorName:         name,
		AuthorHandle:       handle,
		SubmittedAt:        submittedAt,
		SubmittedAtMissing: missing,
		Tags:               tags,
		Detail:             detailOf(ct, raw),
		Raw:                raw,
	}
}

// NormalizeList accepts a bare array, an object nesting the array under a
// known key, or an object grouped by content type. Non-object entries are
// skipped. Repeated IDs get the lowest free "#n" suffix that no other item
// in the list uses, so keys stay unique.
func NormalizeList(data any, loadedAt time.Time) []Item {
	raws := collect(data, "")
	items := make([]Item, 0, len(raws))
	original := make(map[string]bool, len(raws))
	for _, raw := range raws {
		it := Normalize(raw, loadedAt)
		original[it.ID] = true
		items = append(items, it)
	}

	used := make(map[string]bool, len(items))
	for i := range items {
		id := items[i].ID
		if used[id] {
			base := id
			for n := 2; used[id] || original[id]; n++ {
				id = fmt.Sprintf("%s#%d", base, n)
			}
			items[i].ID = id
		}
		used[id] = true
	}
	return items
}

func collect(data any, groupType ContentType) []map[string]any {
	switch t := data.(type) {
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, e := range t {
			obj, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if groupType != "" {
				if _, has := util.First(obj, "contentType", "content_type", "type"); !has {
					obj = withType(obj, groupType)
				}
			}
			out = append(out, obj)
		}
		return out
	case []map[string]any:
		return t
	case map[string]any:
		for _, k := range listKeys {
			if v, ok := t[k]; ok {
				return collect(v, groupType)
			}
		}
		var out []map[string]any
		for _, k := range []string{"posts", "resources", "qna", "questions", "stories"} {
			if v, ok := t[k]; ok {
				out = append(out, collect(v, groupKeys[k])...)
			}
		}
		return out
	default:
		return nil
	}
}

// withType copies obj so the caller's map is never written to.
func withType(obj map[string]any, ct ContentType) map[string]any {
	cp := make(map[string]any, len(obj)+1)
	for k, v := range obj {
		cp[k] = v
	}
	cp["contentType"] = string(ct)
	return cp
}

func tempID(raw map[string]any) string {
	b, err := canonical.Marshal(raw)
	if err != nil {
		b = []byte(fmt.Sprintf("%v", raw))
	}
	return "tmp-" + uuid.NewSHA1(tempIDSpace, b).String()
}

func contentTypeOf(raw map[string]any) ContentType {
	s := util.FirstString(raw, "contentType", "content_type", "type")
	ct := ContentType(strings.ToLower(strings.TrimSpace(s)))
	if !ct.Valid() {
		return ContentPost
	}
	return ct
}

var authorKeys = []string{"author", "user", "createdBy", "submittedBy", "owner"}

func authorOf(raw map[string]any) (name, handle string) {
	name = util.FirstString(raw, "authorName", "author_name")
	handle = util.FirstString(raw, "authorHandle", "author_handle", "authorUsername")

	for _, key := range authorKeys {
		if name != "" && handle != "" {
			break
		}
		switch a := raw[key].(type) {
		case map[string]any:
			if name == "" {
				name = personName(a)
			}
			if handle == "" {
				handle = util.FirstString(a, "username", "handle", "userName")
			}
		case string:
			// Only "author" holds a display name as a bare string; the
			// other keys carry user IDs in that form.
			if name == "" && key == "author" {
				name = strings.TrimSpace(a)
			}
		}
	}

	handle = strings.TrimPrefix(handle, "@")
	if name == "" {
		name = DefaultAuthorName
	}
	if handle == "" {
		handle = DefaultAuthorHandle
	}
	return name, handle
}

func personName(obj map[string]any) string {
	if n := util.FirstString(obj, "name", "fullName", "displayName"); n != "" {
		return n
	}
	first := util.FirstString(obj, "firstName", "first_name")
	last := util.FirstString(obj, "lastName", "last_name")
	return strings.TrimSpace(first + " " + last)
}

func detailOf(ct ContentType, raw map[string]any) Detail {
	switch ct {
	case ContentResource:
		return ResourceDetail{
			URL:      util.FirstString(raw, "url", "link", "fileUrl"),
			FileType: util.FirstString(raw, "fileType", "mimeType", "format"),
			Category: util.FirstString(raw, "category"),
		}
	case ContentQnA:
		d := QnADetail{Question: util.FirstString(raw, "question", "title", "content")}
		if n, ok := util.AsInt(raw["answerCount"]); ok {
			d.AnswerCount = n
		} else if answers, ok := raw["answers"].([]any); ok {
			d.AnswerCount = len(answers)
		}
		return d
	case ContentStory:
		return StoryDetail{
			CoverImage:   util.FirstString(raw, "coverImage", "image", "thumbnail"),
			Location:     util.FirstString(raw, "location", "city"),
			ImpactMetric: util.FirstString(raw, "impactMetric", "impact"),
		}
	default:
		return PostDetail{
			Body:      util.FirstString(raw, "content", "body", "text"),
			MediaURLs: mediaURLs(raw),
		}
	}
}

func mediaURLs(raw map[string]any) []string {
	v, ok := util.First(raw, "mediaUrls", "media", "images")
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return util.AsStringList(v)
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		switch m := e.(type) {
		case string:
			if m != "" {
				out = append(out, m)
			}
		case map[string]any:
			if u := util.FirstString(m, "url", "src"); u != "" {
				out = append(out, u)
			}
		}
	}
	return out
}
