package approvals

import (
	"slices"
	"strings"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortTitle       SortKey = "title"
	SortAuthor      SortKey = "author"
	SortType        SortKey = "type"
	SortSubmittedAt SortKey = "submittedAt"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// TypeAll disables type filtering.
const TypeAll = "all"

// DefaultLimit is used when a query carries no positive limit.
const DefaultLimit = 10

// Query selects a page of the locally loaded list.
type Query struct {
	TypeFilter string
	Search     string
	SortBy     SortKey
	SortOrder  SortOrder
	Page       int
	Limit      int
}

// DefaultQuery shows the newest submissions first.
func DefaultQuery() Query {
	return Query{
		TypeFilter: TypeAll,
		SortBy:     SortSubmittedAt,
		SortOrder:  Desc,
		Page:       1,
		Limit:      DefaultLimit,
	}
}

// ParseSortKey accepts the column names used on the command line.
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return SortTitle, true
	case "author":
		return SortAuthor, true
	case "type":
		return SortType, true
	case "submittedat", "submitted", "date":
		return SortSubmittedAt, true
	}
	return "", false
}

// ToggleSort flips the order when key is already active, otherwise selects
// key in ascending order.
func (q Query) ToggleSort(key SortKey) Query {
	if q.SortBy == key {
		if q.SortOrder == Asc {
			q.SortOrder = Desc
		} else {
			q.SortOrder = Asc
		}
		return q
	}
	q.SortBy = key
	q.SortOrder = Asc
	return q
}

// Page is one slice of the filtered, sorted list.
type Page struct {
	Items      []Item `json:"items"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
}

// Apply filters, sorts and paginates items. The input slice is not modified.
func Apply(items []Item, q Query) Page {
	return Paginate(Sort(Filter(items, q.TypeFilter, q.Search), q.SortBy, q.SortOrder), q.Page, q.Limit)
}

// Filter keeps items matching the type filter and the search query. Search
// is a case-insensitive substring match against title, author name, author
// handle, content type and tags; any one field matching is enough.
func Filter(items []Item, typeFilter, search string) []Item {
	typeFilter = strings.ToLower(strings.TrimSpace(typeFilter))
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if typeFilter != "" && typeFilter != TypeAll && string(it.ContentType) != typeFilter {
			continue
		}
		if needle != "" && !Matches(it, needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Matches reports whether a lower-cased needle occurs in any searchable field.
func Matches(it Item, needle string) bool {
	fields := []string{it.Title, it.AuthorName, it.AuthorHandle, string(it.ContentType)}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy. Ties keep their input order in both directions.
func Sort(items []Item, key SortKey, order SortOrder) []Item {
	out := slices.Clone(items)
	if key == "" {
		return out
	}
	cmp := compareBy(key)
	slices.SortStableFunc(out, func(a, b Item) int {
		if order == Desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}

func compareBy(key SortKey) func(a, b Item) int {
	switch key {
	case SortSubmittedAt:
		return func(a, b Item) int { return a.SubmittedAt.Compare(b.SubmittedAt) }
	case SortAuthor:
		return func(a, b Item) int { return strings.Compare(strings.ToLower(a.AuthorName), strings.ToLower(b.AuthorName)) }
	case SortType:
		return func(a, b Item) int { return strings.Compare(string(a.ContentType), string(b.ContentType)) }
	default:
		return func(a, b Item) int { return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	}
}

// TotalPages is ceil(count/limit), never less than one.
func TotalPages(count, limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return max(1, (count+limit-1)/limit)
}

// Paginate slices items to the requested page, clamping page into
// [1, TotalPages].
func Paginate(items []Item, page, limit int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	total := len(items)
	pages := TotalPages(total, limit)
	page = min(max(page, 1), pages)

	start := (page - 1) * limit
	end := min(start+limit, total)
	return Page{
		Items:      slices.Clone(items[start:end]),
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pages,
	}
}
