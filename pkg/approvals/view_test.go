package approvals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFilterByType(t *testing.T) {
	items := DemoItems()
	assert.Len(t, Filter(items, TypeAll, ""), 4)
	assert.Len(t, Filter(items, "", ""), 4)
	assert.Equal(t, []string{"r_205"}, ids(Filter(items, "resource", "")))
	assert.Empty(t, Filter(items, "podcast", ""))
}

func TestFilterSearch(t *testing.T) {
	items := DemoItems()
	assert.Equal(t, []string{"p_101"}, ids(Filter(items, "", "RUST")))
	assert.Equal(t, []string{"r_205"}, ids(Filter(items, "", "dokafor")))
	assert.Equal(t, []string{"s_412"}, ids(Filter(items, "", "community")))
	assert.Equal(t, []string{"q_309"}, ids(Filter(items, "", "qna")))
	assert.Empty(t, Filter(items, "story", "rust"))
}

func TestSortStable(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: "a", Title: "Same", SubmittedAt: ts},
		{ID: "b", Title: "same", SubmittedAt: ts},
		{ID: "c", Title: "Alpha", SubmittedAt: ts.Add(time.Hour)},
	}

	assert.Equal(t, []string{"c", "a", "b"}, ids(Sort(items, SortTitle, Asc)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(Sort(items, SortTitle, Desc)))
	assert.Equal(t, []string{"c", "a", "b"}, ids(Sort(items, SortSubmittedAt, Desc)))
	// input untouched
	assert.Equal(t, []string{"a", "b", "c"}, ids(items))
}

func TestFilterSearchAuthorName(t *testing.T) {
	items := DemoItems()
	assert.Equal(t, []string{"q_309"}, ids(Filter(items, "", "Mei Lin")))
	assert.Equal(t, []string{"p_101"}, ids(Filter(items, "", "verma")))
}

func TestSortSubmittedAtReverses(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: "x", SubmittedAt: ts.Add(3 * time.Hour)},
		{ID: "y", SubmittedAt: ts},
		{ID: "z", SubmittedAt: ts.Add(time.Hour)},
	}

	desc := ids(Sort(items, SortSubmittedAt, Desc))
	asc := ids(Sort(items, SortSubmittedAt, Asc))
	assert.Equal(t, []string{"x", "z", "y"}, desc)
	assert.Equal(t, []string{"y", "z", "x"}, asc)
	assert.Equal(t, desc, reversed(asc))
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func TestToggleSort(t *testing.T) {
	q := DefaultQuery()
	assert.Equal(t, SortSubmittedAt, q.SortBy)
	assert.Equal(t, Desc, q.SortOrder)

	q = q.ToggleSort(SortSubmittedAt)
	assert.Equal(t, Asc, q.SortOrder)
	q = q.ToggleSort(SortSubmittedAt)
	assert.Equal(t, Desc, q.SortOrder)

	q = q.ToggleSort(SortTitle)
	assert.Equal(t, SortTitle, q.SortBy)
	assert.Equal(t, Asc, q.SortOrder)
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey("SubmittedAt")
	assert.True(t, ok)
	assert.Equal(t, SortSubmittedAt, k)
	_, ok = ParseSortKey("likes")
	assert.False(t, ok)
}

func TestPaginateClamps(t *testing.T) {
	items := make([]Item, 23)
	for i := range items {
		items[i] = Item{ID: string(rune('a' + i))}
	}

	p := Paginate(items, 3, 10)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 23, p.Total)
	assert.Len(t, p.Items, 3)

	p = Paginate(items, 99, 10)
	assert.Equal(t, 3, p.Page)

	p = Paginate(items, -4, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Len(t, p.Items, 10)

	empty := Paginate(nil, 2, 10)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)
}

func TestApply(t *testing.T) {
	q := DefaultQuery()
	q.Limit = 2
	p := Apply(DemoItems(), q)
	require.Len(t, p.Items, 2)
	assert.Equal(t, []string{"s_412", "q_309"}, ids(p.Items))
	assert.Equal(t, 2, p.TotalPages)

	q.TypeFilter = "post"
	p = Apply(DemoItems(), q)
	assert.Equal(t, []string{"p_101"}, ids(p.Items))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(21, 0))
}
