package optimistic

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id    string
	label string
}

func rowKey(r row) string { return r.id }

func rows(ids ...string) []row {
	out := make([]row, len(ids))
	for i, id := range ids {
		out[i] = row{id: id, label: "v0"}
	}
	return out
}

func keys(items []row) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.id
	}
	return out
}

func TestRemoveRollbackRestoresVerbatim(t *testing.T) {
	original := rows("a", "b", "c", "d")
	l := NewList(rowKey, original)

	m := l.Remove("c")
	require.True(t, m.Applied())
	assert.Equal(t, []string{"a", "b", "d"}, keys(l.Items()))
	assert.Equal(t, original, m.Snapshot())

	assert.True(t, m.Rollback())
	assert.Equal(t, original, l.Items())
	assert.Equal(t, RolledBack, m.State())
}

func TestCommitIsFinal(t *testing.T) {
	l := NewList(rowKey, rows("a", "b", "c"))

	y := l.Remove("c")
	x := l.Remove("b")
	require.True(t, x.Commit())
	assert.Nil(t, x.Snapshot())

	// y's snapshot still holds b; its rollback must not bring b back
	assert.True(t, y.Rollback())
	assert.Equal(t, []string{"a", "c"}, keys(l.Items()))
}

func TestInterleavedRollbackKeepsOtherPendingRemoval(t *testing.T) {
	original := rows("a", "b", "c", "d")
	l := NewList(rowKey, original)

	x := l.Remove("b")
	y := l.Remove("d")

	assert.True(t, x.Rollback())
	assert.Equal(t, []string{"a", "b", "c"}, keys(l.Items()))

	assert.True(t, y.Rollback())
	assert.Equal(t, original, l.Items())
}

func TestInterleavedRollbackOrderIndependent(t *testing.T) {
	original := rows("a", "b", "c", "d")
	l := NewList(rowKey, original)

	x := l.Remove("a")
	y := l.Remove("c")

	assert.True(t, y.Rollback())
	assert.Equal(t, []string{"b", "c", "d"}, keys(l.Items()))
	assert.True(t, x.Rollback())
	assert.Equal(t, original, l.Items())
}

func TestInterleavedRollbackAdjacentItems(t *testing.T) {
	original := rows("a", "b", "c", "d")
	l := NewList(rowKey, original)

	x := l.Remove("b")
	y := l.Remove("c")

	// y never saw b, yet c must land after it
	assert.True(t, x.Rollback())
	assert.True(t, y.Rollback())
	assert.Equal(t, original, l.Items())
}

func TestRollbackAfterReplaceIgnored(t *testing.T) {
	l := NewList(rowKey, rows("a", "b"))
	m := l.Remove("a")

	reloaded := rows("b", "z")
	l.Replace(reloaded)

	assert.False(t, m.Rollback())
	assert.Equal(t, reloaded, l.Items())
	assert.Equal(t, uint64(1), l.Generation())
}

func TestCommitAfterReplaceDoesNotTombstone(t *testing.T) {
	l := NewList(rowKey, rows("a", "b"))
	m := l.Remove("a")
	l.Replace(rows("a", "b"))
	assert.True(t, m.Commit())

	n := l.Remove("b")
	assert.True(t, n.Rollback())
	assert.Equal(t, []string{"a", "b"}, keys(l.Items()))
}

func TestAbsentKeyIsNoop(t *testing.T) {
	l := NewList(rowKey, rows("a"))
	m := l.Remove("missing")
	assert.False(t, m.Applied())
	assert.Empty(t, m.Keys())
	assert.False(t, m.Rollback())
	assert.Equal(t, []string{"a"}, keys(l.Items()))

	u := l.Update("missing", func(r row) row { return r })
	assert.False(t, u.Applied())
}

func TestTerminalCallsAreIdempotent(t *testing.T) {
	l := NewList(rowKey, rows("a", "b"))
	m := l.Remove("a")

	assert.True(t, m.Commit())
	assert.False(t, m.Commit())
	assert.False(t, m.Rollback())
	assert.Equal(t, Committed, m.State())
	assert.Equal(t, []string{"b"}, keys(l.Items()))

	n := l.Remove("b")
	assert.True(t, n.Rollback())
	assert.False(t, n.Rollback())
	assert.False(t, n.Commit())
	assert.Equal(t, []string{"b"}, keys(l.Items()))
}

func TestRemoveSeveral(t *testing.T) {
	l := NewList(rowKey, rows("a", "b", "c"))
	m := l.Remove("a", "c", "nope")
	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.Equal(t, []string{"b"}, keys(l.Items()))
	m.Rollback()
	assert.Equal(t, []string{"a", "b", "c"}, keys(l.Items()))
}

func TestUpdateRollback(t *testing.T) {
	l := NewList(rowKey, rows("a", "b"))

	m := l.Update("b", func(r row) row { r.label = "read"; return r })
	got, ok := l.Get("b")
	require.True(t, ok)
	assert.Equal(t, "read", got.label)

	other := l.Update("a", func(r row) row { r.label = "other"; return r })
	require.True(t, other.Commit())

	m.Rollback()
	a, _ := l.Get("a")
	b, _ := l.Get("b")
	assert.Equal(t, "other", a.label)
	assert.Equal(t, "v0", b.label)
}

func TestUpdateRollbackAfterOtherRemoval(t *testing.T) {
	l := NewList(rowKey, rows("a", "b"))
	u := l.Update("a", func(r row) row { r.label = "x"; return r })
	r := l.Remove("a")
	require.True(t, r.Commit())

	u.Rollback()
	assert.Equal(t, []string{"b"}, keys(l.Items()))
}

func TestItemsIsACopy(t *testing.T) {
	l := NewList(rowKey, rows("a"))
	items := l.Items()
	items[0].label = "changed"
	got, _ := l.Get("a")
	assert.Equal(t, "v0", got.label)
}

func TestConcurrentMutations(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = fmt.Sprintf("k%02d", i)
	}
	original := rows(ids...)
	l := NewList(rowKey, original)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Remove(id).Rollback()
		}()
	}
	wg.Wait()

	assert.Equal(t, original, l.Items())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "committed", Committed.String())
	assert.Equal(t, "rolled_back", RolledBack.String())
}
