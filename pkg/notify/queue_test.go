package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)}
}

func messages(ts []Toast) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Message
	}
	return out
}

func TestActiveInInsertionOrder(t *testing.T) {
	q := NewQueue(WithClock(newClock().Now))
	q.Info("one")
	q.Error("two")
	q.Success("three")

	active := q.Active()
	assert.Equal(t, []string{"one", "two", "three"}, messages(active))
	assert.Equal(t, LevelError, active[1].Level)
}

func TestToastsExpire(t *testing.T) {
	clock := newClock()
	q := NewQueue(WithClock(clock.Now), WithTTL(3*time.Second))

	q.Info("old")
	clock.Advance(2 * time.Second)
	q.Info("new")
	assert.Len(t, q.Active(), 2)

	clock.Advance(1 * time.Second)
	assert.Equal(t, []string{"new"}, messages(q.Active()))

	clock.Advance(2 * time.Second)
	assert.Empty(t, q.Active())
	assert.Len(t, q.History(), 2)
}

func TestReplace(t *testing.T) {
	q := NewQueue(WithClock(newClock().Now))
	q.Info("unrelated")
	id := q.Info("Approving…")
	q.Replace(id, LevelSuccess, "Approved")

	assert.Equal(t, []string{"unrelated", "Approved"}, messages(q.Active()))
	assert.Equal(t, []string{"unrelated", "Approving…", "Approved"}, messages(q.History()))
}

func TestDismiss(t *testing.T) {
	q := NewQueue(WithClock(newClock().Now))
	id := q.Warn("x")
	assert.True(t, q.Dismiss(id))
	assert.False(t, q.Dismiss(id))
	assert.Empty(t, q.Active())
}

func TestHistoryBounded(t *testing.T) {
	q := NewQueue(WithClock(newClock().Now), WithCapacity(3))
	for _, m := range []string{"a", "b", "c", "d", "e"} {
		q.Info(m)
	}
	assert.Equal(t, []string{"c", "d", "e"}, messages(q.History()))
}

func TestSinkReceivesEveryToast(t *testing.T) {
	var got []Toast
	q := NewQueue(WithClock(newClock().Now), WithSink(func(t Toast) { got = append(got, t) }))
	id := q.Info("Rejecting…")
	q.Replace(id, LevelError, "Reject failed")

	require.Len(t, got, 2)
	assert.Equal(t, "Reject failed", got[1].Message)
	assert.Greater(t, got[1].ID, got[0].ID)
}

func TestDefaults(t *testing.T) {
	q := NewQueue(WithTTL(0), WithCapacity(-1))
	assert.Equal(t, DefaultTTL, q.ttl)
	assert.Equal(t, DefaultCapacity, q.capacity)
}
