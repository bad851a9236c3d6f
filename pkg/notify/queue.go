// Package notify keeps the short-lived status messages shown while a
// mutation is in flight.
package notify

import (
	"slices"
	"sync"
	"time"
)

// Level is the severity of a toast.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

const (
	DefaultTTL      = 3 * time.Second
	DefaultCapacity = 100
)

// Toast is one notification.
type Toast struct {
	ID        uint64    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Sink receives every toast as it is pushed.
type Sink func(Toast)

// Queue is an append-only list of toasts that expire on their own. Expired
// and dismissed entries are pruned lazily. It is safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	now      func() time.Time
	sink     Sink

	nextID  uint64
	active  []Toast
	history []Toast
}

type Option func(*Queue)

// WithTTL sets how long a toast stays active. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(q *Queue) {
		if ttl > 0 {
			q.ttl = ttl
		}
	}
}

// WithCapacity bounds the history.
func WithCapacity(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

func WithSink(s Sink) Option {
	return func(q *Queue) { q.sink = s }
}

func NewQueue(opts ...Option) *Queue {
	q := &Queue{ttl: DefaultTTL, capacity: DefaultCapacity, now: time.Now}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push appends a toast and returns its ID.
func (q *Queue) Push(level Level, msg string) uint64 {
	q.mu.Lock()
	q.nextID++
	now := q.now()
	t := Toast{ID: q.nextID, Level: level, Message: msg, CreatedAt: now, ExpiresAt: now.Add(q.ttl)}
	q.pruneLocked(now)
	q.active = append(q.active, t)
	q.history = append(q.history, t)
	if over := len(q.history) - q.capacity; over > 0 {
		q.history = slices.Delete(q.history, 0, over)
	}
	sink := q.sink
	q.mu.Unlock()

	if sink != nil {
		sink(t)
	}
	return t.ID
}

// Replace dismisses id and pushes a new toast in its place, the way a
// success message replaces the in-progress one.
func (q *Queue) Replace(id uint64, level Level, msg string) uint64 {
	q.Dismiss(id)
	return q.Push(level, msg)
}

// Dismiss removes a toast before it expires.
func (q *Queue) Dismiss(id uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	i := slices.IndexFunc(q.active, func(t Toast) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	q.active = slices.Delete(q.active, i, i+1)
	return true
}

// Active returns the toasts that are neither expired nor dismissed, in the
// order they were pushed.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pruneLocked(q.now())
	return slices.Clone(q.active)
}

// History returns the most recent toasts, expired ones included.
func (q *Queue) History() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.history)
}

func (q *Queue) Info(msg string) uint64    { return q.Push(LevelInfo, msg) }
func (q *Queue) Success(msg string) uint64 { return q.Push(LevelSuccess, msg) }
func (q *Queue) Warn(msg string) uint64    { return q.Push(LevelWarning, msg) }
func (q *Queue) Error(msg string) uint64   { return q.Push(LevelError, msg) }

func (q *Queue) pruneLocked(now time.Time) {
	q.active = slices.DeleteFunc(q.active, func(t Toast) bool { return !now.Before(t.ExpiresAt) })
}
