// Package optimistic applies list mutations before the server confirms them
// and undoes them if it does not.
package optimistic

import (
	"slices"
	"sync"
)

// List is an ordered collection keyed by a caller-supplied function. It is
// safe for concurrent use. Items are values; a mutation replaces them, it
// never edits one in place.
type List[T any] struct {
	mu    sync.Mutex
	key   func(T) string
	items []T

	// generation changes on Replace, version on every change to items.
	generation uint64
	version    uint64

	// tombstones hold keys whose removal was committed since the last
	// Replace, so a concurrent rollback cannot resurrect them.
	tombstones map[string]struct{}

	// rank is each key's position in the loaded order. Every snapshot is a
	// subsequence of it.
	rank map[string]int
}

// NewList creates a list holding a copy of items.
func NewList[T any](key func(T) string, items []T) *List[T] {
	l := &List[T]{key: key}
	l.load(items)
	return l
}

func (l *List[T]) load(items []T) {
	l.items = slices.Clone(items)
	l.tombstones = map[string]struct{}{}
	l.rank = make(map[string]int, len(items))
	for i, it := range items {
		l.rank[l.key(it)] = i
	}
}

// Replace swaps in a freshly loaded list. Mutations started before the
// replace can still commit but their rollbacks are ignored.
func (l *List[T]) Replace(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.load(items)
	l.generation++
	l.version++
}

// Items returns a copy of the current items in order.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Get looks an item up by key.
func (l *List[T]) Get(key string) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(key); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

// Generation identifies the current load.
func (l *List[T]) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

func (l *List[T]) indexOf(key string) int {
	return l.indexIn(l.items, key)
}

// Remove drops the items with the given keys. Keys not in the list are
// ignored; when none are present the mutation is a no-op.
func (l *List[T]) Remove(keys ...string) *Mutation[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	m := l.begin(actionRemove)
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}

	kept := make([]T, 0, len(l.items))
	for _, it := range l.items {
		k := l.key(it)
		if _, ok := want[k]; ok {
			m.keys[k] = struct{}{}
			continue
		}
		kept = append(kept, it)
	}
	if len(m.keys) == 0 {
		return m.noop()
	}
	l.items = kept
	return l.applied(m)
}

// Update replaces the item with the given key by fn's result.
func (l *List[T]) Update(key string, fn func(T) T) *Mutation[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	m := l.begin(actionUpdate)
	i := l.indexOf(key)
	if i < 0 {
		return m.noop()
	}
	next := slices.Clone(l.items)
	next[i] = fn(next[i])
	l.items = next
	m.keys[key] = struct{}{}
	return l.applied(m)
}

// begin snapshots the list. Callers hold the lock.
func (l *List[T]) begin(a action) *Mutation[T] {
	return &Mutation[T]{
		list:       l,
		action:     a,
		snapshot:   slices.Clone(l.items),
		keys:       map[string]struct{}{},
		generation: l.generation,
	}
}

func (l *List[T]) applied(m *Mutation[T]) *Mutation[T] {
	l.version++
	m.version = l.version
	m.applied = true
	return m
}

// restore undoes m. Callers hold the lock.
func (l *List[T]) restore(m *Mutation[T]) bool {
	if m.generation != l.generation {
		return false
	}
	if m.version == l.version {
		l.items = slices.Clone(m.snapshot)
		l.version++
		return true
	}

	// Other changes landed after m. Start from the current list and put
	// m's own items back: updated items get their snapshot value, removed
	// items go back to their place in the loaded order. Items whose
	// removal someone else committed stay removed.
	out := slices.Clone(l.items)
	for _, it := range m.snapshot {
		k := l.key(it)
		if _, own := m.keys[k]; !own {
			continue
		}
		if _, gone := l.tombstones[k]; gone {
			continue
		}
		if j := l.indexIn(out, k); j >= 0 {
			out[j] = it
			continue
		}
		if m.action != actionRemove {
			continue
		}
		pos := slices.IndexFunc(out, func(o T) bool { return l.rank[l.key(o)] > l.rank[k] })
		if pos < 0 {
			pos = len(out)
		}
		out = slices.Insert(out, pos, it)
	}
	l.items = out
	l.version++
	return true
}

func (l *List[T]) indexIn(items []T, key string) int {
	return slices.IndexFunc(items, func(it T) bool { return l.key(it) == key })
}
