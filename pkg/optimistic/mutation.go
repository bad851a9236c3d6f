package optimistic

import "slices"

type action int

const (
	actionRemove action = iota
	actionUpdate
)

// State is where a mutation is in its lifecycle.
type State int

const (
	Pending State = iota
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled_back"
	default:
		return "pending"
	}
}

// Mutation is one optimistic change: the snapshot taken before it was
// applied plus the means to keep or undo it. Exactly one of Commit and
// Rollback takes effect; later calls return false.
type Mutation[T any] struct {
	list       *List[T]
	action     action
	snapshot   []T
	keys       map[string]struct{}
	generation uint64
	version    uint64
	applied    bool
	state      State
}

func (m *Mutation[T]) noop() *Mutation[T] {
	m.snapshot = nil
	return m
}

// Applied reports whether the mutation changed the list. Mutations on
// absent keys are not applied.
func (m *Mutation[T]) Applied() bool {
	return m.applied
}

// Keys lists the keys the mutation touched.
func (m *Mutation[T]) Keys() []string {
	keys := make([]string, 0, len(m.keys))
	for k := range m.keys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Snapshot returns the list as it was before the mutation. It is nil once
// the mutation has committed.
func (m *Mutation[T]) Snapshot() []T {
	m.list.mu.Lock()
	defer m.list.mu.Unlock()
	return slices.Clone(m.snapshot)
}

// State returns the lifecycle state.
func (m *Mutation[T]) State() State {
	m.list.mu.Lock()
	defer m.list.mu.Unlock()
	return m.state
}

// Commit keeps the change and discards the snapshot. Removed keys are
// remembered so that no later rollback brings them back.
func (m *Mutation[T]) Commit() bool {
	l := m.list
	l.mu.Lock()
	defer l.mu.Unlock()
	if m.state != Pending {
		return false
	}
	m.state = Committed
	if m.applied && m.action == actionRemove && m.generation == l.generation {
		for k := range m.keys {
			l.tombstones[k] = struct{}{}
		}
	}
	m.snapshot = nil
	return true
}

// Rollback undoes the change. If nothing else touched the list the snapshot
// is restored as is. Otherwise the mutation's own items return to their
// snapshot values and positions while other changes are kept. A rollback
// after Replace leaves the reloaded list alone. It reports whether the list
// was changed.
func (m *Mutation[T]) Rollback() bool {
	l := m.list
	l.mu.Lock()
	defer l.mu.Unlock()
	if m.state != Pending {
		return false
	}
	m.state = RolledBack
	if !m.applied {
		return false
	}
	restored := l.restore(m)
	m.snapshot = nil
	return restored
}
