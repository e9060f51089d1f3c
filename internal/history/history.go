// Package history keeps a linear undo/redo list of immutable snapshots.
package history

// History stores snapshots of T with a cursor. Pushing after an undo discards
// the snapshots that were undone.
type History[T any] struct {
	states []T
	index  int
	equal  func(a, b T) bool
}

// New returns an empty history comparing snapshots with equal.
func New[T any](equal func(a, b T) bool) *History[T] {
	return &History[T]{equal: equal}
}

// NewWith returns a history seeded with initial.
func NewWith[T any](initial T, equal func(a, b T) bool) *History[T] {
	h := New(equal)
	h.Push(initial)
	return h
}

// Push records v as the newest snapshot. It is a no-op when v equals the
// current snapshot.
func (h *History[T]) Push(v T) {
	if len(h.states) == 0 {
		h.states = append(h.states, v)
		h.index = 0
		return
	}
	if h.equal(v, h.states[h.index]) {
		return
	}
	h.states = append(h.states[:h.index+1:h.index+1], v)
	h.index = len(h.states) - 1
}

// Undo steps back one snapshot. It reports false when there is nothing to undo.
func (h *History[T]) Undo() bool {
	if h.index <= 0 {
		return false
	}
	h.index--
	return true
}

// Redo steps forward one snapshot. It reports false when there is nothing to
// redo.
func (h *History[T]) Redo() bool {
	if h.index+1 >= len(h.states) {
		return false
	}
	h.index++
	return true
}

// Current returns the snapshot under the cursor. ok is false before the first
// push.
func (h *History[T]) Current() (v T, ok bool) {
	if len(h.states) == 0 {
		return v, false
	}
	return h.states[h.index], true
}

// OverrideLast replaces the snapshot under the cursor without creating a new
// checkpoint. Snapshots after the cursor are kept.
func (h *History[T]) OverrideLast(v T) {
	if len(h.states) == 0 {
		h.states = append(h.states, v)
		h.index = 0
		return
	}
	h.states[h.index] = v
}

// Len returns the number of stored snapshots.
func (h *History[T]) Len() int { return len(h.states) }

// Index returns the cursor position.
func (h *History[T]) Index() int { return h.index }

// CanUndo reports whether Undo would succeed.
func (h *History[T]) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History[T]) CanRedo() bool { return h.index+1 < len(h.states) }
