package tracking

import (
	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/collerrors"
)

// List is a change-tracking index-ordered collection. itemEquals is used
// only to suppress no-op replacements at an index; a nil itemEquals disables
// that suppression.
type List[T any] struct {
	items       []T
	itemEquals  func(a, b T) bool
	builder     *changeset.SortedChangeSetBuilder[T]
	enabled     bool
	dirty       bool
}

// NewList creates an empty list with the given capacity hint.
func NewList[T any](capacity int, itemEquals func(a, b T) bool) *List[T] {
	if itemEquals == nil {
		itemEquals = func(a, b T) bool { return false }
	}
	return &List[T]{
		items:      make([]T, 0, capacity),
		itemEquals: itemEquals,
		builder:    changeset.NewSortedChangeSetBuilder[T](capacity),
	}
}

func (l *List[T]) SetChangeCollectionEnabled(enabled bool) {
	if l.enabled && !enabled {
		l.builder.Clear()
	}
	l.enabled = enabled
}

func (l *List[T]) IsChangeCollectionEnabled() bool { return l.enabled }
func (l *List[T]) IsDirty() bool                   { return l.dirty }
func (l *List[T]) Count() int                      { return len(l.items) }

// Equals reports whether a and b are equal under the list's injected
// item-equality relation. Exposed so subject.List.ObserveValue can suppress
// emissions when the value at an observed index hasn't actually changed.
func (l *List[T]) Equals(a, b T) bool { return l.itemEquals(a, b) }

// At returns the item at index i, or collerrors.ErrIndexOutOfRange.
func (l *List[T]) At(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, collerrors.ErrIndexOutOfRange
	}
	return l.items[i], nil
}

// IndexOf returns the first index of item under itemEquals, or -1.
func (l *List[T]) IndexOf(item T) int {
	for i, v := range l.items {
		if l.itemEquals(v, item) {
			return i
		}
	}
	return -1
}

// Items returns a snapshot slice of the current contents, in order.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) record(c changeset.SortedChange[T]) {
	if l.enabled {
		l.builder.AddChange(c)
	}
}

// Add appends item to the end.
func (l *List[T]) Add(item T) {
	l.items = append(l.items, item)
	l.dirty = true
	l.record(changeset.NewSortedInsertion(len(l.items)-1, item))
}

// AddRange appends each item of items, in order.
func (l *List[T]) AddRange(items []T) {
	for _, item := range items {
		l.Add(item)
	}
}

// Insert inserts item at index i, shifting subsequent elements right. i must
// be in [0, count].
func (l *List[T]) Insert(i int, item T) error {
	if i < 0 || i > len(l.items) {
		return collerrors.ErrIndexOutOfRange
	}
	l.items = append(l.items, item)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = item
	l.dirty = true
	l.record(changeset.NewSortedInsertion(i, item))
	return nil
}

// InsertRange inserts each item of items starting at i, in ascending index
// order.
func (l *List[T]) InsertRange(i int, items []T) error {
	if i < 0 || i > len(l.items) {
		return collerrors.ErrIndexOutOfRange
	}
	for offset, item := range items {
		if err := l.Insert(i+offset, item); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAt removes the item at index i. A single RemoveAt never signals
// OnSourceCleared — per spec §4.4's per-operation table, only Clear and a
// RemoveRange that empties the list do that, mirroring Set.Remove's
// deliberate omission.
func (l *List[T]) RemoveAt(i int) error {
	if i < 0 || i >= len(l.items) {
		return collerrors.ErrIndexOutOfRange
	}
	old := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.dirty = true
	l.record(changeset.NewSortedRemoval(i, old))
	return nil
}

// Remove finds the first index of item under itemEquals and removes it.
// Reports whether an element was found and removed.
func (l *List[T]) Remove(item T) bool {
	idx := l.IndexOf(item)
	if idx < 0 {
		return false
	}
	_ = l.RemoveAt(idx)
	return true
}

// RemoveRange removes the n elements starting at index i, emitting their
// removals in descending index order so every intermediate index stays
// valid against the state produced by the prior removals in the batch.
func (l *List[T]) RemoveRange(i, n int) error {
	if n < 0 || i < 0 || i+n > len(l.items) {
		return collerrors.ErrInvalidArgument
	}
	if n == 0 {
		return nil
	}
	removed := make([]T, n)
	copy(removed, l.items[i:i+n])
	l.items = append(l.items[:i], l.items[i+n:]...)
	l.dirty = true
	for offset := n - 1; offset >= 0; offset-- {
		l.record(changeset.NewSortedRemoval(i+offset, removed[offset]))
	}
	if len(l.items) == 0 && l.enabled {
		l.builder.OnSourceCleared()
	}
	return nil
}

// Set replaces the item at index i (if i == Count, it appends instead). A
// replacement whose new value equals the old one under itemEquals is a
// no-op.
func (l *List[T]) Set(i int, item T) error {
	if i == len(l.items) {
		l.Add(item)
		return nil
	}
	if i < 0 || i > len(l.items) {
		return collerrors.ErrIndexOutOfRange
	}
	old := l.items[i]
	if l.itemEquals(old, item) {
		return nil
	}
	l.items[i] = item
	l.dirty = true
	l.record(changeset.NewSortedReplacement(i, old, item))
	return nil
}

// Move relocates the item at oldIndex to newIndex, emitting a single
// Movement change.
func (l *List[T]) Move(oldIndex, newIndex int) error {
	if oldIndex < 0 || oldIndex >= len(l.items) || newIndex < 0 || newIndex >= len(l.items) {
		return collerrors.ErrIndexOutOfRange
	}
	item := l.items[oldIndex]
	l.items = append(l.items[:oldIndex], l.items[oldIndex+1:]...)
	l.items = append(l.items, item)
	copy(l.items[newIndex+1:], l.items[newIndex:len(l.items)-1])
	l.items[newIndex] = item
	l.dirty = true
	l.record(changeset.NewSortedMovement(oldIndex, newIndex, item))
	return nil
}

// Clear empties the list, emitting one Removal per element in descending
// index order.
func (l *List[T]) Clear() {
	n := len(l.items)
	if n == 0 {
		return
	}
	for i := n - 1; i >= 0; i-- {
		l.record(changeset.NewSortedRemoval(i, l.items[i]))
	}
	l.items = l.items[:0]
	l.dirty = true
	if l.enabled {
		l.builder.OnSourceCleared()
	}
}

// Reset clears the list then appends items, producing (via the builder) a
// Clear or Reset classified batch depending on whether items is non-empty.
func (l *List[T]) Reset(items []T) {
	l.Clear()
	l.AddRange(items)
}

// CaptureChangesAndClean returns the accumulated change set and clears the
// dirty flag. Returns the empty change set while change collection is
// disabled.
func (l *List[T]) CaptureChangesAndClean() changeset.SortedChangeSet[T] {
	l.dirty = false
	if !l.enabled {
		return changeset.EmptySortedChangeSet[T]()
	}
	return l.builder.BuildAndClear(false)
}
