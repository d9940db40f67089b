// Package changeset implements the atomic-change taxonomy, the change-set
// types built from it, and the builders that classify a batch of atomic
// changes as Update, Clear, or Reset.
//
// Changes are tagged unions: a reason discriminator plus typed accessors
// that return collerrors.ErrInvalidVariant when the accessor doesn't match
// the tag. There is deliberately no exported zero-value constructor for any
// change type — the zero value carries the empty-string reason, which every
// accessor rejects, so a change can only become valid through one of the
// New* constructors below.
package changeset

import "github.com/mnohosten/changetrack/pkg/collerrors"

// DistinctChangeReason discriminates the two variants of a DistinctChange.
type DistinctChangeReason string

const (
	DistinctChangeReasonAddition DistinctChangeReason = "addition"
	DistinctChangeReasonRemoval  DistinctChangeReason = "removal"
)

// DistinctChange describes one mutation of a distinct-element set: either an
// Addition or a Removal of item.
type DistinctChange[T any] struct {
	reason DistinctChangeReason
	item   T
}

// NewDistinctAddition builds an Addition(item) change.
func NewDistinctAddition[T any](item T) DistinctChange[T] {
	return DistinctChange[T]{reason: DistinctChangeReasonAddition, item: item}
}

// NewDistinctRemoval builds a Removal(item) change.
func NewDistinctRemoval[T any](item T) DistinctChange[T] {
	return DistinctChange[T]{reason: DistinctChangeReasonRemoval, item: item}
}

// Reason reports which variant this change is.
func (c DistinctChange[T]) Reason() DistinctChangeReason { return c.reason }

// IsAddition reports whether this change is an Addition.
func (c DistinctChange[T]) IsAddition() bool { return c.reason == DistinctChangeReasonAddition }

// IsRemoval reports whether this change is a Removal.
func (c DistinctChange[T]) IsRemoval() bool { return c.reason == DistinctChangeReasonRemoval }

// valid reports whether the change carries a real (non-"None") tag.
func (c DistinctChange[T]) valid() bool { return c.reason != "" }

// Item returns the affected element. It is valid for both variants; it fails
// only for the zero-value "None" sentinel.
func (c DistinctChange[T]) Item() (T, error) {
	var zero T
	if !c.valid() {
		return zero, collerrors.ErrInvalidVariant
	}
	return c.item, nil
}

// KeyedChangeReason discriminates the three variants of a KeyedChange.
type KeyedChangeReason string

const (
	KeyedChangeReasonAddition    KeyedChangeReason = "addition"
	KeyedChangeReasonRemoval     KeyedChangeReason = "removal"
	KeyedChangeReasonReplacement KeyedChangeReason = "replacement"
)

// KeyedChange describes one mutation of a keyed collection: an Addition of
// (key, item), a Removal of (key, item), or a Replacement of (key, oldItem,
// newItem).
type KeyedChange[K comparable, V any] struct {
	reason      KeyedChangeReason
	key         K
	current     V
	hasCurrent  bool
	previous    V
	hasPrevious bool
}

// NewKeyedAddition builds an Addition(key, item) change.
func NewKeyedAddition[K comparable, V any](key K, item V) KeyedChange[K, V] {
	return KeyedChange[K, V]{reason: KeyedChangeReasonAddition, key: key, current: item, hasCurrent: true}
}

// NewKeyedRemoval builds a Removal(key, item) change.
func NewKeyedRemoval[K comparable, V any](key K, item V) KeyedChange[K, V] {
	return KeyedChange[K, V]{reason: KeyedChangeReasonRemoval, key: key, previous: item, hasPrevious: true}
}

// NewKeyedReplacement builds a Replacement(key, oldItem, newItem) change.
func NewKeyedReplacement[K comparable, V any](key K, oldItem, newItem V) KeyedChange[K, V] {
	return KeyedChange[K, V]{
		reason: KeyedChangeReasonReplacement, key: key,
		current: newItem, hasCurrent: true,
		previous: oldItem, hasPrevious: true,
	}
}

// Reason reports which variant this change is.
func (c KeyedChange[K, V]) Reason() KeyedChangeReason { return c.reason }

func (c KeyedChange[K, V]) valid() bool { return c.reason != "" }

// Key returns the affected key. It fails only for the "None" sentinel.
func (c KeyedChange[K, V]) Key() (K, error) {
	var zero K
	if !c.valid() {
		return zero, collerrors.ErrInvalidVariant
	}
	return c.key, nil
}

// Current returns the item the key maps to after this change. Valid for
// Addition and Replacement; fails for Removal.
func (c KeyedChange[K, V]) Current() (V, error) {
	var zero V
	if !c.hasCurrent {
		return zero, collerrors.ErrInvalidVariant
	}
	return c.current, nil
}

// Previous returns the item the key mapped to before this change. Valid for
// Removal and Replacement; fails for Addition.
func (c KeyedChange[K, V]) Previous() (V, error) {
	var zero V
	if !c.hasPrevious {
		return zero, collerrors.ErrInvalidVariant
	}
	return c.previous, nil
}

// SortedChangeReason discriminates the five variants of a SortedChange.
type SortedChangeReason string

const (
	SortedChangeReasonInsertion   SortedChangeReason = "insertion"
	SortedChangeReasonRemoval     SortedChangeReason = "removal"
	SortedChangeReasonMovement    SortedChangeReason = "movement"
	SortedChangeReasonReplacement SortedChangeReason = "replacement"
	// SortedChangeReasonUpdate is a combined replace-and-move: the item at
	// oldIndex with value oldItem now lives at newIndex with value newItem.
	SortedChangeReasonUpdate SortedChangeReason = "update"
)

// SortedChange describes one mutation of an index-ordered list.
type SortedChange[T any] struct {
	reason SortedChangeReason

	index        int
	hasIndex     bool
	previousIdx  int
	hasPrevIdx   bool
	item         T
	hasItem      bool
	previousItem T
	hasPrevItem  bool
}

// NewSortedInsertion builds an Insertion(index, item) change.
func NewSortedInsertion[T any](index int, item T) SortedChange[T] {
	return SortedChange[T]{reason: SortedChangeReasonInsertion, index: index, hasIndex: true, item: item, hasItem: true}
}

// NewSortedRemoval builds a Removal(index, item) change.
func NewSortedRemoval[T any](index int, item T) SortedChange[T] {
	return SortedChange[T]{reason: SortedChangeReasonRemoval, index: index, hasIndex: true, previousItem: item, hasPrevItem: true}
}

// NewSortedMovement builds a Movement(oldIndex, newIndex, item) change.
func NewSortedMovement[T any](oldIndex, newIndex int, item T) SortedChange[T] {
	return SortedChange[T]{
		reason: SortedChangeReasonMovement,
		index:  newIndex, hasIndex: true,
		previousIdx: oldIndex, hasPrevIdx: true,
		item: item, hasItem: true,
	}
}

// NewSortedReplacement builds a Replacement(index, oldItem, newItem) change.
func NewSortedReplacement[T any](index int, oldItem, newItem T) SortedChange[T] {
	return SortedChange[T]{
		reason: SortedChangeReasonReplacement,
		index:  index, hasIndex: true,
		item: newItem, hasItem: true,
		previousItem: oldItem, hasPrevItem: true,
	}
}

// NewSortedUpdate builds a combined replace+move Update change.
func NewSortedUpdate[T any](oldIndex int, oldItem T, newIndex int, newItem T) SortedChange[T] {
	return SortedChange[T]{
		reason: SortedChangeReasonUpdate,
		index:  newIndex, hasIndex: true,
		previousIdx: oldIndex, hasPrevIdx: true,
		item: newItem, hasItem: true,
		previousItem: oldItem, hasPrevItem: true,
	}
}

// Reason reports which variant this change is.
func (c SortedChange[T]) Reason() SortedChangeReason { return c.reason }

func (c SortedChange[T]) valid() bool { return c.reason != "" }

// Index returns the current/new index of the change. Valid for every
// variant except the zero-value sentinel.
func (c SortedChange[T]) Index() (int, error) {
	if !c.hasIndex {
		return 0, collerrors.ErrInvalidVariant
	}
	return c.index, nil
}

// PreviousIndex returns the index the item moved from. Valid only for
// Movement and Update.
func (c SortedChange[T]) PreviousIndex() (int, error) {
	if !c.hasPrevIdx {
		return 0, collerrors.ErrInvalidVariant
	}
	return c.previousIdx, nil
}

// Item returns the current item. Valid for Insertion, Movement, Replacement,
// and Update; fails for Removal.
func (c SortedChange[T]) Item() (T, error) {
	var zero T
	if !c.hasItem {
		return zero, collerrors.ErrInvalidVariant
	}
	return c.item, nil
}

// PreviousItem returns the item before the change. Valid for Removal,
// Replacement, and Update; fails for Insertion and Movement.
func (c SortedChange[T]) PreviousItem() (T, error) {
	var zero T
	if !c.hasPrevItem {
		return zero, collerrors.ErrInvalidVariant
	}
	return c.previousItem, nil
}
