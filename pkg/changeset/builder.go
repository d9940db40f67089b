package changeset

import "github.com/mnohosten/changetrack/pkg/collerrors"

// classification is the builder's internal state machine. It is a superset
// of Type: None marks "nothing buffered yet" and collapses to TypeUpdate
// only as a side effect of BuildAndClear on an empty buffer (the distinct
// Empty change set).
type classification int

const (
	classificationNone classification = iota
	classificationUpdate
	classificationReset
	classificationClear
)

func (c classification) toType() Type {
	switch c {
	case classificationReset:
		return TypeReset
	case classificationClear:
		return TypeClear
	default:
		return TypeUpdate
	}
}

// DistinctChangeSetBuilder accumulates DistinctChange values and infers the
// resulting Type from the sequence it has seen: Clear once every buffered
// change is a removal and the source emptied, Reset once an addition/
// insertion follows such a run, Update otherwise.
type DistinctChangeSetBuilder[T any] struct {
	changes        []DistinctChange[T]
	state          classification
	hasNonRemovals bool
}

// NewDistinctChangeSetBuilder returns a builder with capacity pre-sized to
// the given hint.
func NewDistinctChangeSetBuilder[T any](capacity int) *DistinctChangeSetBuilder[T] {
	b := &DistinctChangeSetBuilder[T]{}
	b.EnsureCapacity(capacity)
	return b
}

// AddChange appends c and updates the classification state. It rejects an
// uninitialised ("None") change.
func (b *DistinctChangeSetBuilder[T]) AddChange(c DistinctChange[T]) error {
	if !c.valid() {
		return collerrors.ErrInvalidVariant
	}
	if c.reason != DistinctChangeReasonRemoval {
		b.hasNonRemovals = true
	}
	if (b.state == classificationClear || b.state == classificationReset) && c.reason == DistinctChangeReasonAddition {
		b.state = classificationReset
	} else {
		b.state = classificationUpdate
	}
	b.changes = append(b.changes, c)
	return nil
}

// OnSourceCleared signals that the most recent mutation emptied the source
// collection; refines Update/Reset into Clear when no addition was seen.
func (b *DistinctChangeSetBuilder[T]) OnSourceCleared() {
	if !b.hasNonRemovals {
		b.state = classificationClear
	}
}

// BuildAndClear returns the assembled change set and resets the builder. If
// reuseBuffer is true the builder keeps its backing array (the returned
// change set gets a copy); if false, ownership of the backing array
// transfers to the change set and the builder starts fresh next time.
func (b *DistinctChangeSetBuilder[T]) BuildAndClear(reuseBuffer bool) DistinctChangeSet[T] {
	if b.state == classificationNone {
		b.reset()
		return EmptyDistinctChangeSet[T]()
	}
	typ := b.state.toType()
	var out []DistinctChange[T]
	if reuseBuffer {
		out = make([]DistinctChange[T], len(b.changes))
		copy(out, b.changes)
		b.changes = b.changes[:0]
	} else {
		out = b.changes
		b.changes = nil
	}
	b.state = classificationNone
	b.hasNonRemovals = false
	return NewDistinctChangeSet(out, typ)
}

// Clear drops all buffered changes and classification state.
func (b *DistinctChangeSetBuilder[T]) Clear() {
	b.changes = b.changes[:0]
	b.reset()
}

func (b *DistinctChangeSetBuilder[T]) reset() {
	b.state = classificationNone
	b.hasNonRemovals = false
}

// EnsureCapacity grows the internal buffer's capacity to at least n.
func (b *DistinctChangeSetBuilder[T]) EnsureCapacity(n int) {
	if n <= cap(b.changes) {
		return
	}
	grown := make([]DistinctChange[T], len(b.changes), n)
	copy(grown, b.changes)
	b.changes = grown
}

func (b *DistinctChangeSetBuilder[T]) Capacity() int { return cap(b.changes) }
func (b *DistinctChangeSetBuilder[T]) Count() int    { return len(b.changes) }

// KeyedChangeSetBuilder is the KeyedChange analogue of DistinctChangeSetBuilder.
type KeyedChangeSetBuilder[K comparable, V any] struct {
	changes        []KeyedChange[K, V]
	state          classification
	hasNonRemovals bool
}

func NewKeyedChangeSetBuilder[K comparable, V any](capacity int) *KeyedChangeSetBuilder[K, V] {
	b := &KeyedChangeSetBuilder[K, V]{}
	b.EnsureCapacity(capacity)
	return b
}

func (b *KeyedChangeSetBuilder[K, V]) AddChange(c KeyedChange[K, V]) error {
	if !c.valid() {
		return collerrors.ErrInvalidVariant
	}
	if c.reason != KeyedChangeReasonRemoval {
		b.hasNonRemovals = true
	}
	if (b.state == classificationClear || b.state == classificationReset) && c.reason == KeyedChangeReasonAddition {
		b.state = classificationReset
	} else {
		b.state = classificationUpdate
	}
	b.changes = append(b.changes, c)
	return nil
}

func (b *KeyedChangeSetBuilder[K, V]) OnSourceCleared() {
	if !b.hasNonRemovals {
		b.state = classificationClear
	}
}

func (b *KeyedChangeSetBuilder[K, V]) BuildAndClear(reuseBuffer bool) KeyedChangeSet[K, V] {
	if b.state == classificationNone {
		b.reset()
		return EmptyKeyedChangeSet[K, V]()
	}
	typ := b.state.toType()
	var out []KeyedChange[K, V]
	if reuseBuffer {
		out = make([]KeyedChange[K, V], len(b.changes))
		copy(out, b.changes)
		b.changes = b.changes[:0]
	} else {
		out = b.changes
		b.changes = nil
	}
	b.state = classificationNone
	b.hasNonRemovals = false
	return NewKeyedChangeSet(out, typ)
}

func (b *KeyedChangeSetBuilder[K, V]) Clear() {
	b.changes = b.changes[:0]
	b.reset()
}

func (b *KeyedChangeSetBuilder[K, V]) reset() {
	b.state = classificationNone
	b.hasNonRemovals = false
}

func (b *KeyedChangeSetBuilder[K, V]) EnsureCapacity(n int) {
	if n <= cap(b.changes) {
		return
	}
	grown := make([]KeyedChange[K, V], len(b.changes), n)
	copy(grown, b.changes)
	b.changes = grown
}

func (b *KeyedChangeSetBuilder[K, V]) Capacity() int { return cap(b.changes) }
func (b *KeyedChangeSetBuilder[K, V]) Count() int    { return len(b.changes) }

// SortedChangeSetBuilder is the SortedChange analogue of DistinctChangeSetBuilder.
// A Movement, Replacement, or Update counts as a non-removal, so a later
// OnSourceCleared no longer refines the batch to Clear; but none of them is
// an insertion, so none can turn a Clear/Reset run into Reset — only an
// insertion does that.
type SortedChangeSetBuilder[T any] struct {
	changes        []SortedChange[T]
	state          classification
	hasNonRemovals bool
}

func NewSortedChangeSetBuilder[T any](capacity int) *SortedChangeSetBuilder[T] {
	b := &SortedChangeSetBuilder[T]{}
	b.EnsureCapacity(capacity)
	return b
}

func (b *SortedChangeSetBuilder[T]) AddChange(c SortedChange[T]) error {
	if !c.valid() {
		return collerrors.ErrInvalidVariant
	}
	isInsertion := c.reason == SortedChangeReasonInsertion
	isRemoval := c.reason == SortedChangeReasonRemoval
	if !isRemoval {
		b.hasNonRemovals = true
	}
	if (b.state == classificationClear || b.state == classificationReset) && isInsertion {
		b.state = classificationReset
	} else {
		b.state = classificationUpdate
	}
	b.changes = append(b.changes, c)
	return nil
}

func (b *SortedChangeSetBuilder[T]) OnSourceCleared() {
	if !b.hasNonRemovals {
		b.state = classificationClear
	}
}

func (b *SortedChangeSetBuilder[T]) BuildAndClear(reuseBuffer bool) SortedChangeSet[T] {
	if b.state == classificationNone {
		b.reset()
		return EmptySortedChangeSet[T]()
	}
	typ := b.state.toType()
	var out []SortedChange[T]
	if reuseBuffer {
		out = make([]SortedChange[T], len(b.changes))
		copy(out, b.changes)
		b.changes = b.changes[:0]
	} else {
		out = b.changes
		b.changes = nil
	}
	b.state = classificationNone
	b.hasNonRemovals = false
	return NewSortedChangeSet(out, typ)
}

func (b *SortedChangeSetBuilder[T]) Clear() {
	b.changes = b.changes[:0]
	b.reset()
}

func (b *SortedChangeSetBuilder[T]) reset() {
	b.state = classificationNone
	b.hasNonRemovals = false
}

func (b *SortedChangeSetBuilder[T]) EnsureCapacity(n int) {
	if n <= cap(b.changes) {
		return
	}
	grown := make([]SortedChange[T], len(b.changes), n)
	copy(grown, b.changes)
	b.changes = grown
}

func (b *SortedChangeSetBuilder[T]) Capacity() int { return cap(b.changes) }
func (b *SortedChangeSetBuilder[T]) Count() int    { return len(b.changes) }
