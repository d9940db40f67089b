package changeset

// Type classifies a change set the way a downstream operator needs to:
// whether it can be applied as an arbitrary patch, whether it empties the
// collection, or whether it empties-then-refills it.
type Type string

const (
	// TypeUpdate is an arbitrary-point-mutation batch.
	TypeUpdate Type = "update"
	// TypeClear means every change is a removal and the source collection
	// is empty after applying them.
	TypeClear Type = "clear"
	// TypeReset means a contiguous run of removals emptied the collection,
	// followed by at least one insertion/addition.
	TypeReset Type = "reset"
)

// DistinctChangeSet is an ordered, immutable batch of DistinctChange values
// plus its classification.
type DistinctChangeSet[T any] struct {
	changes []DistinctChange[T]
	typ     Type
}

// NewDistinctChangeSet wraps changes with the given classification. Builders
// are the normal way to obtain one; this constructor exists for the
// snapshot-then-stream synthesis in package subject.
func NewDistinctChangeSet[T any](changes []DistinctChange[T], typ Type) DistinctChangeSet[T] {
	return DistinctChangeSet[T]{changes: changes, typ: typ}
}

// EmptyDistinctChangeSet is the distinguished zero-change set: no changes
// happened, so it classifies as Update vacuously.
func EmptyDistinctChangeSet[T any]() DistinctChangeSet[T] {
	return DistinctChangeSet[T]{typ: TypeUpdate}
}

func (cs DistinctChangeSet[T]) Changes() []DistinctChange[T] { return cs.changes }
func (cs DistinctChangeSet[T]) Type() Type                   { return cs.typ }
func (cs DistinctChangeSet[T]) Count() int                   { return len(cs.changes) }

// KeyedChangeSet is an ordered, immutable batch of KeyedChange values plus
// its classification.
type KeyedChangeSet[K comparable, V any] struct {
	changes []KeyedChange[K, V]
	typ     Type
}

func NewKeyedChangeSet[K comparable, V any](changes []KeyedChange[K, V], typ Type) KeyedChangeSet[K, V] {
	return KeyedChangeSet[K, V]{changes: changes, typ: typ}
}

func EmptyKeyedChangeSet[K comparable, V any]() KeyedChangeSet[K, V] {
	return KeyedChangeSet[K, V]{typ: TypeUpdate}
}

func (cs KeyedChangeSet[K, V]) Changes() []KeyedChange[K, V] { return cs.changes }
func (cs KeyedChangeSet[K, V]) Type() Type                   { return cs.typ }
func (cs KeyedChangeSet[K, V]) Count() int                   { return len(cs.changes) }

// SortedChangeSet is an ordered, immutable batch of SortedChange values plus
// its classification.
type SortedChangeSet[T any] struct {
	changes []SortedChange[T]
	typ     Type
}

func NewSortedChangeSet[T any](changes []SortedChange[T], typ Type) SortedChangeSet[T] {
	return SortedChangeSet[T]{changes: changes, typ: typ}
}

func EmptySortedChangeSet[T any]() SortedChangeSet[T] {
	return SortedChangeSet[T]{typ: TypeUpdate}
}

func (cs SortedChangeSet[T]) Changes() []SortedChange[T] { return cs.changes }
func (cs SortedChangeSet[T]) Type() Type                 { return cs.typ }
func (cs SortedChangeSet[T]) Count() int                 { return len(cs.changes) }
