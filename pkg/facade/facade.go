// Package facade defines the polymorphism-only capability interfaces that
// sit in front of the concrete types in package tracking and package
// subject. They carry no state of their own: a caller holding a Readable*
// interface is statically prevented from mutating, and a caller holding a
// Mutable* interface gets range/reset operations on top of the ordinary
// mutation surface so many changes can be applied as one atomic operation.
// Observable* interfaces add the reactive capabilities of package subject on
// top of Readable.
//
// Every concrete *subject.Set / *subject.Dictionary / *subject.Cache /
// *subject.List already satisfies its shape's three interfaces by virtue of
// its method set — there is nothing to wire up beyond assigning the
// concrete pointer to the narrower interface type at the point a caller
// should not see more than one capability.
package facade

import (
	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/reactive"
)

// ReadableSet exposes read-only access to a distinct-element collection.
type ReadableSet[T comparable] interface {
	Contains(item T) bool
	Count() int
	Snapshot() []T
}

// MutableSet adds the full set-algebra mutation surface, including the
// bulk operations (UnionWith, ExceptWith, IntersectWith,
// SymmetricExceptWith, Reset) that let a caller replace many elements in
// one pass rather than one Add/Remove call at a time.
type MutableSet[T comparable] interface {
	ReadableSet[T]
	Add(item T) bool
	Remove(item T) bool
	Clear()
	UnionWith(other []T)
	ExceptWith(other []T)
	IntersectWith(other []T)
	SymmetricExceptWith(other []T)
	Reset(items []T)
}

// ObservableSet adds the reactive surface: the change-set stream, the
// valueless "any change" tick, and suspension.
type ObservableSet[T comparable] interface {
	ReadableSet[T]
	Subscribe(obs reactive.Observer[changeset.DistinctChangeSet[T]]) reactive.Disposable
	CollectionChanged() reactive.Observable[struct{}]
	SuspendNotifications() reactive.Disposable
}

// ReadableDictionary exposes read-only access to a keyed collection.
type ReadableDictionary[K comparable, V any] interface {
	ContainsKey(key K) bool
	TryGetValue(key K) (V, bool)
	Get(key K) (V, error)
	Count() int
	Snapshot() map[K]V
}

// MutableDictionary adds the keyed mutation surface, including the range
// operations (AddOrReplaceRange, RemoveRange, Reset).
type MutableDictionary[K comparable, V any] interface {
	ReadableDictionary[K, V]
	Add(key K, value V) error
	AddOrReplace(key K, value V)
	Remove(key K) bool
	RemoveValue(key K, expected V) bool
	AddOrReplaceRange(pairs map[K]V)
	RemoveRange(keys []K)
	Clear()
	Reset(pairs map[K]V)
}

// ObservableDictionary adds the reactive surface, including the per-key
// value stream.
type ObservableDictionary[K comparable, V any] interface {
	ReadableDictionary[K, V]
	Subscribe(obs reactive.Observer[changeset.KeyedChangeSet[K, V]]) reactive.Disposable
	CollectionChanged() reactive.Observable[struct{}]
	SuspendNotifications() reactive.Disposable
	ObserveValue(key K) reactive.Observable[V]
}

// ReadableCache exposes read-only access to a key-selector-addressed
// collection.
type ReadableCache[K comparable, V any] interface {
	ContainsKey(key K) bool
	TryGetValue(key K) (V, bool)
	Get(key K) (V, error)
	Count() int
	Snapshot() map[K]V
}

// MutableCache adds the item-addressed mutation surface.
type MutableCache[K comparable, V any] interface {
	ReadableCache[K, V]
	Add(item V) error
	AddOrUpdate(item V)
	AddOrUpdateRange(items []V)
	RemoveKey(key K) bool
	Remove(item V) bool
	RemoveRange(keys []K)
	Clear()
	Reset(items []V)
}

// ObservableCache adds the reactive surface, including the per-key value
// stream.
type ObservableCache[K comparable, V any] interface {
	ReadableCache[K, V]
	Subscribe(obs reactive.Observer[changeset.KeyedChangeSet[K, V]]) reactive.Disposable
	CollectionChanged() reactive.Observable[struct{}]
	SuspendNotifications() reactive.Disposable
	ObserveValue(key K) reactive.Observable[V]
}

// ReadableList exposes read-only access to an index-ordered collection.
type ReadableList[T any] interface {
	At(i int) (T, error)
	IndexOf(item T) int
	Count() int
	Snapshot() []T
}

// MutableList adds the index-ordered mutation surface, including the range
// operations (AddRange, InsertRange, RemoveRange, Reset) and Move.
type MutableList[T any] interface {
	ReadableList[T]
	Add(item T)
	AddRange(items []T)
	Insert(i int, item T) error
	InsertRange(i int, items []T) error
	RemoveAt(i int) error
	Remove(item T) bool
	RemoveRange(i, n int) error
	Set(i int, item T) error
	Move(oldIndex, newIndex int) error
	Clear()
	Reset(items []T)
}

// ObservableList adds the reactive surface, including the per-index value
// stream.
type ObservableList[T any] interface {
	ReadableList[T]
	Subscribe(obs reactive.Observer[changeset.SortedChangeSet[T]]) reactive.Disposable
	CollectionChanged() reactive.Observable[struct{}]
	SuspendNotifications() reactive.Disposable
	ObserveValue(index int) reactive.Observable[T]
}
