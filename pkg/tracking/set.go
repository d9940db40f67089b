// Package tracking implements the change-tracking collection engines: a
// distinct-element Set, two keyed flavours (Dictionary and Cache), and an
// index-ordered List. Each records every mutation as an atomic change in an
// internal changeset.*Builder and exposes CaptureChangesAndClean as the
// single capture point that hands the accumulated batch to a caller (in
// practice, one of the wrappers in package subject).
package tracking

import "github.com/mnohosten/changetrack/pkg/changeset"

// Set is a change-tracking distinct-element collection. Element equality is
// Go's built-in comparable equality — none of the collections this module
// was grounded on thread a custom hash/equality pair through a generic
// container, so this follows the idiomatic map[T]struct{} shape instead.
type Set[T comparable] struct {
	items   map[T]struct{}
	builder *changeset.DistinctChangeSetBuilder[T]
	enabled bool
	dirty   bool
}

// NewSet creates an empty set with the given capacity hint.
func NewSet[T comparable](capacity int) *Set[T] {
	return &Set[T]{
		items:   make(map[T]struct{}, capacity),
		builder: changeset.NewDistinctChangeSetBuilder[T](capacity),
	}
}

// SetChangeCollectionEnabled toggles whether mutations are recorded into the
// builder. Storage mutations and the dirty flag are unaffected either way.
// Disabling discards any buffered-but-uncaptured changes, since resuming
// collection later would otherwise mix pre- and post-toggle changes into one
// inconsistent batch.
func (s *Set[T]) SetChangeCollectionEnabled(enabled bool) {
	if s.enabled && !enabled {
		s.builder.Clear()
	}
	s.enabled = enabled
}

func (s *Set[T]) IsChangeCollectionEnabled() bool { return s.enabled }
func (s *Set[T]) IsDirty() bool                   { return s.dirty }
func (s *Set[T]) Count() int                      { return len(s.items) }
func (s *Set[T]) Contains(item T) bool            { _, ok := s.items[item]; return ok }

// Items returns a snapshot slice of the current elements in iteration order.
func (s *Set[T]) Items() []T {
	out := make([]T, 0, len(s.items))
	for item := range s.items {
		out = append(out, item)
	}
	return out
}

func (s *Set[T]) record(c changeset.DistinctChange[T]) {
	if s.enabled {
		s.builder.AddChange(c)
	}
}

// Add inserts item if absent. Reports whether it was actually inserted.
func (s *Set[T]) Add(item T) bool {
	if _, exists := s.items[item]; exists {
		return false
	}
	s.items[item] = struct{}{}
	s.dirty = true
	s.record(changeset.NewDistinctAddition(item))
	return true
}

// Remove deletes item if present. Reports whether it was actually deleted.
func (s *Set[T]) Remove(item T) bool {
	if _, exists := s.items[item]; !exists {
		return false
	}
	delete(s.items, item)
	s.dirty = true
	s.record(changeset.NewDistinctRemoval(item))
	return true
}

// Clear empties the set, emitting one Removal per prior element in
// iteration order.
func (s *Set[T]) Clear() {
	if len(s.items) == 0 {
		return
	}
	for item := range s.items {
		s.record(changeset.NewDistinctRemoval(item))
	}
	s.items = make(map[T]struct{})
	s.dirty = true
	if s.enabled {
		s.builder.OnSourceCleared()
	}
}

// UnionWith adds every element of other that is not already present.
func (s *Set[T]) UnionWith(other []T) {
	for _, item := range other {
		if _, exists := s.items[item]; exists {
			continue
		}
		s.items[item] = struct{}{}
		s.dirty = true
		s.record(changeset.NewDistinctAddition(item))
	}
}

// ExceptWith removes every element of other that is present.
func (s *Set[T]) ExceptWith(other []T) {
	removedAny := false
	for _, item := range other {
		if _, exists := s.items[item]; !exists {
			continue
		}
		delete(s.items, item)
		s.dirty = true
		removedAny = true
		s.record(changeset.NewDistinctRemoval(item))
	}
	if removedAny && len(s.items) == 0 && s.enabled {
		s.builder.OnSourceCleared()
	}
}

// IntersectWith retains only elements that are also present in other.
func (s *Set[T]) IntersectWith(other []T) {
	keep := make(map[T]struct{}, len(other))
	for _, item := range other {
		keep[item] = struct{}{}
	}
	removedAny := false
	for item := range s.items {
		if _, ok := keep[item]; ok {
			continue
		}
		delete(s.items, item)
		s.dirty = true
		removedAny = true
		s.record(changeset.NewDistinctRemoval(item))
	}
	if removedAny && len(s.items) == 0 && s.enabled {
		s.builder.OnSourceCleared()
	}
}

// SymmetricExceptWith toggles each element of other: inserts it if absent,
// removes it if present.
func (s *Set[T]) SymmetricExceptWith(other []T) {
	for _, item := range other {
		if _, exists := s.items[item]; exists {
			delete(s.items, item)
			s.dirty = true
			s.record(changeset.NewDistinctRemoval(item))
		} else {
			s.items[item] = struct{}{}
			s.dirty = true
			s.record(changeset.NewDistinctAddition(item))
		}
	}
}

// Reset clears the set and re-adds items, producing (via the builder) a
// Clear or Reset classified batch depending on whether items is non-empty.
func (s *Set[T]) Reset(items []T) {
	s.Clear()
	s.UnionWith(items)
}

// CaptureChangesAndClean returns the accumulated change set and clears the
// dirty flag. When change collection is disabled this always returns the
// empty change set.
func (s *Set[T]) CaptureChangesAndClean() changeset.DistinctChangeSet[T] {
	s.dirty = false
	if !s.enabled {
		return changeset.EmptyDistinctChangeSet[T]()
	}
	return s.builder.BuildAndClear(false)
}
