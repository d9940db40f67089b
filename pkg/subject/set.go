// Package subject turns the change-tracking collections in package tracking
// into reactive streams. Each type wraps a tracking collection and turns its
// mutations into a push-based stream of change sets, with snapshot-then-
// stream subscription, notification suspension, and observer-driven
// enable/disable of change collection.
package subject

import (
	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/reactive"
	"github.com/mnohosten/changetrack/pkg/tracking"
)

// Set is the reactive wrapper around a tracking.Set.
type Set[T comparable] struct {
	inner                 *tracking.Set[T]
	changes               *reactive.Subject[changeset.DistinctChangeSet[T]]
	anyChange             *reactive.Subject[struct{}]
	notificationsResumed  *reactive.Subject[struct{}]
	suspensionCount       int
}

// NewSet creates an empty reactive set with the given capacity hint.
func NewSet[T comparable](capacity int) *Set[T] {
	return &Set[T]{
		inner:                tracking.NewSet[T](capacity),
		changes:              reactive.NewSubject[changeset.DistinctChangeSet[T]](),
		anyChange:            reactive.NewSubject[struct{}](),
		notificationsResumed: reactive.NewSubject[struct{}](),
	}
}

func (s *Set[T]) publishPending() {
	if s.suspensionCount != 0 || !s.inner.IsDirty() {
		return
	}
	s.anyChange.Next(struct{}{})
	s.changes.Next(s.inner.CaptureChangesAndClean())
}

// Read operations delegate straight to the underlying collection.
func (s *Set[T]) Contains(item T) bool { return s.inner.Contains(item) }
func (s *Set[T]) Count() int           { return s.inner.Count() }

// Snapshot returns the current contents as a plain slice.
func (s *Set[T]) Snapshot() []T { return s.inner.Items() }

// Add, Remove, Clear, and the bulk set operations mutate the underlying
// collection and then publish any pending notification.
func (s *Set[T]) Add(item T) bool {
	ok := s.inner.Add(item)
	s.publishPending()
	return ok
}

func (s *Set[T]) Remove(item T) bool {
	ok := s.inner.Remove(item)
	s.publishPending()
	return ok
}

func (s *Set[T]) Clear() {
	s.inner.Clear()
	s.publishPending()
}

func (s *Set[T]) UnionWith(other []T) {
	s.inner.UnionWith(other)
	s.publishPending()
}

func (s *Set[T]) ExceptWith(other []T) {
	s.inner.ExceptWith(other)
	s.publishPending()
}

func (s *Set[T]) IntersectWith(other []T) {
	s.inner.IntersectWith(other)
	s.publishPending()
}

func (s *Set[T]) SymmetricExceptWith(other []T) {
	s.inner.SymmetricExceptWith(other)
	s.publishPending()
}

func (s *Set[T]) Reset(items []T) {
	s.inner.Reset(items)
	s.publishPending()
}

// CollectionChanged is the valueless "any change" tick.
func (s *Set[T]) CollectionChanged() reactive.Observable[struct{}] {
	return s.anyChange.AsObservable()
}

func (s *Set[T]) snapshotChangeSet() changeset.DistinctChangeSet[T] {
	items := s.inner.Items()
	adds := make([]changeset.DistinctChange[T], len(items))
	for i, item := range items {
		adds[i] = changeset.NewDistinctAddition(item)
	}
	return changeset.NewDistinctChangeSet(adds, changeset.TypeReset)
}

// Subscribe delivers, as the first element, a synthesized change set
// representing the full current contents, then every subsequently
// published change set (§4.5.2). If a suspension is active, the snapshot is
// deferred until it ends so the subscriber never sees a snapshot followed by
// a stale pending batch.
func (s *Set[T]) Subscribe(obs reactive.Observer[changeset.DistinctChangeSet[T]]) reactive.Disposable {
	s.inner.SetChangeCollectionEnabled(true)

	live := s.changes.AsObservable()
	var source reactive.Observable[changeset.DistinctChangeSet[T]]
	if s.suspensionCount == 0 {
		source = reactive.Prepend(live, s.snapshotChangeSet())
	} else {
		resumed := reactive.Take1(s.notificationsResumed.AsObservable())
		deferred := reactive.Select(resumed, func(struct{}) changeset.DistinctChangeSet[T] {
			return s.snapshotChangeSet()
		})
		source = reactive.Concat(deferred, live)
	}

	sub := source.Subscribe(obs)
	return reactive.DisposableFunc(func() {
		sub.Dispose()
		if !s.changes.HasObservers() {
			s.inner.SetChangeCollectionEnabled(false)
		}
	})
}

// SuspendNotifications defers publication until the returned handle is
// disposed, at which point all mutations that happened during the
// suspension are flushed as a single coalesced change set.
func (s *Set[T]) SuspendNotifications() reactive.Disposable {
	s.suspensionCount++
	released := false
	return reactive.DisposableFunc(func() {
		if released {
			return
		}
		released = true
		s.suspensionCount--
		if s.suspensionCount == 0 {
			s.publishPending()
			s.notificationsResumed.Next(struct{}{})
		}
	})
}

// Dispose completes every stream this subject owns.
func (s *Set[T]) Dispose() {
	s.changes.Complete()
	s.anyChange.Complete()
	s.notificationsResumed.Complete()
}
