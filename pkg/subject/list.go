package subject

import (
	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/reactive"
	"github.com/mnohosten/changetrack/pkg/tracking"
)

// List is the reactive wrapper around a tracking.List.
type List[T any] struct {
	inner                *tracking.List[T]
	changes              *reactive.Subject[changeset.SortedChangeSet[T]]
	anyChange            *reactive.Subject[struct{}]
	notificationsResumed *reactive.Subject[struct{}]
	suspensionCount      int
}

// NewList creates an empty reactive list. A nil itemEquals disables no-op
// replacement suppression.
func NewList[T any](capacity int, itemEquals func(a, b T) bool) *List[T] {
	return &List[T]{
		inner:                tracking.NewList[T](capacity, itemEquals),
		changes:              reactive.NewSubject[changeset.SortedChangeSet[T]](),
		anyChange:            reactive.NewSubject[struct{}](),
		notificationsResumed: reactive.NewSubject[struct{}](),
	}
}

func (l *List[T]) publishPending() {
	if l.suspensionCount != 0 || !l.inner.IsDirty() {
		return
	}
	l.anyChange.Next(struct{}{})
	l.changes.Next(l.inner.CaptureChangesAndClean())
}

func (l *List[T]) At(i int) (T, error) { return l.inner.At(i) }
func (l *List[T]) IndexOf(item T) int  { return l.inner.IndexOf(item) }
func (l *List[T]) Count() int          { return l.inner.Count() }

// Snapshot returns the current contents, in order.
func (l *List[T]) Snapshot() []T { return l.inner.Items() }

func (l *List[T]) Add(item T) {
	l.inner.Add(item)
	l.publishPending()
}

func (l *List[T]) AddRange(items []T) {
	l.inner.AddRange(items)
	l.publishPending()
}

func (l *List[T]) Insert(i int, item T) error {
	err := l.inner.Insert(i, item)
	l.publishPending()
	return err
}

func (l *List[T]) InsertRange(i int, items []T) error {
	err := l.inner.InsertRange(i, items)
	l.publishPending()
	return err
}

func (l *List[T]) RemoveAt(i int) error {
	err := l.inner.RemoveAt(i)
	l.publishPending()
	return err
}

func (l *List[T]) Remove(item T) bool {
	ok := l.inner.Remove(item)
	l.publishPending()
	return ok
}

func (l *List[T]) RemoveRange(i, n int) error {
	err := l.inner.RemoveRange(i, n)
	l.publishPending()
	return err
}

func (l *List[T]) Set(i int, item T) error {
	err := l.inner.Set(i, item)
	l.publishPending()
	return err
}

func (l *List[T]) Move(oldIndex, newIndex int) error {
	err := l.inner.Move(oldIndex, newIndex)
	l.publishPending()
	return err
}

func (l *List[T]) Clear() {
	l.inner.Clear()
	l.publishPending()
}

func (l *List[T]) Reset(items []T) {
	l.inner.Reset(items)
	l.publishPending()
}

func (l *List[T]) CollectionChanged() reactive.Observable[struct{}] {
	return l.anyChange.AsObservable()
}

func (l *List[T]) snapshotChangeSet() changeset.SortedChangeSet[T] {
	items := l.inner.Items()
	inserts := make([]changeset.SortedChange[T], len(items))
	for i, item := range items {
		inserts[i] = changeset.NewSortedInsertion(i, item)
	}
	return changeset.NewSortedChangeSet(inserts, changeset.TypeReset)
}

func (l *List[T]) Subscribe(obs reactive.Observer[changeset.SortedChangeSet[T]]) reactive.Disposable {
	l.inner.SetChangeCollectionEnabled(true)

	live := l.changes.AsObservable()
	var source reactive.Observable[changeset.SortedChangeSet[T]]
	if l.suspensionCount == 0 {
		source = reactive.Prepend(live, l.snapshotChangeSet())
	} else {
		resumed := reactive.Take1(l.notificationsResumed.AsObservable())
		deferred := reactive.Select(resumed, func(struct{}) changeset.SortedChangeSet[T] {
			return l.snapshotChangeSet()
		})
		source = reactive.Concat(deferred, live)
	}

	sub := source.Subscribe(obs)
	return reactive.DisposableFunc(func() {
		sub.Dispose()
		if !l.changes.HasObservers() {
			l.inner.SetChangeCollectionEnabled(false)
		}
	})
}

func (l *List[T]) SuspendNotifications() reactive.Disposable {
	l.suspensionCount++
	released := false
	return reactive.DisposableFunc(func() {
		if released {
			return
		}
		released = true
		l.suspensionCount--
		if l.suspensionCount == 0 {
			l.publishPending()
			l.notificationsResumed.Next(struct{}{})
		}
	})
}

// ObserveValue streams the item currently at index: the current item first
// (or an immediate completion if index is already out of range), then the
// item at that same index after every subsequent change set, completing as
// soon as index falls outside the list's current bounds. Because list
// positions shift under insertion, removal, and movement, this tracks "the
// item occupying this position" rather than "this specific element" —
// callers that need to follow one element across moves should track it by
// IndexOf in their own OnNext handler instead.
func (l *List[T]) ObserveValue(index int) reactive.Observable[T] {
	return reactive.Create(func(obs reactive.Observer[T]) reactive.Disposable {
		// out forwards to obs, skipping any callback obs leaves nil.
		out := reactive.NewSubject[T]()
		out.Subscribe(obs)
		start := func() reactive.Disposable {
			l.inner.SetChangeCollectionEnabled(true)
			v, err := l.inner.At(index)
			if err != nil {
				out.Complete()
				return noopDisposable
			}
			out.Next(v)
			last := v
			done := false
			return l.changes.Subscribe(reactive.Observer[changeset.SortedChangeSet[T]]{
				OnNext: func(cs changeset.SortedChangeSet[T]) {
					if done {
						return
					}
					if cs.Type() == changeset.TypeClear {
						done = true
						out.Complete()
						return
					}
					v, err := l.inner.At(index)
					if err != nil {
						done = true
						out.Complete()
						return
					}
					if l.inner.Equals(last, v) {
						return
					}
					last = v
					out.Next(v)
				},
				OnCompleted: func() {
					if !done {
						done = true
						out.Complete()
					}
				},
				OnError: out.Error,
			})
		}

		if l.suspensionCount == 0 {
			return start()
		}
		var started reactive.Disposable
		wait := reactive.Take1(l.notificationsResumed.AsObservable()).Subscribe(reactive.Observer[struct{}]{
			OnNext: func(struct{}) { started = start() },
		})
		return reactive.DisposableFunc(func() {
			wait.Dispose()
			if started != nil {
				started.Dispose()
			}
		})
	})
}

func (l *List[T]) Dispose() {
	l.changes.Complete()
	l.anyChange.Complete()
	l.notificationsResumed.Complete()
}
