package subject

import (
	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/reactive"
	"github.com/mnohosten/changetrack/pkg/tracking"
)

// Dictionary is the reactive wrapper around a tracking.Dictionary.
type Dictionary[K comparable, V any] struct {
	inner                *tracking.Dictionary[K, V]
	changes              *reactive.Subject[changeset.KeyedChangeSet[K, V]]
	anyChange            *reactive.Subject[struct{}]
	notificationsResumed *reactive.Subject[struct{}]
	suspensionCount      int
}

// NewDictionary creates an empty reactive dictionary. A nil valueEquals
// disables no-op-replacement suppression.
func NewDictionary[K comparable, V any](capacity int, valueEquals func(a, b V) bool) *Dictionary[K, V] {
	return &Dictionary[K, V]{
		inner:                tracking.NewDictionary[K, V](capacity, valueEquals),
		changes:              reactive.NewSubject[changeset.KeyedChangeSet[K, V]](),
		anyChange:            reactive.NewSubject[struct{}](),
		notificationsResumed: reactive.NewSubject[struct{}](),
	}
}

func (d *Dictionary[K, V]) publishPending() {
	if d.suspensionCount != 0 || !d.inner.IsDirty() {
		return
	}
	d.anyChange.Next(struct{}{})
	d.changes.Next(d.inner.CaptureChangesAndClean())
}

func (d *Dictionary[K, V]) ContainsKey(key K) bool      { return d.inner.ContainsKey(key) }
func (d *Dictionary[K, V]) TryGetValue(key K) (V, bool) { return d.inner.TryGetValue(key) }
func (d *Dictionary[K, V]) Get(key K) (V, error)        { return d.inner.Get(key) }
func (d *Dictionary[K, V]) Count() int                  { return d.inner.Count() }

// Snapshot returns the current (key, value) pairs.
func (d *Dictionary[K, V]) Snapshot() map[K]V { return d.inner.Items() }

func (d *Dictionary[K, V]) Add(key K, value V) error {
	err := d.inner.Add(key, value)
	d.publishPending()
	return err
}

func (d *Dictionary[K, V]) AddOrReplace(key K, value V) {
	d.inner.AddOrReplace(key, value)
	d.publishPending()
}

func (d *Dictionary[K, V]) Remove(key K) bool {
	ok := d.inner.Remove(key)
	d.publishPending()
	return ok
}

func (d *Dictionary[K, V]) RemoveValue(key K, expected V) bool {
	ok := d.inner.RemoveValue(key, expected)
	d.publishPending()
	return ok
}

func (d *Dictionary[K, V]) AddOrReplaceRange(pairs map[K]V) {
	d.inner.AddOrReplaceRange(pairs)
	d.publishPending()
}

func (d *Dictionary[K, V]) RemoveRange(keys []K) {
	d.inner.RemoveRange(keys)
	d.publishPending()
}

func (d *Dictionary[K, V]) Clear() {
	d.inner.Clear()
	d.publishPending()
}

func (d *Dictionary[K, V]) Reset(pairs map[K]V) {
	d.inner.Reset(pairs)
	d.publishPending()
}

func (d *Dictionary[K, V]) CollectionChanged() reactive.Observable[struct{}] {
	return d.anyChange.AsObservable()
}

func (d *Dictionary[K, V]) snapshotChangeSet() changeset.KeyedChangeSet[K, V] {
	items := d.inner.Items()
	adds := make([]changeset.KeyedChange[K, V], 0, len(items))
	for k, v := range items {
		adds = append(adds, changeset.NewKeyedAddition(k, v))
	}
	return changeset.NewKeyedChangeSet(adds, changeset.TypeReset)
}

// Subscribe delivers a synthesized full-snapshot change set first, then every
// subsequently published change set. If a suspension is active, the snapshot
// is deferred until it ends.
func (d *Dictionary[K, V]) Subscribe(obs reactive.Observer[changeset.KeyedChangeSet[K, V]]) reactive.Disposable {
	d.inner.SetChangeCollectionEnabled(true)

	live := d.changes.AsObservable()
	var source reactive.Observable[changeset.KeyedChangeSet[K, V]]
	if d.suspensionCount == 0 {
		source = reactive.Prepend(live, d.snapshotChangeSet())
	} else {
		resumed := reactive.Take1(d.notificationsResumed.AsObservable())
		deferred := reactive.Select(resumed, func(struct{}) changeset.KeyedChangeSet[K, V] {
			return d.snapshotChangeSet()
		})
		source = reactive.Concat(deferred, live)
	}

	sub := source.Subscribe(obs)
	return reactive.DisposableFunc(func() {
		sub.Dispose()
		if !d.changes.HasObservers() {
			d.inner.SetChangeCollectionEnabled(false)
		}
	})
}

func (d *Dictionary[K, V]) SuspendNotifications() reactive.Disposable {
	d.suspensionCount++
	released := false
	return reactive.DisposableFunc(func() {
		if released {
			return
		}
		released = true
		d.suspensionCount--
		if d.suspensionCount == 0 {
			d.publishPending()
			d.notificationsResumed.Next(struct{}{})
		}
	})
}

// ObserveValue streams the value stored under key: the current value first
// (or an immediate completion if key is absent), then the latest value after
// every change that replaces it, completing as soon as key is removed,
// cleared, or dropped by a Reset that no longer contains it. Completion is
// terminal — a later re-addition of the same key does not reopen the stream.
func (d *Dictionary[K, V]) ObserveValue(key K) reactive.Observable[V] {
	return reactive.Create(func(obs reactive.Observer[V]) reactive.Disposable {
		// out forwards to obs, skipping any callback obs leaves nil.
		out := reactive.NewSubject[V]()
		out.Subscribe(obs)
		start := func() reactive.Disposable {
			d.inner.SetChangeCollectionEnabled(true)
			v, ok := d.inner.TryGetValue(key)
			if !ok {
				out.Complete()
				return noopDisposable
			}
			out.Next(v)
			done := false
			return d.changes.Subscribe(reactive.Observer[changeset.KeyedChangeSet[K, V]]{
				OnNext: func(cs changeset.KeyedChangeSet[K, V]) {
					if done {
						return
					}
					switch cs.Type() {
					case changeset.TypeClear:
						done = true
						out.Complete()
					case changeset.TypeReset:
						if v2, ok := d.inner.TryGetValue(key); ok {
							out.Next(v2)
						} else {
							done = true
							out.Complete()
						}
					default:
						for _, c := range cs.Changes() {
							k, err := c.Key()
							if err != nil || k != key {
								continue
							}
							switch c.Reason() {
							case changeset.KeyedChangeReasonRemoval:
								done = true
								out.Complete()
							case changeset.KeyedChangeReasonReplacement:
								if cur, err := c.Current(); err == nil {
									out.Next(cur)
								}
							}
							if done {
								break
							}
						}
					}
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

		if d.suspensionCount == 0 {
			return start()
		}
		var started reactive.Disposable
		wait := reactive.Take1(d.notificationsResumed.AsObservable()).Subscribe(reactive.Observer[struct{}]{
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

func (d *Dictionary[K, V]) Dispose() {
	d.changes.Complete()
	d.anyChange.Complete()
	d.notificationsResumed.Complete()
}

var noopDisposable = reactive.DisposableFunc(nil)
