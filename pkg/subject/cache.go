package subject

import (
	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/reactive"
	"github.com/mnohosten/changetrack/pkg/tracking"
)

// Cache is the reactive wrapper around a tracking.Cache.
type Cache[K comparable, V any] struct {
	inner                *tracking.Cache[K, V]
	changes              *reactive.Subject[changeset.KeyedChangeSet[K, V]]
	anyChange            *reactive.Subject[struct{}]
	notificationsResumed *reactive.Subject[struct{}]
	suspensionCount      int
}

// NewCache creates an empty reactive cache. keySelector must not be nil; a
// nil keySelector fails with collerrors.ErrNullArgument rather than
// panicking on the first mutation, per tracking.NewCache.
func NewCache[K comparable, V any](capacity int, keySelector func(item V) K, valueEquals func(a, b V) bool) (*Cache[K, V], error) {
	inner, err := tracking.NewCache[K, V](capacity, keySelector, valueEquals)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		inner:                inner,
		changes:              reactive.NewSubject[changeset.KeyedChangeSet[K, V]](),
		anyChange:            reactive.NewSubject[struct{}](),
		notificationsResumed: reactive.NewSubject[struct{}](),
	}, nil
}

func (c *Cache[K, V]) publishPending() {
	if c.suspensionCount != 0 || !c.inner.IsDirty() {
		return
	}
	c.anyChange.Next(struct{}{})
	c.changes.Next(c.inner.CaptureChangesAndClean())
}

func (c *Cache[K, V]) ContainsKey(key K) bool      { return c.inner.ContainsKey(key) }
func (c *Cache[K, V]) TryGetValue(key K) (V, bool) { return c.inner.TryGetValue(key) }
func (c *Cache[K, V]) Get(key K) (V, error)        { return c.inner.Get(key) }
func (c *Cache[K, V]) Count() int                  { return c.inner.Count() }

// Snapshot returns the current (key, value) pairs.
func (c *Cache[K, V]) Snapshot() map[K]V { return c.inner.Items() }

func (c *Cache[K, V]) Add(item V) error {
	err := c.inner.Add(item)
	c.publishPending()
	return err
}

func (c *Cache[K, V]) AddOrUpdate(item V) {
	c.inner.AddOrUpdate(item)
	c.publishPending()
}

func (c *Cache[K, V]) AddOrUpdateRange(items []V) {
	c.inner.AddOrUpdateRange(items)
	c.publishPending()
}

func (c *Cache[K, V]) RemoveKey(key K) bool {
	ok := c.inner.RemoveKey(key)
	c.publishPending()
	return ok
}

func (c *Cache[K, V]) Remove(item V) bool {
	ok := c.inner.Remove(item)
	c.publishPending()
	return ok
}

func (c *Cache[K, V]) RemoveRange(keys []K) {
	c.inner.RemoveRange(keys)
	c.publishPending()
}

func (c *Cache[K, V]) Clear() {
	c.inner.Clear()
	c.publishPending()
}

func (c *Cache[K, V]) Reset(items []V) {
	c.inner.Reset(items)
	c.publishPending()
}

func (c *Cache[K, V]) CollectionChanged() reactive.Observable[struct{}] {
	return c.anyChange.AsObservable()
}

func (c *Cache[K, V]) snapshotChangeSet() changeset.KeyedChangeSet[K, V] {
	items := c.inner.Items()
	adds := make([]changeset.KeyedChange[K, V], 0, len(items))
	for k, v := range items {
		adds = append(adds, changeset.NewKeyedAddition(k, v))
	}
	return changeset.NewKeyedChangeSet(adds, changeset.TypeReset)
}

func (c *Cache[K, V]) Subscribe(obs reactive.Observer[changeset.KeyedChangeSet[K, V]]) reactive.Disposable {
	c.inner.SetChangeCollectionEnabled(true)

	live := c.changes.AsObservable()
	var source reactive.Observable[changeset.KeyedChangeSet[K, V]]
	if c.suspensionCount == 0 {
		source = reactive.Prepend(live, c.snapshotChangeSet())
	} else {
		resumed := reactive.Take1(c.notificationsResumed.AsObservable())
		deferred := reactive.Select(resumed, func(struct{}) changeset.KeyedChangeSet[K, V] {
			return c.snapshotChangeSet()
		})
		source = reactive.Concat(deferred, live)
	}

	sub := source.Subscribe(obs)
	return reactive.DisposableFunc(func() {
		sub.Dispose()
		if !c.changes.HasObservers() {
			c.inner.SetChangeCollectionEnabled(false)
		}
	})
}

func (c *Cache[K, V]) SuspendNotifications() reactive.Disposable {
	c.suspensionCount++
	released := false
	return reactive.DisposableFunc(func() {
		if released {
			return
		}
		released = true
		c.suspensionCount--
		if c.suspensionCount == 0 {
			c.publishPending()
			c.notificationsResumed.Next(struct{}{})
		}
	})
}

// ObserveValue streams the item stored under key, following the same
// lifecycle as Dictionary.ObserveValue.
func (c *Cache[K, V]) ObserveValue(key K) reactive.Observable[V] {
	return reactive.Create(func(obs reactive.Observer[V]) reactive.Disposable {
		// out forwards to obs, skipping any callback obs leaves nil.
		out := reactive.NewSubject[V]()
		out.Subscribe(obs)
		start := func() reactive.Disposable {
			c.inner.SetChangeCollectionEnabled(true)
			v, ok := c.inner.TryGetValue(key)
			if !ok {
				out.Complete()
				return noopDisposable
			}
			out.Next(v)
			done := false
			return c.changes.Subscribe(reactive.Observer[changeset.KeyedChangeSet[K, V]]{
				OnNext: func(cs changeset.KeyedChangeSet[K, V]) {
					if done {
						return
					}
					switch cs.Type() {
					case changeset.TypeClear:
						done = true
						out.Complete()
					case changeset.TypeReset:
						if v2, ok := c.inner.TryGetValue(key); ok {
							out.Next(v2)
						} else {
							done = true
							out.Complete()
						}
					default:
						for _, ch := range cs.Changes() {
							k, err := ch.Key()
							if err != nil || k != key {
								continue
							}
							switch ch.Reason() {
							case changeset.KeyedChangeReasonRemoval:
								done = true
								out.Complete()
							case changeset.KeyedChangeReasonReplacement:
								if cur, err := ch.Current(); err == nil {
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

		if c.suspensionCount == 0 {
			return start()
		}
		var started reactive.Disposable
		wait := reactive.Take1(c.notificationsResumed.AsObservable()).Subscribe(reactive.Observer[struct{}]{
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

func (c *Cache[K, V]) Dispose() {
	c.changes.Complete()
	c.anyChange.Complete()
	c.notificationsResumed.Complete()
}
