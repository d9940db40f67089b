// Package reactive implements a minimal single-threaded reactive-stream
// primitive: a stream consumable by onNext/onError/onCompleted callbacks,
// subscription returning a disposable handle, and a small set of
// composition operators (Concat, Prepend, Select, Switch, TakeUntil, Take1,
// Empty, Never, Finally).
//
// Everything here is synchronous: Subscribe and Next run the observer
// callbacks on the caller's goroutine before returning and emit on the
// caller's own thread. There is no internal goroutine, channel, or lock
// anywhere in this package — the same single-threaded-cooperative model the
// rest of this module assumes.
package reactive

// Observer receives values, a terminal error, or a terminal completion from
// an Observable. A nil callback is simply not invoked — observers may leave
// any of the three unset.
type Observer[T any] struct {
	OnNext      func(T)
	OnError     func(error)
	OnCompleted func()
}

func (o Observer[T]) next(v T) {
	if o.OnNext != nil {
		o.OnNext(v)
	}
}

func (o Observer[T]) error(err error) {
	if o.OnError != nil {
		o.OnError(err)
	}
}

func (o Observer[T]) completed() {
	if o.OnCompleted != nil {
		o.OnCompleted()
	}
}

// Disposable releases a subscription.
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a plain function to Disposable.
type DisposableFunc func()

func (f DisposableFunc) Dispose() {
	if f != nil {
		f()
	}
}

// noopDisposable is returned by observables that complete synchronously
// within Subscribe and so have nothing left to cancel.
var noopDisposable = DisposableFunc(nil)

// Observable is a cold, repeatable source of values: each Subscribe call
// runs its subscribe function independently.
type Observable[T any] struct {
	subscribe func(Observer[T]) Disposable
}

// Create builds an Observable from a subscribe function.
func Create[T any](subscribe func(Observer[T]) Disposable) Observable[T] {
	return Observable[T]{subscribe: subscribe}
}

// Subscribe attaches obs and returns a handle to cancel it.
func (o Observable[T]) Subscribe(obs Observer[T]) Disposable {
	if o.subscribe == nil {
		return Empty[T]().Subscribe(obs)
	}
	return o.subscribe(obs)
}

// Empty completes immediately without emitting any value.
func Empty[T any]() Observable[T] {
	return Create(func(obs Observer[T]) Disposable {
		obs.completed()
		return noopDisposable
	})
}

// Never emits nothing and never completes.
func Never[T any]() Observable[T] {
	return Create(func(obs Observer[T]) Disposable {
		return noopDisposable
	})
}

// Return emits v once, then completes.
func Return[T any](v T) Observable[T] {
	return Create(func(obs Observer[T]) Disposable {
		obs.next(v)
		obs.completed()
		return noopDisposable
	})
}

// Prepend emits v, then every value of src.
func Prepend[T any](src Observable[T], v T) Observable[T] {
	return Concat(Return(v), src)
}

// Concat subscribes to each source in turn, moving to the next only after
// the previous one completes. An error from any source stops the chain.
func Concat[T any](sources ...Observable[T]) Observable[T] {
	return Create(func(obs Observer[T]) Disposable {
		disposed := false
		var current Disposable
		active := 0
		var subscribeNext func(i int)
		subscribeNext = func(i int) {
			if disposed {
				return
			}
			active = i
			if i >= len(sources) {
				obs.completed()
				return
			}
			sub := sources[i].Subscribe(Observer[T]{
				OnNext:  obs.next,
				OnError: obs.error,
				OnCompleted: func() {
					subscribeNext(i + 1)
				},
			})
			// A source that completed inside Subscribe has already moved the
			// chain on; keep the handle of the source that is still live.
			if active == i {
				current = sub
			}
		}
		subscribeNext(0)
		return DisposableFunc(func() {
			disposed = true
			if current != nil {
				current.Dispose()
			}
		})
	})
}

// Select maps every emitted value through selector.
func Select[T, R any](src Observable[T], selector func(T) R) Observable[R] {
	return Create(func(obs Observer[R]) Disposable {
		return src.Subscribe(Observer[T]{
			OnNext: func(v T) {
				obs.next(selector(v))
			},
			OnError:     obs.error,
			OnCompleted: obs.completed,
		})
	})
}

// Switch subscribes to the latest inner Observable produced by src,
// disposing the previous inner subscription whenever a new one arrives. The
// outer completes only once src itself has completed and the last inner
// Observable (if any) has also completed.
func Switch[T any](src Observable[Observable[T]]) Observable[T] {
	return Create(func(obs Observer[T]) Disposable {
		var innerDisposable Disposable
		outerDone := false
		innerDone := true

		finishIfDone := func() {
			if outerDone && innerDone {
				obs.completed()
			}
		}

		outer := src.Subscribe(Observer[Observable[T]]{
			OnNext: func(inner Observable[T]) {
				if innerDisposable != nil {
					innerDisposable.Dispose()
				}
				innerDone = false
				innerDisposable = inner.Subscribe(Observer[T]{
					OnNext:  obs.next,
					OnError: obs.error,
					OnCompleted: func() {
						innerDone = true
						finishIfDone()
					},
				})
			},
			OnError: obs.error,
			OnCompleted: func() {
				outerDone = true
				finishIfDone()
			},
		})

		return DisposableFunc(func() {
			outer.Dispose()
			if innerDisposable != nil {
				innerDisposable.Dispose()
			}
		})
	})
}

// TakeUntil mirrors src until notifier produces its first value or
// completes, at which point the result completes.
func TakeUntil[T, U any](src Observable[T], notifier Observable[U]) Observable[T] {
	return Create(func(obs Observer[T]) Disposable {
		done := false
		var srcSub, notifierSub Disposable

		stop := func() {
			if done {
				return
			}
			done = true
			obs.completed()
			if srcSub != nil {
				srcSub.Dispose()
			}
			if notifierSub != nil {
				notifierSub.Dispose()
			}
		}

		notifierSub = notifier.Subscribe(Observer[U]{
			OnNext:      func(U) { stop() },
			OnCompleted: func() { stop() },
		})
		if !done {
			srcSub = src.Subscribe(Observer[T]{
				OnNext: func(v T) {
					if !done {
						obs.next(v)
					}
				},
				OnError: func(err error) {
					if !done {
						done = true
						obs.error(err)
					}
				},
				OnCompleted: func() {
					if !done {
						done = true
						obs.completed()
					}
				},
			})
		}

		return DisposableFunc(func() {
			done = true
			if srcSub != nil {
				srcSub.Dispose()
			}
			if notifierSub != nil {
				notifierSub.Dispose()
			}
		})
	})
}

// Take1 mirrors src's first emitted value, then completes (without waiting
// for src itself to complete).
func Take1[T any](src Observable[T]) Observable[T] {
	return Create(func(obs Observer[T]) Disposable {
		done := false
		var sub Disposable
		sub = src.Subscribe(Observer[T]{
			OnNext: func(v T) {
				if done {
					return
				}
				done = true
				obs.next(v)
				obs.completed()
				if sub != nil {
					sub.Dispose()
				}
			},
			OnError: func(err error) {
				if !done {
					done = true
					obs.error(err)
				}
			},
			OnCompleted: func() {
				if !done {
					done = true
					obs.completed()
				}
			},
		})
		return DisposableFunc(func() {
			done = true
			if sub != nil {
				sub.Dispose()
			}
		})
	})
}

// Finally runs action exactly once after src completes, errors, or is
// disposed early, mirroring every value and the terminal notification
// unchanged.
func Finally[T any](src Observable[T], action func()) Observable[T] {
	return Create(func(obs Observer[T]) Disposable {
		ran := false
		runOnce := func() {
			if !ran {
				ran = true
				action()
			}
		}
		sub := src.Subscribe(Observer[T]{
			OnNext: obs.next,
			OnError: func(err error) {
				obs.error(err)
				runOnce()
			},
			OnCompleted: func() {
				obs.completed()
				runOnce()
			},
		})
		return DisposableFunc(func() {
			sub.Dispose()
			runOnce()
		})
	})
}
