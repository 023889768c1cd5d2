package containers

import (
	"context"
	"sync"
)

// Future holds the result of an asynchronous operation. The frame loop
// polls it with TryGet, other goroutines may block on Wait.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns an already completed future.
func Resolved[T any](value T, err error) *Future[T] {
	f := NewFuture[T]()
	f.Complete(value, err)
	return f
}

// Complete stores the result and wakes every waiter. Only the first call has any effect.
func (f *Future[T]) Complete(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// TryGet never blocks: ok is false until the future completed successfully.
func (f *Future[T]) TryGet() (T, bool) {
	select {
	case <-f.done:
		if f.err == nil {
			return f.value, true
		}
	default:
	}
	var zero T
	return zero, false
}

// Err returns the failure of a completed future, nil while pending.
func (f *Future[T]) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Wait blocks until the future completes or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
