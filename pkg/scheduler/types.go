package scheduler

import (
	"context"
	"sync"
)

type Result[T any] struct {
	Data T
	Err  error
}

// Future is a one-shot result handle. The first call to Settle (or Resolve /
// Reject) wins; later calls are ignored and report false.
type Future[T any] struct {
	once   sync.Once
	done   chan struct{}
	result Result[T]
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) Settle(r Result[T]) bool {
	settled := false
	f.once.Do(func() {
		f.result = r
		close(f.done)
		settled = true
	})
	return settled
}

func (f *Future[T]) Resolve(v T) bool {
	return f.Settle(Result[T]{Data: v})
}

func (f *Future[T]) Reject(err error) bool {
	return f.Settle(Result[T]{Err: err})
}

// Done is closed once the future is settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get returns the result without blocking. ok is false while the future is pending.
func (f *Future[T]) Get() (r Result[T], ok bool) {
	select {
	case <-f.done:
		return f.result, true
	default:
		return r, false
	}
}

// Wait blocks until the future settles or ctx is done. A settled result wins
// over an ended ctx. Giving up on the wait does not stop the work behind the
// future.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result.Data, f.result.Err
	default:
	}

	select {
	case <-f.done:
		return f.result.Data, f.result.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
