package scheduler

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

// PopN removes and returns up to n elements from the head of the queue.
func (wq *queue[T]) PopN(n int) []T {
	old := *wq
	if n > len(old) {
		n = len(old)
	}
	out := make([]T, n)
	copy(out, old[:n])
	clear(old[:n])
	*wq = old[n:]
	return out
}

// Buffer is a FIFO holding area bounded by capacity. A slot is taken on Admit
// and only given back by Release, so queued plus in-flight items never exceed
// the capacity.
type Buffer[T any] struct {
	capacity int
	slots    *semaphore.Weighted
	ready    chan struct{}

	mu       sync.Mutex
	items    queue[T]
	closed   bool
	closeErr error
}

func NewBuffer[T any](capacity int) *Buffer[T] {
	return &Buffer[T]{
		capacity: capacity,
		slots:    semaphore.NewWeighted(int64(capacity)),
		ready:    make(chan struct{}, 1),
	}
}

// Admit appends item to the buffer, blocking while the buffer is full.
// It returns ctx.Err() if ctx ends before a slot frees up and the close
// error once the buffer is closed.
func (b *Buffer[T]) Admit(ctx context.Context, item T) error {
	if err := b.err(); err != nil {
		return err
	}
	if err := b.slots.Acquire(ctx, 1); err != nil {
		return err
	}

	b.mu.Lock()
	if b.closed {
		err := b.closeErr
		b.mu.Unlock()
		b.slots.Release(1)
		return err
	}
	b.items.Push(item)
	b.mu.Unlock()

	select {
	case b.ready <- struct{}{}:
	default:
	}
	return nil
}

// TakeAvailable removes up to max items in arrival order. The slots of the
// returned items stay taken until Release is called.
func (b *Buffer[T]) TakeAvailable(max int) []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items.PopN(max)
}

func (b *Buffer[T]) Release(n int) {
	if n > 0 {
		b.slots.Release(int64(n))
	}
}

// Close refuses further admissions with err. Items already queued stay
// available to TakeAvailable. Only the first call has an effect.
func (b *Buffer[T]) Close(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.closeErr = err
}

// Ready receives a signal after items were admitted.
func (b *Buffer[T]) Ready() <-chan struct{} {
	return b.ready
}

func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items.Len()
}

func (b *Buffer[T]) Capacity() int {
	return b.capacity
}

func (b *Buffer[T]) err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return b.closeErr
	}
	return nil
}
