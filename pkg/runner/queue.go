package runner

import (
	"context"
	"sync"

	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
)

// Worker processes a single item.
type Worker[I, R any] func(ctx context.Context, item I) (R, error)

// Queue runs a Worker on every pushed item, at most concurrency at a time.
type Queue[I, R any] struct {
	*Runner[I, R]
}

// NewQueue starts a Queue. Items are drained in arrival order, in groups of up
// to concurrency items. A group finishes before the next one starts.
func NewQueue[I, R any](worker Worker[I, R], concurrency int, opts ...Option) (*Queue[I, R], error) {
	if worker == nil {
		return nil, srvErrors.NewNilWorkerError()
	}
	if concurrency < 1 {
		return nil, srvErrors.NewInvalidConcurrencyError(concurrency)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = "queue"
	}

	h := &queueHandler[I, R]{name: o.name, worker: worker}
	r, err := newRunner[I, R](concurrency, h, o)
	if err != nil {
		return nil, err
	}
	return &Queue[I, R]{Runner: r}, nil
}

type queueHandler[I, R any] struct {
	settler[I, R]
	name   string
	worker Worker[I, R]
}

func (h *queueHandler[I, R]) HandleGroup(ctx context.Context, group []*pending[I, R]) {
	var wg sync.WaitGroup
	for _, p := range group {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := invoke(func() (R, error) {
				return h.worker(ctx, p.item)
			})
			if err != nil {
				zap.S().Named("runner").Debugw("worker failed", "name", h.name, "error", err)
				p.future.Reject(err)
				return
			}
			p.future.Resolve(v)
		}()
	}
	wg.Wait()
}
