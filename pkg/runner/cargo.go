package runner

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/kubev2v/taskrunner/internal/util"
	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
)

// BatchWorker processes a sub-batch of items at once.
type BatchWorker[I, R any] func(ctx context.Context, items []I) (Outcome[R], error)

// Cargo hands pushed items to a BatchWorker in sub-batches of up to batchSize
// items. WithConcurrency bounds how many sub-batches run at once.
type Cargo[I, R any] struct {
	*Runner[I, R]
	batchSize   int
	concurrency int
}

func NewCargo[I, R any](worker BatchWorker[I, R], batchSize int, opts ...Option) (*Cargo[I, R], error) {
	if worker == nil {
		return nil, srvErrors.NewNilWorkerError()
	}
	if batchSize < 1 {
		return nil, srvErrors.NewInvalidBatchSizeError(batchSize)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		return nil, srvErrors.NewInvalidConcurrencyError(o.concurrency)
	}
	if batchSize > math.MaxInt32/o.concurrency {
		return nil, srvErrors.NewValidationError("capacity", "batch size times concurrency is too large")
	}
	if o.name == "" {
		o.name = "cargo"
	}

	h := &cargoHandler[I, R]{name: o.name, worker: worker, batchSize: batchSize}
	r, err := newRunner[I, R](batchSize*o.concurrency, h, o)
	if err != nil {
		return nil, err
	}
	return &Cargo[I, R]{Runner: r, batchSize: batchSize, concurrency: o.concurrency}, nil
}

func (c *Cargo[I, R]) BatchSize() int {
	return c.batchSize
}

func (c *Cargo[I, R]) Concurrency() int {
	return c.concurrency
}

type cargoHandler[I, R any] struct {
	settler[I, R]
	name      string
	worker    BatchWorker[I, R]
	batchSize int
}

func (h *cargoHandler[I, R]) HandleGroup(ctx context.Context, group []*pending[I, R]) {
	var wg sync.WaitGroup
	for _, batch := range util.Chunk(group, h.batchSize) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.process(ctx, batch)
		}()
	}
	wg.Wait()
}

func (h *cargoHandler[I, R]) process(ctx context.Context, batch []*pending[I, R]) {
	items := make([]I, len(batch))
	for i, p := range batch {
		items[i] = p.item
	}

	outcome, err := invoke(func() (Outcome[R], error) {
		return h.worker(ctx, items)
	})
	var values []R
	if err == nil {
		values, err = outcome.distribute(len(batch))
	}
	if err != nil {
		zap.S().Named("runner").Debugw("batch worker failed", "name", h.name, "size", len(batch), "error", err)
		for _, p := range batch {
			p.future.Reject(err)
		}
		return
	}

	for i, p := range batch {
		p.future.Resolve(values[i])
	}
}
