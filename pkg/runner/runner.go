package runner

import (
	"context"

	"golang.org/x/sync/errgroup"

	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
	"github.com/kubev2v/taskrunner/pkg/scheduler"
)

type pending[I, R any] struct {
	item   I
	future *scheduler.Future[R]
}

// settler rejects pending items the scheduler abandoned after a defect.
type settler[I, R any] struct{}

func (settler[I, R]) Abandon(items []*pending[I, R], err error) {
	for _, p := range items {
		p.future.Reject(err)
	}
}

// Runner is the submission side shared by Queue and Cargo.
type Runner[I, R any] struct {
	name  string
	sched *scheduler.Scheduler[*pending[I, R]]
}

func newRunner[I, R any](capacity int, handler scheduler.GroupHandler[*pending[I, R]], o options) (*Runner[I, R], error) {
	sched, err := scheduler.NewScheduler(capacity, handler,
		scheduler.WithName(o.name),
		scheduler.WithContext(o.ctx),
		scheduler.WithDefectHandler(o.onDefect),
	)
	if err != nil {
		return nil, err
	}
	return &Runner[I, R]{name: o.name, sched: sched}, nil
}

// Submit admits item and returns its result handle. It blocks while the
// runner is at capacity. Once admitted, the item is processed even if ctx ends.
func (r *Runner[I, R]) Submit(ctx context.Context, item I) (*scheduler.Future[R], error) {
	p := &pending[I, R]{item: item, future: scheduler.NewFuture[R]()}
	if err := r.sched.Submit(ctx, p); err != nil {
		return nil, err
	}
	return p.future, nil
}

// Push submits item and waits for its result.
func (r *Runner[I, R]) Push(ctx context.Context, item I) (R, error) {
	f, err := r.Submit(ctx, item)
	if err != nil {
		var zero R
		return zero, err
	}
	return f.Wait(ctx)
}

// PushAll submits items in order and returns their results aligned by index.
// The first rejection observed fails the call; items already admitted keep
// running and settle on their own.
func (r *Runner[I, R]) PushAll(ctx context.Context, items []I) ([]R, error) {
	futures := make([]*scheduler.Future[R], 0, len(items))
	for _, item := range items {
		f, err := r.Submit(ctx, item)
		if err != nil {
			return nil, err
		}
		futures = append(futures, f)
	}

	results := make([]R, len(items))
	var g errgroup.Group
	for i, f := range futures {
		g.Go(func() error {
			v, err := f.Wait(ctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// PushCallback is the callback form of Push. cb runs on its own goroutine.
func (r *Runner[I, R]) PushCallback(ctx context.Context, item I, cb func(R, error)) {
	go func() {
		cb(r.Push(ctx, item))
	}()
}

// PushAllCallback is the callback form of PushAll. cb runs on its own goroutine.
func (r *Runner[I, R]) PushAllCallback(ctx context.Context, items []I, cb func([]R, error)) {
	go func() {
		cb(r.PushAll(ctx, items))
	}()
}

// Close refuses new items and waits until every admitted item has settled.
func (r *Runner[I, R]) Close() {
	r.sched.Close()
}

// Done is closed once the runner stopped, after Close or after a defect.
func (r *Runner[I, R]) Done() <-chan struct{} {
	return r.sched.Done()
}

// Err returns the *errors.DefectError that stopped the runner, or nil.
func (r *Runner[I, R]) Err() error {
	return r.sched.Err()
}

func (r *Runner[I, R]) Stats() scheduler.Stats {
	return r.sched.Stats()
}

func (r *Runner[I, R]) Name() string {
	return r.name
}

// invoke calls fn and turns a panic into a *errors.WorkerPanicError.
func invoke[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = srvErrors.NewWorkerPanicError(rec)
		}
	}()
	return fn()
}
