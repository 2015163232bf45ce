package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/taskrunner/internal/models"
	"github.com/kubev2v/taskrunner/pkg/runner"
	"github.com/kubev2v/taskrunner/pkg/scheduler"
)

// Sender delivers a payload to the dispatch target and returns its reply.
type Sender interface {
	Send(ctx context.Context, payload any) (json.RawMessage, error)
}

// Journal records worker invocations.
type Journal interface {
	Create(ctx context.Context, d *models.Dispatch) error
}

type DispatcherConfig struct {
	QueueConcurrency int
	CargoBatchSize   int
	CargoConcurrency int
}

// Dispatcher forwards items to the target through a Queue (one request per
// item) and a Cargo (one request per sub-batch).
type Dispatcher struct {
	sender  Sender
	journal Journal
	queue   *runner.Queue[json.RawMessage, json.RawMessage]
	cargo   *runner.Cargo[json.RawMessage, any]

	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
	err       error
}

func NewDispatcher(ctx context.Context, sender Sender, journal Journal, cfg DispatcherConfig) (*Dispatcher, error) {
	d := &Dispatcher{
		sender:  sender,
		journal: journal,
		done:    make(chan struct{}),
	}

	queue, err := runner.NewQueue(d.sendOne, cfg.QueueConcurrency,
		runner.WithName("queue"),
		runner.WithContext(ctx),
		runner.WithDefectHandler(d.fail),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create queue: %w", err)
	}

	cargo, err := runner.NewCargo(d.sendBatch, cfg.CargoBatchSize,
		runner.WithName("cargo"),
		runner.WithConcurrency(cfg.CargoConcurrency),
		runner.WithContext(ctx),
		runner.WithDefectHandler(d.fail),
	)
	if err != nil {
		queue.Close()
		return nil, fmt.Errorf("failed to create cargo: %w", err)
	}

	d.queue = queue
	d.cargo = cargo
	return d, nil
}

// PushQueue sends every item on its own and returns the replies in order.
func (d *Dispatcher) PushQueue(ctx context.Context, items []json.RawMessage) ([]json.RawMessage, error) {
	return d.queue.PushAll(ctx, items)
}

// PushCargo sends items in sub-batches and returns one result per item.
func (d *Dispatcher) PushCargo(ctx context.Context, items []json.RawMessage) ([]any, error) {
	return d.cargo.PushAll(ctx, items)
}

func (d *Dispatcher) Stats() []models.RunnerStats {
	return []models.RunnerStats{
		toRunnerStats(d.queue.Stats()),
		toRunnerStats(d.cargo.Stats()),
	}
}

// Done is closed after Close or once a runner stopped on a defect.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// Err returns the defect that stopped a runner, if any.
func (d *Dispatcher) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Close drains both runners.
func (d *Dispatcher) Close() {
	d.queue.Close()
	d.cargo.Close()
	d.closeOnce.Do(func() { close(d.done) })
}

func (d *Dispatcher) fail(err error) {
	d.mu.Lock()
	if d.err == nil {
		d.err = err
	}
	d.mu.Unlock()
	d.closeOnce.Do(func() { close(d.done) })
}

func (d *Dispatcher) sendOne(ctx context.Context, item json.RawMessage) (json.RawMessage, error) {
	start := time.Now()
	reply, err := d.sender.Send(ctx, item)
	d.record(ctx, models.DispatchModeQueue, 1, start, err)
	return reply, err
}

func (d *Dispatcher) sendBatch(ctx context.Context, items []json.RawMessage) (runner.Outcome[any], error) {
	start := time.Now()
	reply, err := d.sender.Send(ctx, items)

	var decoded any
	if err == nil {
		if uerr := json.Unmarshal(reply, &decoded); uerr != nil {
			err = fmt.Errorf("failed to decode target reply: %w", uerr)
		}
	}
	d.record(ctx, models.DispatchModeCargo, len(items), start, err)
	if err != nil {
		return runner.Outcome[any]{}, err
	}
	return runner.Infer(decoded), nil
}

func (d *Dispatcher) record(ctx context.Context, mode models.DispatchMode, size int, start time.Time, err error) {
	if d.journal == nil {
		return
	}

	entry := &models.Dispatch{
		Mode:      mode,
		Size:      size,
		Status:    models.DispatchStatusSucceeded,
		StartedAt: start,
		Duration:  time.Since(start),
	}
	if err != nil {
		entry.Status = models.DispatchStatusFailed
		entry.Error = err.Error()
	}

	if jerr := d.journal.Create(context.WithoutCancel(ctx), entry); jerr != nil {
		zap.S().Named("dispatcher").Warnw("failed to record dispatch", "mode", mode, "size", size, "error", jerr)
	}
}

func toRunnerStats(s scheduler.Stats) models.RunnerStats {
	return models.RunnerStats{
		Name:      s.Name,
		State:     s.State.String(),
		Capacity:  s.Capacity,
		Queued:    s.Queued,
		InFlight:  s.InFlight,
		Processed: s.Processed,
		Groups:    s.Groups,
	}
}
