package scheduler

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
)

type State int32

const (
	StateIdle State = iota
	StateDraining
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// GroupHandler processes one group of items taken from the buffer. It must
// return only once every item of the group is settled.
type GroupHandler[T any] interface {
	HandleGroup(ctx context.Context, group []T)
}

type GroupHandlerFunc[T any] func(ctx context.Context, group []T)

func (f GroupHandlerFunc[T]) HandleGroup(ctx context.Context, group []T) {
	f(ctx, group)
}

// Abandoner is implemented by group handlers that need to settle items the
// scheduler gives up on after a defect.
type Abandoner[T any] interface {
	Abandon(items []T, err error)
}

type Stats struct {
	Name      string
	State     State
	Capacity  int
	Queued    int
	InFlight  int
	Processed uint64
	Groups    uint64
}

type Scheduler[T any] struct {
	name     string
	buffer   *Buffer[T]
	handler  GroupHandler[T]
	onDefect func(error)

	state     atomic.Int32
	inFlight  atomic.Int64
	processed atomic.Uint64
	groups    atomic.Uint64

	mainCtx    context.Context
	mainCancel context.CancelFunc
	close      chan struct{}
	done       chan struct{}
	once       sync.Once

	mu  sync.Mutex
	err error
}

func NewScheduler[T any](capacity int, handler GroupHandler[T], opts ...Option) (*Scheduler[T], error) {
	if capacity < 1 {
		return nil, srvErrors.NewValidationError("capacity", "must be >= 1")
	}
	if handler == nil {
		return nil, srvErrors.NewValidationError("handler", "must not be nil")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(o.ctx)
	s := &Scheduler[T]{
		name:       o.name,
		buffer:     NewBuffer[T](capacity),
		handler:    handler,
		onDefect:   o.onDefect,
		mainCtx:    ctx,
		mainCancel: cancel,
		close:      make(chan struct{}),
		done:       make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Submit admits item, blocking while the scheduler is at capacity.
func (s *Scheduler[T]) Submit(ctx context.Context, item T) error {
	return s.buffer.Admit(ctx, item)
}

// Close stops admissions and waits for every queued item to be processed.
// It is safe to call Close several times and after a defect.
func (s *Scheduler[T]) Close() {
	s.once.Do(func() {
		s.buffer.Close(srvErrors.NewClosedError(s.name))
		close(s.close)
	})
	<-s.done
}

// Done is closed once the scheduler loop exited, either after Close or after a defect.
func (s *Scheduler[T]) Done() <-chan struct{} {
	return s.done
}

// Err returns the defect that stopped the scheduler, if any.
func (s *Scheduler[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Scheduler[T]) State() State {
	return State(s.state.Load())
}

func (s *Scheduler[T]) Stats() Stats {
	return Stats{
		Name:      s.name,
		State:     s.State(),
		Capacity:  s.buffer.Capacity(),
		Queued:    s.buffer.Len(),
		InFlight:  int(s.inFlight.Load()),
		Processed: s.processed.Load(),
		Groups:    s.groups.Load(),
	}
}

func (s *Scheduler[T]) run() {
	defer close(s.done)
	defer s.mainCancel()

	for {
		select {
		case <-s.buffer.Ready():
			if group, err := s.drain(); err != nil {
				s.fail(group, err)
				return
			}
		case <-s.close:
			if group, err := s.drain(); err != nil {
				s.fail(group, err)
				return
			}
			s.state.Store(int32(StateClosed))
			zap.S().Named("scheduler").Debugw("scheduler closed", "name", s.name, "processed", s.processed.Load())
			return
		}
	}
}

// drain hands groups to the handler until the buffer is empty. A group is
// only taken once the previous one has been fully handled.
func (s *Scheduler[T]) drain() ([]T, error) {
	for {
		group := s.buffer.TakeAvailable(s.buffer.Capacity())
		if len(group) == 0 {
			s.state.Store(int32(StateIdle))
			return nil, nil
		}
		s.state.Store(int32(StateDraining))

		err := s.handle(group)
		s.buffer.Release(len(group))
		if err != nil {
			return group, err
		}
	}
}

func (s *Scheduler[T]) handle(group []T) (err error) {
	s.inFlight.Store(int64(len(group)))
	s.groups.Add(1)
	defer func() {
		s.inFlight.Store(0)
		if rec := recover(); rec != nil {
			err = srvErrors.NewDefectError(rec, debug.Stack())
			return
		}
		s.processed.Add(uint64(len(group)))
	}()

	zap.S().Named("scheduler").Debugw("draining group", "name", s.name, "size", len(group))
	s.handler.HandleGroup(s.mainCtx, group)
	return nil
}

// fail stops the scheduler after a defect. The failed group and everything
// still queued are handed back to the handler so that no caller waits forever.
func (s *Scheduler[T]) fail(group []T, err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	s.state.Store(int32(StateClosed))
	s.buffer.Close(err)

	rest := s.buffer.TakeAvailable(s.buffer.Capacity())
	s.buffer.Release(len(rest))

	zap.S().Named("scheduler").Errorw("group handler defect, scheduler stopped",
		"name", s.name, "error", err, "abandoned", len(group)+len(rest))

	if a, ok := s.handler.(Abandoner[T]); ok {
		a.Abandon(append(group, rest...), err)
	}
	if s.onDefect != nil {
		s.onDefect(err)
	}
}
