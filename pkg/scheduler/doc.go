// Package scheduler implements the bounded buffer and drain loop behind the
// task runners in pkg/runner.
//
// Items are admitted into a fixed-capacity FIFO buffer and handed to a
// GroupHandler in groups. The loop never starts a new group before the
// previous one is fully handled, so the capacity is also the exact upper
// bound of in-flight items.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                           Scheduler                                 │
//	│                                                                     │
//	│                 Submit(ctx, item)   (blocks while full)             │
//	│                        │                                            │
//	│                        ▼                                            │
//	│  ┌─────────────────────────────────────────────────────────┐        │
//	│  │                 Buffer (capacity N)                     │        │
//	│  │  [item1] [item2] [item3] ...      slots: semaphore(N)   │        │
//	│  └────────────────────────────┬────────────────────────────┘        │
//	│                               │ Ready()                             │
//	│                        ┌──────┴──────┐                              │
//	│                        │   drain()   │  TakeAvailable(N)            │
//	│                        └──────┬──────┘                              │
//	│                               │ group                               │
//	│                        ┌──────┴──────┐                              │
//	│                        │GroupHandler │  returns when all settled    │
//	│                        └──────┬──────┘                              │
//	│                               │                                     │
//	│                        Release(len(group))                          │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Core Components
//
// Buffer:
//   - Holds items in arrival order
//   - A slot is acquired on Admit and only released after the item's group
//     has been handled, so queued + in-flight <= capacity
//   - Admit honours ctx while waiting for a slot
//
// Scheduler:
//   - Runs an event loop that drains the buffer group by group
//   - Exposes Stats, State, Done and Err for supervision
//
// Future:
//   - One-shot result handle (Resolve / Reject / Settle, first call wins)
//   - Done() channel plus Wait(ctx) and a non-blocking Get()
//
// # Drain Loop
//
//	┌───────────┐   Ready()    ┌───────────┐
//	│   Idle    │ ───────────► │ Draining  │ ──┐ buffer not empty:
//	│           │ ◄─────────── │           │ ◄─┘ next group
//	└───────────┘ buffer empty └─────┬─────┘
//	                                 │ Close() / defect
//	                                 ▼
//	                           ┌───────────┐
//	                           │  Closed   │
//	                           └───────────┘
//
//	for {
//	    select {
//	    case <-s.buffer.Ready():   // items admitted
//	        s.drain()
//	    case <-s.close:            // Close(): flush what is left, exit
//	        s.drain()
//	        return
//	    }
//	}
//
// # Defects
//
// Handlers settle per-item failures themselves. A panic that escapes
// HandleGroup means the handler is broken and is treated as unrecoverable:
//
//  1. The panic is converted into a *errors.DefectError (with stack)
//  2. The buffer is closed, later Submit calls fail with the defect
//  3. The failed group and all queued items are passed to Abandon when the
//     handler implements Abandoner
//  4. The defect handler (WithDefectHandler) is called
//  5. Done() is closed and Err() returns the defect
//
// The scheduler never exits the process; that is left to the owner.
//
// # Usage Example
//
//	handler := scheduler.GroupHandlerFunc[int](func(ctx context.Context, group []int) {
//	    for _, n := range group {
//	        process(ctx, n)
//	    }
//	})
//
//	s, err := scheduler.NewScheduler[int](4, handler, scheduler.WithName("numbers"))
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.Submit(ctx, 42); err != nil {
//	    return err
//	}
package scheduler
