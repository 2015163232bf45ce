// Package services implements the business logic layer for the taskrunner.
//
// Services sit between the HTTP handlers and the runners/store.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    ├── Dispatcher ───────► Sender (pkg/target), Journal (store), Queue, Cargo
//	    └── DispatchService ──► Store
//
// # Dispatcher
//
// Dispatcher owns one Queue and one Cargo and forwards their items to the
// target:
//
//	PushQueue(items)                       PushCargo(items)
//	     │                                       │
//	     ▼                                       ▼
//	Queue[RawMessage, RawMessage]         Cargo[RawMessage, any]
//	     │ one POST per item                     │ one POST per sub-batch
//	     ▼                                       ▼
//	Sender.Send(item)                     Sender.Send([items...])
//	     │                                       │
//	     │                                       ▼
//	     │                              reply decoded, runner.Infer:
//	     │                                array of len M → one element per item
//	     │                                anything else  → same value for all
//	     ▼                                       ▼
//	          Journal.Create(mode, size, status, duration)
//
// Every worker invocation is journaled, successful or not. A journal failure
// is logged and never fails the items.
//
// A defect in either runner closes Done() and is reported by Err(). The
// caller decides what to do; `taskrunner serve` exits.
//
// # DispatchService
//
// Read side of the journal. List applies the filters to both the page and
// the total count, so Total ignores Limit and Offset. Without an explicit
// sort the most recent dispatches come first.
package services
