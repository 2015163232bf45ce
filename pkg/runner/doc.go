// Package runner provides two bounded-concurrency task runners built on the
// scheduler package.
//
// A Queue calls a Worker once per item and never has more than concurrency
// worker calls outstanding. A Cargo calls a BatchWorker on sub-batches of at
// most batchSize items and runs up to WithConcurrency sub-batches at once.
//
//	Push / PushAll / Submit
//	         │
//	         ▼
//	┌─────────────────┐   blocks while full
//	│ scheduler.Buffer│◄──────────────────── caller
//	└────────┬────────┘
//	         │ one group, at most capacity items
//	         ▼
//	┌─────────────────┐
//	│  queueHandler   │  one goroutine per item
//	│  cargoHandler   │  one goroutine per sub-batch (util.Chunk)
//	└────────┬────────┘
//	         │ Resolve / Reject
//	         ▼
//	  scheduler.Future ───► caller
//
// Each pushed item gets its own Future. A failing worker call only rejects
// the items it was given: one item for a Queue, one sub-batch for a Cargo.
// A worker panic is recovered and reported as *errors.WorkerPanicError.
//
// Batch results are distributed with an Outcome:
//
//	Elementwise(values)  values[i] goes to item i, len(values) must match
//	Aggregate(v)         v goes to every item
//	Infer(v)             elementwise if v is a sequence of matching length,
//	                     broadcast otherwise
//
// Example:
//
//	q, err := runner.NewQueue(func(ctx context.Context, n int) (int, error) {
//	    return n * 2, nil
//	}, 10)
//	if err != nil {
//	    return err
//	}
//	defer q.Close()
//
//	results, err := q.PushAll(ctx, []int{1, 2, 3})
package runner
