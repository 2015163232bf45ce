// Package bench runs the reference Queue and Cargo scenarios in-process and
// checks that every item got its own value back within the concurrency bound.
package bench

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kubev2v/taskrunner/internal/config"
	"github.com/kubev2v/taskrunner/pkg/runner"
)

type Config struct {
	Items  int
	Delay  time.Duration
	Runner config.Runner
}

type Result struct {
	Name    string
	Items   int
	Elapsed time.Duration
	Peak    int
	Limit   int
	Groups  uint64
	Err     error
}

type item struct {
	Value int
}

// pusher is what a scenario needs from a Queue or a Cargo.
type pusher interface {
	Push(ctx context.Context, it item) (int, error)
	PushAll(ctx context.Context, items []item) ([]int, error)
}

// Run executes every scenario in order and returns one Result per scenario.
// A failing scenario does not stop the next ones.
func Run(ctx context.Context, cfg Config) []Result {
	items := make([]item, cfg.Items)
	for i := range items {
		items[i] = item{Value: i}
	}

	var results []Result
	for _, mode := range []string{"queue", "cargo"} {
		for _, array := range []bool{false, true} {
			results = append(results, runScenario(ctx, cfg, mode, array, items))
		}
	}
	return results
}

func runScenario(ctx context.Context, cfg Config, mode string, array bool, items []item) Result {
	name := mode + "/individual"
	if array {
		name = mode + "/array"
	}
	res := Result{Name: name, Items: len(items)}

	var active, peak atomic.Int64
	track := func(n int) func() {
		v := active.Add(int64(n))
		for {
			p := peak.Load()
			if v <= p || peak.CompareAndSwap(p, v) {
				break
			}
		}
		return func() { active.Add(-int64(n)) }
	}

	var (
		p     pusher
		stop  func()
		stats func() uint64
	)
	switch mode {
	case "queue":
		q, err := runner.NewQueue(func(_ context.Context, it item) (int, error) {
			defer track(1)()
			time.Sleep(cfg.Delay)
			return it.Value, nil
		}, cfg.Runner.QueueConcurrency, runner.WithName(name))
		if err != nil {
			res.Err = err
			return res
		}
		p, stop, stats = q, q.Close, func() uint64 { return q.Stats().Groups }
		res.Limit = cfg.Runner.QueueConcurrency
	default:
		c, err := runner.NewCargo(runner.MapBatch(func(_ context.Context, batch []item) ([]int, error) {
			defer track(len(batch))()
			time.Sleep(cfg.Delay)
			out := make([]int, len(batch))
			for i, it := range batch {
				out[i] = it.Value
			}
			return out, nil
		}), cfg.Runner.CargoBatchSize, runner.WithName(name), runner.WithConcurrency(cfg.Runner.CargoConcurrency))
		if err != nil {
			res.Err = err
			return res
		}
		p, stop, stats = c, c.Close, func() uint64 { return c.Stats().Groups }
		res.Limit = cfg.Runner.CargoBatchSize * cfg.Runner.CargoConcurrency
	}

	start := time.Now()
	got, err := push(ctx, p, items, array)
	stop()
	res.Elapsed = time.Since(start)
	res.Peak = int(peak.Load())
	res.Groups = stats()

	switch {
	case err != nil:
		res.Err = err
	case res.Peak > res.Limit:
		res.Err = fmt.Errorf("%d items in flight, limit is %d", res.Peak, res.Limit)
	default:
		res.Err = verify(items, got)
	}
	return res
}

func push(ctx context.Context, p pusher, items []item, array bool) ([]int, error) {
	if array {
		return p.PushAll(ctx, items)
	}

	got := make([]int, len(items))
	errs := make(chan error, 1)
	var wg sync.WaitGroup
	for k, it := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := p.Push(ctx, it)
			if err != nil {
				select {
				case errs <- err:
				default:
				}
				return
			}
			got[k] = v
		}()
	}
	wg.Wait()

	select {
	case err := <-errs:
		return nil, err
	default:
		return got, nil
	}
}

func verify(items []item, got []int) error {
	if len(got) != len(items) {
		return fmt.Errorf("got %d results for %d items", len(got), len(items))
	}
	for k, it := range items {
		if got[k] != it.Value {
			return fmt.Errorf("result %d is %d, want %d", k, got[k], it.Value)
		}
	}
	return nil
}
