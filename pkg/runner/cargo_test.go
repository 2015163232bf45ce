package runner_test

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
	"github.com/kubev2v/taskrunner/pkg/runner"
	"github.com/kubev2v/taskrunner/pkg/scheduler"
)

func values(_ context.Context, items []item) ([]int, error) {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out, nil
}

var _ = Describe("Cargo", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("construction", func() {
		DescribeTable("should refuse invalid sizes",
			func(batchSize, concurrency int) {
				c, err := runner.NewCargo(runner.MapBatch(values), batchSize, runner.WithConcurrency(concurrency))
				Expect(err).To(HaveOccurred())
				Expect(srvErrors.IsValidationError(err)).To(BeTrue())
				Expect(c).To(BeNil())
			},
			Entry("zero batch size", 0, 1),
			Entry("negative batch size", -1, 1),
			Entry("zero concurrency", 10, 0),
			Entry("negative concurrency", 10, -1),
			Entry("overflowing capacity", math.MaxInt32, 2),
		)

		It("should refuse a nil worker", func() {
			_, err := runner.NewCargo[int, int](nil, 1)
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		It("should default to one sub-batch at a time", func() {
			c, err := runner.NewCargo(runner.MapBatch(values), 10)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			Expect(c.Concurrency()).To(Equal(1))
			Expect(c.BatchSize()).To(Equal(10))
			Expect(c.Stats().Capacity).To(Equal(10))
		})
	})

	Context("with batch size 10 and an elementwise worker", func() {
		var (
			c     *runner.Cargo[item, int]
			log   *batchLog
			items []item
		)

		BeforeEach(func() {
			log = &batchLog{}
			items = makeItems(1000)

			var err error
			c, err = runner.NewCargo(runner.MapBatch(func(ctx context.Context, batch []item) ([]int, error) {
				out, _ := values(ctx, batch)
				log.add(out)
				time.Sleep(time.Millisecond)
				return out, nil
			}), 10)
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			c.Close()
		})

		It("should resolve items pushed one by one to their own value", func() {
			results := make([]int, len(items))
			var wg sync.WaitGroup
			for k, it := range items {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					v, err := c.Push(ctx, it)
					Expect(err).NotTo(HaveOccurred())
					results[k] = v
				}()
			}
			wg.Wait()

			for k := range items {
				Expect(results[k]).To(Equal(items[k].Value))
			}
			Expect(log.largest()).To(BeNumerically("<=", 10))
		})

		It("should resolve items pushed as one array in order", func() {
			results, err := c.PushAll(ctx, items)
			Expect(err).NotTo(HaveOccurred())
			for k := range items {
				Expect(results[k]).To(Equal(items[k].Value))
			}
			Expect(log.largest()).To(BeNumerically("<=", 10))
		})
	})

	It("should bound outstanding items by batch size times concurrency", func() {
		g := &gauge{}
		log := &batchLog{}
		c, err := runner.NewCargo(runner.MapBatch(func(ctx context.Context, batch []item) ([]int, error) {
			g.enter(len(batch))
			defer g.leave(len(batch))
			out, _ := values(ctx, batch)
			log.add(out)
			time.Sleep(2 * time.Millisecond)
			return out, nil
		}), 5, runner.WithConcurrency(3))
		Expect(err).NotTo(HaveOccurred())
		defer c.Close()

		items := makeItems(300)
		results, err := c.PushAll(ctx, items)
		Expect(err).NotTo(HaveOccurred())
		for k := range items {
			Expect(results[k]).To(Equal(items[k].Value))
		}
		Expect(g.max()).To(BeNumerically("<=", 15))
		Expect(log.largest()).To(BeNumerically("<=", 5))
	})

	Context("distributing results", func() {
		It("should broadcast an aggregate to every item of the sub-batch", func() {
			c, err := runner.NewCargo(func(_ context.Context, batch []int) (runner.Outcome[[]int], error) {
				return runner.Aggregate(batch), nil
			}, 4)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			items := []int{1, 2, 3, 4, 5, 6}
			results, err := c.PushAll(ctx, items)
			Expect(err).NotTo(HaveOccurred())
			for k, got := range results {
				Expect(got).To(ContainElement(items[k]))
				Expect(len(got)).To(BeNumerically("<=", 4))
			}
		})

		It("should distribute an inferred sequence of matching length", func() {
			c, err := runner.NewCargo(func(_ context.Context, batch []int) (runner.Outcome[any], error) {
				out := make([]int, len(batch))
				for i, n := range batch {
					out[i] = n * 10
				}
				return runner.Infer(out), nil
			}, 3)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			results, err := c.PushAll(ctx, []int{1, 2, 3, 4, 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(Equal([]any{10, 20, 30, 40, 50}))
		})

		It("should broadcast an inferred value that is not a matching sequence", func() {
			c, err := runner.NewCargo(func(_ context.Context, batch []int) (runner.Outcome[any], error) {
				return runner.Infer(append(slices.Clone(batch), -1)), nil
			}, 3)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			items := []int{1, 2, 3, 4}
			results, err := c.PushAll(ctx, items)
			Expect(err).NotTo(HaveOccurred())
			for k, got := range results {
				Expect(got).To(BeAssignableToTypeOf([]int{}))
				Expect(got).To(ContainElement(items[k]))
				Expect(got).To(ContainElement(-1))
			}
		})

		It("should broadcast an inferred scalar", func() {
			c, err := runner.NewCargo(func(_ context.Context, _ []string) (runner.Outcome[any], error) {
				return runner.Infer("ok"), nil
			}, 2)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			results, err := c.PushAll(ctx, []string{"a", "b", "c"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(Equal([]any{"ok", "ok", "ok"}))
		})

		It("should broadcast inferred bytes", func() {
			c, err := runner.NewCargo(func(_ context.Context, _ []string) (runner.Outcome[any], error) {
				return runner.Infer([]byte("ok")), nil
			}, 2)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			results, err := c.PushAll(ctx, []string{"a", "b"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(Equal([]any{[]byte("ok"), []byte("ok")}))
		})

		It("should keep nil elements of an inferred sequence", func() {
			c, err := runner.NewCargo(func(_ context.Context, batch []int) (runner.Outcome[any], error) {
				out := make([]any, len(batch))
				for i, n := range batch {
					if n%2 == 0 {
						out[i] = n
					}
				}
				return runner.Infer(out), nil
			}, 2)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			results, err := c.PushAll(ctx, []int{1, 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(Equal([]any{nil, 2}))
		})

		It("should reject an elementwise outcome of the wrong length", func() {
			c, err := runner.NewCargo(func(_ context.Context, _ []int) (runner.Outcome[int], error) {
				return runner.Elementwise([]int{}), nil
			}, 2)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			_, err = c.Push(ctx, 1)
			Expect(srvErrors.IsOutcomeMismatchError(err)).To(BeTrue())
		})
	})

	Context("when a sub-batch fails", func() {
		It("should reject every item of that sub-batch only", func() {
			boom := errors.New("boom")
			log := &batchLog{}
			c, err := runner.NewCargo(func(_ context.Context, batch []int) (runner.Outcome[int], error) {
				log.add(batch)
				time.Sleep(2 * time.Millisecond)
				if slices.Contains(batch, 3) {
					return runner.Outcome[int]{}, boom
				}
				return runner.Elementwise(batch), nil
			}, 5, runner.WithConcurrency(2))
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			futures := make(map[int]*scheduler.Future[int])
			for n := range 10 {
				f, err := c.Submit(ctx, n)
				Expect(err).NotTo(HaveOccurred())
				futures[n] = f
			}
			for _, f := range futures {
				Eventually(f.Done()).Should(BeClosed())
			}

			for _, batch := range log.all() {
				failed := slices.Contains(batch, 3)
				for _, n := range batch {
					v, err := futures[n].Wait(ctx)
					if failed {
						Expect(err).To(MatchError(boom))
						continue
					}
					Expect(err).NotTo(HaveOccurred())
					Expect(v).To(Equal(n))
				}
			}
		})

		It("should reject the sub-batch when the worker panics", func() {
			c, err := runner.NewCargo(func(_ context.Context, _ []int) (runner.Outcome[int], error) {
				panic("cargo")
			}, 3)
			Expect(err).NotTo(HaveOccurred())
			defer c.Close()

			_, err = c.PushAll(ctx, []int{1, 2})
			Expect(srvErrors.IsWorkerPanicError(err)).To(BeTrue())
			Expect(c.Err()).To(BeNil())
		})
	})
})
