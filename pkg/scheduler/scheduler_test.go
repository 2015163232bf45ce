package scheduler_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/goleak"

	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
	"github.com/kubev2v/taskrunner/pkg/scheduler"
)

// recorder is a group handler that records every group it receives.
type recorder struct {
	mu        sync.Mutex
	groups    [][]int
	active    atomic.Int32
	maxActive atomic.Int32
	delay     time.Duration
}

func (r *recorder) HandleGroup(ctx context.Context, group []int) {
	n := r.active.Add(1)
	for {
		m := r.maxActive.Load()
		if n <= m || r.maxActive.CompareAndSwap(m, n) {
			break
		}
	}
	defer r.active.Add(-1)

	time.Sleep(r.delay)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = append(r.groups, append([]int(nil), group...))
}

func (r *recorder) items() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for _, g := range r.groups {
		out = append(out, g...)
	}
	return out
}

func (r *recorder) largestGroup() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	largest := 0
	for _, g := range r.groups {
		largest = max(largest, len(g))
	}
	return largest
}

// panicking panics on the first group and records what it is asked to abandon.
type panicking struct {
	mu         sync.Mutex
	abandoned  []int
	abandonErr error
}

func (p *panicking) HandleGroup(ctx context.Context, group []int) {
	panic("handler bug")
}

func (p *panicking) Abandon(items []int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.abandoned = append(p.abandoned, items...)
	p.abandonErr = err
}

var _ = Describe("Scheduler", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("NewScheduler", func() {
		It("should reject a capacity below 1", func() {
			_, err := scheduler.NewScheduler[int](0, &recorder{})
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		It("should reject a nil handler", func() {
			_, err := scheduler.NewScheduler[int](1, nil)
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		It("should start idle", func() {
			s, err := scheduler.NewScheduler[int](2, &recorder{})
			Expect(err).NotTo(HaveOccurred())
			defer s.Close()

			Expect(s.State()).To(Equal(scheduler.StateIdle))
			Expect(s.Stats().Capacity).To(Equal(2))
		})
	})

	Describe("Draining", func() {
		It("should hand every item to the handler in arrival order", func() {
			r := &recorder{}
			s, err := scheduler.NewScheduler[int](3, r)
			Expect(err).NotTo(HaveOccurred())

			for i := range 20 {
				Expect(s.Submit(ctx, i)).To(Succeed())
			}
			s.Close()

			expected := make([]int, 20)
			for i := range expected {
				expected[i] = i
			}
			Expect(r.items()).To(Equal(expected))
			Expect(s.Stats().Processed).To(Equal(uint64(20)))
		})

		It("should never take more than capacity items in one group", func() {
			r := &recorder{delay: 5 * time.Millisecond}
			s, err := scheduler.NewScheduler[int](4, r)
			Expect(err).NotTo(HaveOccurred())

			var wg sync.WaitGroup
			for i := range 50 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					Expect(s.Submit(ctx, i)).To(Succeed())
				}()
			}
			wg.Wait()
			s.Close()

			Expect(r.items()).To(HaveLen(50))
			Expect(r.largestGroup()).To(BeNumerically("<=", 4))
		})

		It("should never run two groups at the same time", func() {
			r := &recorder{delay: 2 * time.Millisecond}
			s, err := scheduler.NewScheduler[int](2, r)
			Expect(err).NotTo(HaveOccurred())

			var wg sync.WaitGroup
			for i := range 30 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					Expect(s.Submit(ctx, i)).To(Succeed())
				}()
			}
			wg.Wait()
			s.Close()

			Expect(r.maxActive.Load()).To(Equal(int32(1)))
		})

		It("should go back to idle once the buffer is empty", func() {
			s, err := scheduler.NewScheduler[int](2, &recorder{})
			Expect(err).NotTo(HaveOccurred())
			defer s.Close()

			Expect(s.Submit(ctx, 1)).To(Succeed())
			Eventually(func() uint64 { return s.Stats().Processed }, time.Second).Should(Equal(uint64(1)))
			Eventually(s.State, time.Second).Should(Equal(scheduler.StateIdle))
		})
	})

	Describe("Backpressure", func() {
		It("should block Submit while queued and in-flight items fill the capacity", func() {
			unblock := make(chan struct{})
			handler := scheduler.GroupHandlerFunc[int](func(ctx context.Context, group []int) {
				<-unblock
			})
			s, err := scheduler.NewScheduler[int](2, handler)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Submit(ctx, 1)).To(Succeed())
			Expect(s.Submit(ctx, 2)).To(Succeed())

			admitted := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				Expect(s.Submit(ctx, 3)).To(Succeed())
				close(admitted)
			}()

			Consistently(admitted, 100*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(admitted, time.Second).Should(BeClosed())
			s.Close()
		})

		It("should give up admission when the context ends", func() {
			unblock := make(chan struct{})
			handler := scheduler.GroupHandlerFunc[int](func(ctx context.Context, group []int) {
				<-unblock
			})
			s, err := scheduler.NewScheduler[int](1, handler)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Submit(ctx, 1)).To(Succeed())

			short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()
			Expect(s.Submit(short, 2)).To(MatchError(context.DeadlineExceeded))

			close(unblock)
			s.Close()
			Expect(s.Stats().Processed).To(Equal(uint64(1)))
		})
	})

	Describe("Close", func() {
		It("should process queued items before returning", func() {
			r := &recorder{delay: 10 * time.Millisecond}
			s, err := scheduler.NewScheduler[int](5, r)
			Expect(err).NotTo(HaveOccurred())

			for i := range 5 {
				Expect(s.Submit(ctx, i)).To(Succeed())
			}
			s.Close()

			Expect(r.items()).To(HaveLen(5))
			Expect(s.State()).To(Equal(scheduler.StateClosed))
			Expect(s.Err()).NotTo(HaveOccurred())
		})

		It("should refuse submissions after Close", func() {
			s, err := scheduler.NewScheduler[int](1, &recorder{}, scheduler.WithName("numbers"))
			Expect(err).NotTo(HaveOccurred())
			s.Close()

			err = s.Submit(ctx, 1)
			Expect(srvErrors.IsClosedError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("numbers"))
		})

		It("should be idempotent", func() {
			s, err := scheduler.NewScheduler[int](1, &recorder{})
			Expect(err).NotTo(HaveOccurred())
			s.Close()
			s.Close()
			Eventually(s.Done()).Should(BeClosed())
		})

		It("should not leak goroutines", func() {
			defer goleak.VerifyNone(GinkgoT(), goleak.IgnoreCurrent())

			r := &recorder{delay: time.Millisecond}
			s, err := scheduler.NewScheduler[int](4, r)
			Expect(err).NotTo(HaveOccurred())
			for i := range 100 {
				Expect(s.Submit(ctx, i)).To(Succeed())
			}
			s.Close()
		})
	})

	Describe("Defects", func() {
		It("should stop the scheduler and report the defect", func() {
			p := &panicking{}
			defects := make(chan error, 1)
			s, err := scheduler.NewScheduler[int](1, p, scheduler.WithDefectHandler(func(err error) {
				defects <- err
			}))
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Submit(ctx, 7)).To(Succeed())

			var defect error
			Eventually(defects, time.Second).Should(Receive(&defect))
			Expect(srvErrors.IsDefectError(defect)).To(BeTrue())
			Eventually(s.Done(), time.Second).Should(BeClosed())
			Expect(s.Err()).To(MatchError(defect))
			Expect(s.State()).To(Equal(scheduler.StateClosed))

			p.mu.Lock()
			Expect(p.abandoned).To(Equal([]int{7}))
			Expect(srvErrors.IsDefectError(p.abandonErr)).To(BeTrue())
			p.mu.Unlock()

			Expect(srvErrors.IsDefectError(s.Submit(ctx, 8))).To(BeTrue())
			s.Close()
		})
	})
})
