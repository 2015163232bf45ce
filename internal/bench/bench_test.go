package bench_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/taskrunner/internal/bench"
	"github.com/kubev2v/taskrunner/internal/config"
	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
)

var _ = Describe("Run", func() {
	It("should pass every scenario", func() {
		results := bench.Run(context.Background(), bench.Config{
			Items: 200,
			Delay: time.Millisecond,
			Runner: *config.NewRunnerWithOptionsAndDefaults(
				config.WithCargoConcurrency(2),
			),
		})

		Expect(results).To(HaveLen(4))
		names := make([]string, 0, len(results))
		for _, r := range results {
			names = append(names, r.Name)
			Expect(r.Err).NotTo(HaveOccurred(), r.Name)
			Expect(r.Items).To(Equal(200))
			Expect(r.Peak).To(BeNumerically("<=", r.Limit))
			Expect(r.Groups).To(BeNumerically(">", 0))
		}
		Expect(names).To(Equal([]string{"queue/individual", "queue/array", "cargo/individual", "cargo/array"}))
	})

	It("should report an invalid configuration per scenario", func() {
		results := bench.Run(context.Background(), bench.Config{
			Items: 5,
			Runner: *config.NewRunnerWithOptions(
				config.WithQueueConcurrency(0),
				config.WithCargoBatchSize(1),
				config.WithCargoConcurrency(1),
			),
		})

		Expect(srvErrors.IsValidationError(results[0].Err)).To(BeTrue())
		Expect(srvErrors.IsValidationError(results[1].Err)).To(BeTrue())
		Expect(results[2].Err).NotTo(HaveOccurred())
		Expect(results[3].Err).NotTo(HaveOccurred())
	})
})
