package target_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
	"github.com/kubev2v/taskrunner/pkg/target"
	"github.com/kubev2v/taskrunner/test"
)

var _ = Describe("Client", func() {
	var (
		ctx  context.Context
		mock *test.MockTarget
	)

	BeforeEach(func() {
		ctx = context.Background()
		mock = test.NewMockTarget()
	})

	AfterEach(func() {
		mock.Close()
	})

	newClient := func(opts ...target.Option) *target.Client {
		opts = append([]target.Option{target.WithRetry(3, time.Millisecond)}, opts...)
		c, err := target.NewClient(mock.URL(), opts...)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	It("should refuse an invalid url", func() {
		_, err := target.NewClient("not a url")
		Expect(err).To(HaveOccurred())

		_, err = target.NewClient("ftp://example.com/x")
		Expect(err).To(HaveOccurred())
	})

	It("should post the payload and return the reply", func() {
		reply, err := newClient().Send(ctx, []int{1, 2, 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(MatchJSON(`[1,2,3]`))

		Expect(mock.Requests()).To(HaveLen(1))
		Expect(mock.Headers()[0].Get("Content-Type")).To(Equal("application/json"))
		Expect(mock.Headers()[0].Get("Authorization")).To(BeEmpty())
	})

	It("should send the bearer token", func() {
		_, err := newClient(target.WithToken("secret")).Send(ctx, json.RawMessage(`{}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(mock.Headers()[0].Get("Authorization")).To(Equal("Bearer secret"))
	})

	It("should return null for an empty reply", func() {
		mock.Reply(func([]byte) (int, []byte) {
			return http.StatusNoContent, nil
		})
		reply, err := newClient().Send(ctx, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(MatchJSON(`null`))
	})

	It("should retry server errors", func() {
		var calls atomic.Int32
		mock.Reply(func(body []byte) (int, []byte) {
			if calls.Add(1) < 3 {
				return http.StatusServiceUnavailable, nil
			}
			return http.StatusOK, body
		})

		reply, err := newClient().Send(ctx, "x")
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(MatchJSON(`"x"`))
		Expect(calls.Load()).To(BeEquivalentTo(3))
	})

	It("should give up after the last attempt", func() {
		mock.Reply(func([]byte) (int, []byte) {
			return http.StatusBadGateway, nil
		})

		_, err := newClient().Send(ctx, "x")
		Expect(srvErrors.IsTargetError(err)).To(BeTrue())
		Expect(mock.Requests()).To(HaveLen(3))
	})

	It("should not retry client errors", func() {
		mock.Reply(func([]byte) (int, []byte) {
			return http.StatusUnprocessableEntity, nil
		})

		_, err := newClient().Send(ctx, "x")
		Expect(srvErrors.IsTargetError(err)).To(BeTrue())
		Expect(mock.Requests()).To(HaveLen(1))
	})

	It("should not retry an invalid json reply", func() {
		mock.Reply(func([]byte) (int, []byte) {
			return http.StatusOK, []byte("{oops")
		})

		_, err := newClient().Send(ctx, "x")
		Expect(err).To(MatchError(ContainSubstring("invalid json")))
		Expect(mock.Requests()).To(HaveLen(1))
	})
})
