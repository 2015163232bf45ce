package store_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/taskrunner/internal/models"
	"github.com/kubev2v/taskrunner/internal/store"
	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
)

var _ = Describe("DispatchStore", func() {
	var (
		ctx  context.Context
		s    *store.Store
		db   *sql.DB
		base time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		base = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
		Expect(s.Migrate(ctx)).To(Succeed())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	seed := func(mode models.DispatchMode, status models.DispatchStatus, size int, offset time.Duration) *models.Dispatch {
		d := &models.Dispatch{
			Mode:      mode,
			Size:      size,
			Status:    status,
			StartedAt: base.Add(offset),
			Duration:  time.Duration(size) * 10 * time.Millisecond,
		}
		if status == models.DispatchStatusFailed {
			d.Error = "target replied 503 Service Unavailable"
		}
		Expect(s.Dispatch().Create(ctx, d)).To(Succeed())
		return d
	}

	Context("Get", func() {
		// Given an empty journal
		// When we get a dispatch by id
		// Then it should return ResourceNotFoundError
		It("should return ResourceNotFoundError when the dispatch does not exist", func() {
			// Act
			_, err := s.Dispatch().Get(ctx, uuid.New())

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given a recorded dispatch
		// When we get it by id
		// Then every field should round trip
		It("should return the recorded dispatch", func() {
			// Arrange
			d := seed(models.DispatchModeCargo, models.DispatchStatusFailed, 7, 0)

			// Act
			got, err := s.Dispatch().Get(ctx, d.ID)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(d.ID))
			Expect(got.Mode).To(Equal(models.DispatchModeCargo))
			Expect(got.Size).To(Equal(7))
			Expect(got.Status).To(Equal(models.DispatchStatusFailed))
			Expect(got.Error).To(ContainSubstring("503"))
			Expect(got.StartedAt).To(BeTemporally("==", base))
			Expect(got.Duration).To(Equal(70 * time.Millisecond))
		})
	})

	Context("Create", func() {
		It("should assign an id when none is given", func() {
			d := seed(models.DispatchModeQueue, models.DispatchStatusSucceeded, 1, 0)
			Expect(d.ID).NotTo(Equal(uuid.Nil))
		})

		It("should keep a given id", func() {
			id := uuid.New()
			d := &models.Dispatch{ID: id, Mode: models.DispatchModeQueue, Size: 1, Status: models.DispatchStatusSucceeded, StartedAt: base}
			Expect(s.Dispatch().Create(ctx, d)).To(Succeed())
			Expect(d.ID).To(Equal(id))
		})
	})

	Context("List", func() {
		BeforeEach(func() {
			seed(models.DispatchModeQueue, models.DispatchStatusSucceeded, 1, 1*time.Second)
			seed(models.DispatchModeQueue, models.DispatchStatusFailed, 1, 2*time.Second)
			seed(models.DispatchModeCargo, models.DispatchStatusSucceeded, 10, 3*time.Second)
			seed(models.DispatchModeCargo, models.DispatchStatusSucceeded, 4, 4*time.Second)
		})

		It("should return an empty slice when nothing matches", func() {
			dispatches, err := s.Dispatch().List(ctx, store.ByStatus("unknown"))
			Expect(err).NotTo(HaveOccurred())
			Expect(dispatches).NotTo(BeNil())
			Expect(dispatches).To(BeEmpty())
		})

		It("should filter by mode", func() {
			dispatches, err := s.Dispatch().List(ctx, store.ByMode(models.DispatchModeCargo))
			Expect(err).NotTo(HaveOccurred())
			Expect(dispatches).To(HaveLen(2))
			for _, d := range dispatches {
				Expect(d.Mode).To(Equal(models.DispatchModeCargo))
			}
		})

		It("should filter by mode and status", func() {
			dispatches, err := s.Dispatch().List(ctx,
				store.ByMode(models.DispatchModeQueue),
				store.ByStatus(models.DispatchStatusFailed),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(dispatches).To(HaveLen(1))
			Expect(dispatches[0].Status).To(Equal(models.DispatchStatusFailed))
		})

		It("should filter by start time", func() {
			dispatches, err := s.Dispatch().List(ctx, store.StartedBetween(base.Add(2*time.Second), base.Add(4*time.Second)))
			Expect(err).NotTo(HaveOccurred())
			Expect(dispatches).To(HaveLen(2))
		})

		It("should leave a zero time bound open", func() {
			dispatches, err := s.Dispatch().List(ctx, store.StartedBetween(base.Add(3*time.Second), time.Time{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(dispatches).To(HaveLen(2))

			count, err := s.Dispatch().Count(ctx, store.StartedBetween(time.Time{}, base.Add(3*time.Second)))
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})

		It("should sort, limit and offset", func() {
			dispatches, err := s.Dispatch().List(ctx,
				store.WithSort([]store.SortParam{{Field: "size", Desc: true}}),
				store.WithLimit(2),
				store.WithOffset(0),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(dispatches).To(HaveLen(2))
			Expect(dispatches[0].Size).To(Equal(10))
			Expect(dispatches[1].Size).To(Equal(4))

			next, err := s.Dispatch().List(ctx,
				store.WithSort([]store.SortParam{{Field: "size", Desc: true}}),
				store.WithLimit(2),
				store.WithOffset(2),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(next).To(HaveLen(2))
			Expect(next[0].Size).To(Equal(1))
		})

		It("should return the most recent first by default", func() {
			dispatches, err := s.Dispatch().List(ctx, store.WithDefaultSort())
			Expect(err).NotTo(HaveOccurred())
			Expect(dispatches).To(HaveLen(4))
			Expect(dispatches[0].StartedAt).To(BeTemporally("==", base.Add(4*time.Second)))
		})

		It("should ignore unknown sort fields", func() {
			dispatches, err := s.Dispatch().List(ctx, store.WithSort([]store.SortParam{{Field: "bogus"}}))
			Expect(err).NotTo(HaveOccurred())
			Expect(dispatches).To(HaveLen(4))
		})
	})

	Context("Count and Summary", func() {
		BeforeEach(func() {
			seed(models.DispatchModeQueue, models.DispatchStatusSucceeded, 1, 0)
			seed(models.DispatchModeQueue, models.DispatchStatusSucceeded, 1, 0)
			seed(models.DispatchModeCargo, models.DispatchStatusFailed, 6, 0)
			seed(models.DispatchModeCargo, models.DispatchStatusSucceeded, 2, 0)
		})

		It("should count with filters", func() {
			count, err := s.Dispatch().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(4))

			count, err = s.Dispatch().Count(ctx, store.ByMode(models.DispatchModeQueue))
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})

		It("should group by mode and status", func() {
			summaries, err := s.Dispatch().Summary(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summaries).To(HaveLen(3))

			Expect(summaries[0].Mode).To(Equal(models.DispatchModeCargo))
			Expect(summaries[0].Status).To(Equal(models.DispatchStatusFailed))
			Expect(summaries[0].Items).To(Equal(6))
			Expect(summaries[0].AvgDuration).To(Equal(60 * time.Millisecond))

			Expect(summaries[2].Mode).To(Equal(models.DispatchModeQueue))
			Expect(summaries[2].Count).To(Equal(2))
			Expect(summaries[2].Items).To(Equal(2))
		})
	})

	Context("DeleteBefore", func() {
		It("should remove only older dispatches", func() {
			seed(models.DispatchModeQueue, models.DispatchStatusSucceeded, 1, -time.Hour)
			kept := seed(models.DispatchModeQueue, models.DispatchStatusSucceeded, 1, time.Hour)

			removed, err := s.Dispatch().DeleteBefore(ctx, base)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeEquivalentTo(1))

			dispatches, err := s.Dispatch().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(dispatches).To(HaveLen(1))
			Expect(dispatches[0].ID).To(Equal(kept.ID))
		})
	})
})
