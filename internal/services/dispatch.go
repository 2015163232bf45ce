package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kubev2v/taskrunner/internal/models"
	"github.com/kubev2v/taskrunner/internal/store"
)

// DispatchService reads the dispatch journal.
type DispatchService struct {
	store *store.Store
}

func NewDispatchService(st *store.Store) *DispatchService {
	return &DispatchService{store: st}
}

// DispatchListParams filters and pages the journal. From and To bound
// StartedAt to [From, To); a zero bound is open.
type DispatchListParams struct {
	Modes    []models.DispatchMode
	Statuses []models.DispatchStatus
	Sort     []store.SortParam
	From     time.Time
	To       time.Time
	Limit    uint64
	Offset   uint64
}

type DispatchListResult struct {
	Dispatches []models.Dispatch
	Total      int
}

func (s *DispatchService) List(ctx context.Context, params DispatchListParams) (*DispatchListResult, error) {
	filters := s.buildFilters(params)

	opts := append([]store.ListOption{}, filters...)
	if len(params.Sort) > 0 {
		opts = append(opts, store.WithSort(params.Sort))
	} else {
		opts = append(opts, store.WithDefaultSort())
	}
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	dispatches, err := s.store.Dispatch().List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	// Get total count without pagination
	total, err := s.store.Dispatch().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	return &DispatchListResult{
		Dispatches: dispatches,
		Total:      total,
	}, nil
}

func (s *DispatchService) Get(ctx context.Context, id uuid.UUID) (*models.Dispatch, error) {
	return s.store.Dispatch().Get(ctx, id)
}

func (s *DispatchService) Summary(ctx context.Context) ([]models.DispatchSummary, error) {
	return s.store.Dispatch().Summary(ctx)
}

func (s *DispatchService) buildFilters(params DispatchListParams) []store.ListOption {
	var opts []store.ListOption

	if len(params.Modes) > 0 {
		opts = append(opts, store.ByMode(params.Modes...))
	}
	if len(params.Statuses) > 0 {
		opts = append(opts, store.ByStatus(params.Statuses...))
	}
	if !params.From.IsZero() || !params.To.IsZero() {
		opts = append(opts, store.StartedBetween(params.From, params.To))
	}

	return opts
}
