package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kubev2v/taskrunner/internal/models"
	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
)

// DispatchStore is the journal of worker invocations against the target.
type DispatchStore struct {
	db QueryInterceptor
}

func NewDispatchStore(db QueryInterceptor) *DispatchStore {
	return &DispatchStore{db: db}
}

// Create records d. A zero ID is replaced by a new random one.
func (s *DispatchStore) Create(ctx context.Context, d *models.Dispatch) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx, queryInsertDispatch,
		d.ID.String(),
		string(d.Mode),
		d.Size,
		string(d.Status),
		d.Error,
		d.StartedAt.UTC(),
		d.Duration.Milliseconds(),
	)
	return err
}

func (s *DispatchStore) Get(ctx context.Context, id uuid.UUID) (*models.Dispatch, error) {
	d, err := scanDispatch(s.db.QueryRowContext(ctx, queryGetDispatch, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewDispatchNotFoundError(id.String())
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DispatchStore) List(ctx context.Context, opts ...ListOption) ([]models.Dispatch, error) {
	builder := sq.Select("id", "mode", "size", "status", "error_message", "started_at", "duration_ms").
		From("dispatches")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dispatches := []models.Dispatch{}
	for rows.Next() {
		d, err := scanDispatch(rows)
		if err != nil {
			return nil, err
		}
		dispatches = append(dispatches, *d)
	}

	return dispatches, rows.Err()
}

func (s *DispatchStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("dispatches")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Summary groups dispatches by mode and status.
func (s *DispatchStore) Summary(ctx context.Context, opts ...ListOption) ([]models.DispatchSummary, error) {
	builder := sq.Select(
		"mode",
		"status",
		"COUNT(*)",
		"CAST(COALESCE(SUM(size), 0) AS BIGINT)",
		"COALESCE(CAST(AVG(duration_ms) AS BIGINT), 0)",
	).From("dispatches").
		GroupBy("mode", "status").
		OrderBy("mode", "status")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.DispatchSummary
	for rows.Next() {
		var (
			sum          models.DispatchSummary
			mode, status string
			avgMs        int64
		)
		if err := rows.Scan(&mode, &status, &sum.Count, &sum.Items, &avgMs); err != nil {
			return nil, err
		}
		sum.Mode = models.DispatchMode(mode)
		sum.Status = models.DispatchStatus(status)
		sum.AvgDuration = time.Duration(avgMs) * time.Millisecond
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// DeleteBefore removes dispatches started before t and returns how many were removed.
func (s *DispatchStore) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, queryDeleteDispatchesBefore, t.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDispatch(row rowScanner) (*models.Dispatch, error) {
	var (
		d                models.Dispatch
		id, mode, status string
		durationMs       int64
	)
	if err := row.Scan(&id, &mode, &d.Size, &status, &d.Error, &d.StartedAt, &durationMs); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	d.ID = parsed
	d.Mode = models.DispatchMode(mode)
	d.Status = models.DispatchStatus(status)
	d.Duration = time.Duration(durationMs) * time.Millisecond
	return &d, nil
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByMode(modes ...models.DispatchMode) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(modes) == 0 {
			return b
		}
		values := make([]string, len(modes))
		for i, m := range modes {
			values[i] = string(m)
		}
		return b.Where(sq.Eq{"mode": values})
	}
}

func ByStatus(statuses ...models.DispatchStatus) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(statuses) == 0 {
			return b
		}
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		return b.Where(sq.Eq{"status": values})
	}
}

// StartedBetween keeps dispatches started in [from, to). A zero bound is
// left open.
func StartedBetween(from, to time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if !from.IsZero() {
			b = b.Where(sq.GtOrEq{"started_at": from.UTC()})
		}
		if !to.IsZero() {
			b = b.Where(sq.Lt{"started_at": to.UTC()})
		}
		return b
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

type SortParam struct {
	Field string
	Desc  bool
}

var apiFieldToDBColumn = map[string]string{
	"mode":      "mode",
	"size":      "size",
	"status":    "status",
	"startedAt": "started_at",
	"duration":  "duration_ms",
}

func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("started_at DESC", "id")
	}
}

func WithSort(sorts []SortParam) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		var orderClauses []string
		for _, s := range sorts {
			col, ok := apiFieldToDBColumn[s.Field]
			if !ok {
				continue
			}
			if s.Desc {
				orderClauses = append(orderClauses, col+" DESC")
			} else {
				orderClauses = append(orderClauses, col+" ASC")
			}
		}
		orderClauses = append(orderClauses, "id")
		return b.OrderBy(orderClauses...)
	}
}
