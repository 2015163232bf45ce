// Package store implements the data access layer for the taskrunner.
//
// This package keeps the dispatch journal in DuckDB: one row per worker
// invocation against the target. Queued items are never persisted, only
// what a worker actually sent and how it ended.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                         DispatchStore                           │
//	│                               ▼                                 │
//	│                  QueryInterceptor (debug logs)                  │
//	│                               ▼                                 │
//	│                  dispatches, schema_migrations                  │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// Created by the embedded migrations (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  dispatches        │  Worker invocations (mode, size, outcome)   │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Initialization Flow
//
//	NewDB(path)             → *sql.DB on the duckdb driver
//	NewStore(db)            → sub-stores wrapped with QueryInterceptor
//	Store.Migrate(ctx)      → migrations.Run()
//
// # DispatchStore
//
// Schema:
//
//	dispatches (
//	    id VARCHAR PRIMARY KEY,          -- uuid
//	    mode VARCHAR NOT NULL,           -- queue | cargo
//	    size INTEGER NOT NULL,           -- items given to the worker
//	    status VARCHAR NOT NULL,         -- succeeded | failed
//	    error_message VARCHAR NOT NULL,
//	    started_at TIMESTAMP NOT NULL,   -- UTC
//	    duration_ms BIGINT NOT NULL
//	)
//
// Methods:
//   - Create(ctx, d) → error
//   - Get(ctx, id) → *models.Dispatch, ResourceNotFoundError when missing
//   - List(ctx, opts...) / Count(ctx, opts...)
//   - Summary(ctx, opts...) → counts grouped by mode and status
//   - DeleteBefore(ctx, t) → rows removed
//
// List Options:
//
// List, Count and Summary take ListOption functions that modify a
// squirrel.SelectBuilder:
//
//	dispatches, err := store.Dispatch().List(ctx,
//	    store.ByMode(models.DispatchModeCargo),
//	    store.ByStatus(models.DispatchStatusFailed),
//	    store.WithSort([]store.SortParam{{Field: "startedAt", Desc: true}}),
//	    store.WithLimit(50),
//	    store.WithOffset(0),
//	)
//
// Sort Field Mapping:
//
//	┌──────────────┬─────────────────┐
//	│  API Field   │  Column         │
//	├──────────────┼─────────────────┤
//	│  mode        │  mode           │
//	│  size        │  size           │
//	│  status      │  status         │
//	│  startedAt   │  started_at     │
//	│  duration    │  duration_ms    │
//	└──────────────┴─────────────────┘
//
// WithSort always appends id as tie-breaker. WithDefaultSort orders by
// started_at descending.
package store
