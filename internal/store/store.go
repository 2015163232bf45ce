package store

import (
	"context"
	"database/sql"

	"github.com/kubev2v/taskrunner/internal/store/migrations"
)

// Store provides access to all storage repositories.
type Store struct {
	db       *sql.DB
	dispatch *DispatchStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		dispatch: NewDispatchStore(NewQueryInterceptor(db)),
	}
}

// Migrate brings the schema up to date.
func (s *Store) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, s.db)
}

func (s *Store) Dispatch() *DispatchStore {
	return s.dispatch
}

func (s *Store) Close() error {
	return s.db.Close()
}
