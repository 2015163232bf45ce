package store

// Dispatch queries
const (
	queryInsertDispatch = `
		INSERT INTO dispatches (id, mode, size, status, error_message, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	queryGetDispatch = `
		SELECT id, mode, size, status, error_message, started_at, duration_ms
		FROM dispatches WHERE id = ?`

	queryDeleteDispatchesBefore = `DELETE FROM dispatches WHERE started_at < ?`
)
