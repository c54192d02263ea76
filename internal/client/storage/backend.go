package storage

import (
	"database/sql"

	"github.com/zerotask/zerotask/internal/client/api"
	"github.com/zerotask/zerotask/internal/client/repositories/logs"
	"github.com/zerotask/zerotask/internal/client/repositories/metadata"
	"github.com/zerotask/zerotask/internal/client/repositories/tasks"
)

// Backend bundles the per-collection stores behind one construction point.
// The variant is fixed at construction: either every collection lives in the
// local SQLite database, or the task collection is delegated to the remote
// API while audit log and metadata stay local (they are client bookkeeping,
// not shared state).
type Backend struct {
	Tasks    tasks.Repository
	Logs     logs.Repository
	Metadata metadata.Repository
}

// NewSQLiteBackend stores every collection in db.
func NewSQLiteBackend(db *sql.DB) *Backend {
	return &Backend{
		Tasks:    tasks.NewSQLiteRepository(db),
		Logs:     logs.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
	}
}

// NewRemoteBackend delegates the task collection to the server reached via
// client and keeps log/metadata collections in the local db.
func NewRemoteBackend(client *api.Client, db *sql.DB) *Backend {
	return &Backend{
		Tasks:    NewRemoteTaskRepository(client),
		Logs:     logs.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
	}
}
