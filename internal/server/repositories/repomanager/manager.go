package repomanager

import (
	"context"
	"database/sql"

	"github.com/zerotask/zerotask/internal/dbx"
	"github.com/zerotask/zerotask/internal/server/repositories/audit"
	"github.com/zerotask/zerotask/internal/server/repositories/refreshtokens"
	"github.com/zerotask/zerotask/internal/server/repositories/tasks"
	"github.com/zerotask/zerotask/internal/server/repositories/users"
)

// RepositoryManager vends per-entity repositories bound to a DBTX, so
// services can run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Audit(db dbx.DBTX) audit.Repository
}
