package logs

import (
	"context"

	"github.com/zerotask/zerotask/internal/client/models"
)

// Repository persists the audit log. The log is append-only: entries are
// inserted, pruned from the old end, or wiped wholesale — never updated.
type Repository interface {
	// GetAll returns entries newest first.
	GetAll(ctx context.Context) ([]models.AuditEntry, error)

	// Insert appends an entry.
	Insert(ctx context.Context, entry models.AuditEntry) error

	// Prune drops everything except the keep most-recent entries.
	Prune(ctx context.Context, keep int) error

	// Clear empties the log.
	Clear(ctx context.Context) error
}
