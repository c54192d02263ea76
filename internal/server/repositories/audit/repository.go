// Package audit declares the server-side repository contract for per-user
// audit trails.
package audit

import (
	"context"

	"github.com/zerotask/zerotask/internal/server/models"
)

type Repository interface {
	// GetAllByUser returns the user's audit entries, newest first.
	GetAllByUser(ctx context.Context, userID string) ([]models.AuditEntry, error)

	// Insert appends one entry.
	Insert(ctx context.Context, entry models.AuditEntry) error

	// Prune deletes all but the newest keep entries of one user.
	Prune(ctx context.Context, userID string, keep int) error
}
