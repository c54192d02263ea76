// Package tasks declares the server-side repository contract for the task
// collection, scoped per owning user.
package tasks

import (
	"context"

	"github.com/zerotask/zerotask/internal/server/models"
)

// Repository defines storage operations over a user's tasks.
type Repository interface {
	// GetAllByUser returns the user's tasks, newest first.
	GetAllByUser(ctx context.Context, userID string) ([]models.Task, error)

	// GetByID returns one task. Implementations return common.ErrNotFound
	// when the task is absent or owned by someone else.
	GetByID(ctx context.Context, userID, id string) (*models.Task, error)

	// Create inserts a task. ID and CreatedAt must already be set.
	Create(ctx context.Context, task *models.Task) error

	// Update replaces title, description, and status of an existing task.
	// It returns common.ErrNotFound when no row matches.
	Update(ctx context.Context, task *models.Task) error

	// DeleteByID removes one task, returning common.ErrNotFound when no
	// row matches.
	DeleteByID(ctx context.Context, userID, id string) error

	// Clear removes every task the user owns.
	Clear(ctx context.Context, userID string) error
}
