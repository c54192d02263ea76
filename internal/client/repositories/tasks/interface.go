package tasks

import (
	"context"

	"github.com/zerotask/zerotask/internal/client/models"
)

// Repository describes CRUD operations over the local tasks collection.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// GetAll returns every task ordered by creation time, newest first.
	GetAll(ctx context.Context) ([]models.Task, error)

	// Upsert inserts a new task or updates an existing one by id.
	Upsert(ctx context.Context, task models.Task) error

	// DeleteByID removes a task. Returns common.ErrNotFound when the id
	// is unknown.
	DeleteByID(ctx context.Context, id string) error

	// Clear removes every task.
	Clear(ctx context.Context) error
}
