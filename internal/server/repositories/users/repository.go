// Package users declares the server-side repository contract for accounts.
package users

import (
	"context"

	"github.com/zerotask/zerotask/internal/server/models"
)

type Repository interface {
	// Create inserts a user and fills in the generated id.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or
	// common.ErrNotFound when no such account exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
