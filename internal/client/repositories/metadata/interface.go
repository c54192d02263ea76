package metadata

import (
	"context"
)

// Repository is a small key/value store for client bookkeeping: the
// migration-complete flag, local auth metadata, and the theme preference.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Well-known metadata keys.
const (
	KeyMigrationComplete = "migration_complete"
	KeyAuthMetadata      = "auth_metadata"
	KeyTheme             = "theme"
)
