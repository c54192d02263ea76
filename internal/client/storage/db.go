// Package storage selects and wires the client's backing store: an embedded
// SQLite database, or the remote REST API for the task collection. It also
// owns the one-time migration from the legacy flat-file store.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/zerotask/zerotask/internal/client/migrations"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// OpenDatabase opens the local SQLite database at dsn and applies pending
// goose migrations. The caller owns the returned handle and must Close it.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
