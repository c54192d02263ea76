package storage

import (
	"context"
	"fmt"

	"github.com/zerotask/zerotask/internal/client/legacy"
	"github.com/zerotask/zerotask/internal/client/repositories/metadata"
	"github.com/zerotask/zerotask/internal/common"
	"github.com/zerotask/zerotask/internal/logging"
)

// MigrateOnce copies tasks, audit log and theme preference from the legacy
// flat-file store into the current backend, exactly once.
//
// Idempotence is guarded by the migration_complete metadata flag: when the
// flag is set the function returns immediately. An absent or empty legacy
// store completes as a no-op (the flag is still set, so the check never runs
// again). On failure the flag stays unset and the legacy files are left
// untouched, so the next start retries.
func MigrateOnce(ctx context.Context, log logging.Logger, src *legacy.Store, dst *Backend) error {
	done, err := dst.Metadata.Get(ctx, metadata.KeyMigrationComplete)
	if err != nil {
		return fmt.Errorf("%w: checking migration flag: %v", common.ErrMigration, err)
	}
	if len(done) > 0 {
		return nil
	}

	if !src.Exists() {
		return finish(ctx, dst)
	}

	log.Info(ctx, "migrating legacy store")

	tasks, err := src.Tasks()
	if err != nil {
		return fmt.Errorf("%w: reading legacy tasks: %v", common.ErrMigration, err)
	}
	for _, t := range tasks {
		if err := dst.Tasks.Upsert(ctx, t); err != nil {
			return fmt.Errorf("%w: copying task %s: %v", common.ErrMigration, t.ID, err)
		}
	}

	logsCopied, err := src.Logs()
	if err != nil {
		return fmt.Errorf("%w: reading legacy logs: %v", common.ErrMigration, err)
	}
	for _, e := range logsCopied {
		if err := dst.Logs.Insert(ctx, e); err != nil {
			return fmt.Errorf("%w: copying log entry %s: %v", common.ErrMigration, e.ID, err)
		}
	}

	theme, err := src.Theme()
	if err != nil {
		return fmt.Errorf("%w: reading legacy theme: %v", common.ErrMigration, err)
	}
	if theme != "" {
		if err := dst.Metadata.Set(ctx, metadata.KeyTheme, []byte(theme)); err != nil {
			return fmt.Errorf("%w: copying theme: %v", common.ErrMigration, err)
		}
	}

	log.Info(ctx, "legacy store migrated", "tasks", len(tasks), "logs", len(logsCopied))
	return finish(ctx, dst)
}

func finish(ctx context.Context, dst *Backend) error {
	if err := dst.Metadata.Set(ctx, metadata.KeyMigrationComplete, []byte("1")); err != nil {
		return fmt.Errorf("%w: setting migration flag: %v", common.ErrMigration, err)
	}
	return nil
}
