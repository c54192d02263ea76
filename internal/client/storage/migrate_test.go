package storage

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerotask/zerotask/internal/client/legacy"
	"github.com/zerotask/zerotask/internal/client/repositories/metadata"
	"github.com/zerotask/zerotask/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func writeLegacy(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestOpenDatabase_AppliesMigrations(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"tasks", "logs", "metadata"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
	}
}

func TestMigrateOnce_CopiesLegacyData(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	dst := NewSQLiteBackend(db)

	dir := t.TempDir()
	writeLegacy(t, dir, legacy.TasksFile,
		`[{"id":"t1","title":"Buy milk","description":"","status":"PENDING","createdAt":100},
		  {"id":"t2","title":"Call mom","description":"","status":"COMPLETED","createdAt":200}]`)
	writeLegacy(t, dir, legacy.LogsFile,
		`[{"id":"e1","action":"CREATE","timestamp":5,"details":"Added task: Buy milk"}]`)
	writeLegacy(t, dir, legacy.ThemeFile, "dark")

	require.NoError(t, MigrateOnce(ctx, testLogger(), legacy.NewStore(dir), dst))

	tasks, err := dst.Tasks.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	logEntries, err := dst.Logs.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, logEntries, 1)

	theme, err := dst.Metadata.Get(ctx, metadata.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, []byte("dark"), theme)

	flag, err := dst.Metadata.Get(ctx, metadata.KeyMigrationComplete)
	require.NoError(t, err)
	assert.NotEmpty(t, flag)
}

func TestMigrateOnce_SecondRunCopiesNothing(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	dst := NewSQLiteBackend(db)

	dir := t.TempDir()
	writeLegacy(t, dir, legacy.TasksFile,
		`[{"id":"t1","title":"once","description":"","status":"PENDING","createdAt":1}]`)

	src := legacy.NewStore(dir)
	require.NoError(t, MigrateOnce(ctx, testLogger(), src, dst))

	// The source grows after the first run; a second run must ignore it.
	writeLegacy(t, dir, legacy.TasksFile,
		`[{"id":"t1","title":"once","description":"","status":"PENDING","createdAt":1},
		  {"id":"t2","title":"again","description":"","status":"PENDING","createdAt":2}]`)
	require.NoError(t, MigrateOnce(ctx, testLogger(), src, dst))

	tasks, err := dst.Tasks.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestMigrateOnce_EmptyLegacyStore_SetsFlag(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	dst := NewSQLiteBackend(db)

	require.NoError(t, MigrateOnce(ctx, testLogger(), legacy.NewStore(t.TempDir()), dst))

	flag, err := dst.Metadata.Get(ctx, metadata.KeyMigrationComplete)
	require.NoError(t, err)
	assert.NotEmpty(t, flag)
}

func TestMigrateOnce_MalformedLegacyData_LeavesFlagUnset(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	dst := NewSQLiteBackend(db)

	dir := t.TempDir()
	writeLegacy(t, dir, legacy.TasksFile, `{broken`)

	err := MigrateOnce(ctx, testLogger(), legacy.NewStore(dir), dst)
	require.Error(t, err)

	flag, ferr := dst.Metadata.Get(ctx, metadata.KeyMigrationComplete)
	require.NoError(t, ferr)
	assert.Empty(t, flag, "failed migration must stay retryable")
}
