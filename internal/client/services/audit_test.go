package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/client/storage"
)

func newRecorder(t *testing.T) (*AuditRecorder, *storage.Backend) {
	t.Helper()
	db, err := storage.OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	backend := storage.NewSQLiteBackend(db)
	return NewAuditRecorder(backend.Logs, testLogger()), backend
}

func TestAppend_NewestFirst(t *testing.T) {
	r, _ := newRecorder(t)
	ctx := context.Background()

	r.Append(ctx, models.ActionCreate, "first")
	r.Append(ctx, models.ActionToggle, "second")

	entries := r.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Details)
	assert.Equal(t, "first", entries[1].Details)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotZero(t, entries[0].Timestamp)
}

func TestAppend_EvictsOldestBeyondBound(t *testing.T) {
	r, _ := newRecorder(t)
	ctx := context.Background()

	for i := 0; i < MaxLogEntries+1; i++ {
		r.Append(ctx, models.ActionCreate, fmt.Sprintf("entry %d", i))
	}

	entries := r.List()
	require.Len(t, entries, MaxLogEntries)
	assert.Equal(t, fmt.Sprintf("entry %d", MaxLogEntries), entries[0].Details)
	// entry 0 is the oldest and the one evicted
	assert.Equal(t, "entry 1", entries[len(entries)-1].Details)
}

func TestAppend_PersistsAndPrunesStore(t *testing.T) {
	r, backend := newRecorder(t)
	ctx := context.Background()

	for i := 0; i < MaxLogEntries+5; i++ {
		r.Append(ctx, models.ActionCreate, fmt.Sprintf("entry %d", i))
	}

	persisted, err := backend.Logs.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, MaxLogEntries)
}

func TestAppend_SurvivesPersistenceFailure(t *testing.T) {
	r, _ := newRecorder(t)
	r.repo = failingLogRepo{}

	entry := r.Append(context.Background(), models.ActionClear, "still recorded")
	assert.Equal(t, models.ActionClear, entry.Action)
	assert.Len(t, r.List(), 1)
}

func TestAppend_StampsUser(t *testing.T) {
	r, _ := newRecorder(t)
	ctx := context.Background()

	r.Append(ctx, models.ActionCreate, "anonymous")
	r.SetUser("u-1")
	r.Append(ctx, models.ActionAuth, "logged in")

	entries := r.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "u-1", entries[0].UserID)
	assert.Empty(t, entries[1].UserID)
}

func TestLoad_HydratesAndBounds(t *testing.T) {
	r, backend := newRecorder(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		e := models.NewAuditEntry(models.ActionCreate, fmt.Sprintf("persisted %d", i))
		e.Timestamp = int64(i + 1)
		require.NoError(t, backend.Logs.Insert(ctx, e))
	}

	require.NoError(t, r.Load(ctx))
	entries := r.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "persisted 2", entries[0].Details)
}

func TestClear_EmptiesLogAndStore(t *testing.T) {
	r, backend := newRecorder(t)
	ctx := context.Background()

	r.Append(ctx, models.ActionCreate, "gone")
	require.NoError(t, r.Clear(ctx))

	assert.Empty(t, r.List())
	persisted, err := backend.Logs.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

type failingLogRepo struct{}

func (failingLogRepo) GetAll(context.Context) ([]models.AuditEntry, error) {
	return nil, errDiskDead
}
func (failingLogRepo) Insert(context.Context, models.AuditEntry) error { return errDiskDead }
func (failingLogRepo) Prune(context.Context, int) error                { return errDiskDead }
func (failingLogRepo) Clear(context.Context) error                     { return errDiskDead }
