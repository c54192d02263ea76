package logs

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerotask/zerotask/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE logs (
  id        TEXT PRIMARY KEY,
  action    TEXT NOT NULL,
  timestamp INTEGER NOT NULL,
  details   TEXT NOT NULL,
  user_id   TEXT
);`)
	require.NoError(t, err)
	return db
}

func entry(id string, ts int64) models.AuditEntry {
	return models.AuditEntry{ID: id, Action: models.ActionCreate, Timestamp: ts, Details: "d"}
}

func TestInsertAndGetAll_NewestFirst(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, entry("a", 1)))
	require.NoError(t, r.Insert(ctx, entry("b", 3)))
	require.NoError(t, r.Insert(ctx, entry("c", 2)))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, "a", got[2].ID)
}

func TestGetAll_SameTimestamp_LastInsertedFirst(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, entry("first", 5)))
	require.NoError(t, r.Insert(ctx, entry("second", 5)))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].ID)
}

func TestInsert_UserIDRoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := entry("a", 1)
	e.UserID = "u-1"
	require.NoError(t, r.Insert(ctx, e))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u-1", got[0].UserID)
}

func TestInsert_EmptyUserID_StoredAsNull(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, entry("a", 1)))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM logs WHERE user_id IS NULL`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestPrune_KeepsNewest(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, r.Insert(ctx, entry(fmt.Sprintf("e%02d", i), int64(i))))
	}
	require.NoError(t, r.Prune(ctx, 3))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "e09", got[0].ID)
	assert.Equal(t, "e08", got[1].ID)
	assert.Equal(t, "e07", got[2].ID)
}

func TestPrune_UnderLimit_NoOp(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, entry("a", 1)))
	require.NoError(t, r.Prune(ctx, 50))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestClear_EmptiesLog(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, entry("a", 1)))
	require.NoError(t, r.Clear(ctx))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
