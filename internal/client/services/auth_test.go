package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerotask/zerotask/internal/client/storage"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db, err := storage.OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewAuthService(storage.NewSQLiteBackend(db).Metadata)
}

func TestAuth_NotSetupInitially(t *testing.T) {
	a := newAuthService(t)
	ctx := context.Background()

	ok, err := a.IsSetup(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.Login(ctx, "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuth_SetupThenLogin(t *testing.T) {
	a := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, a.Setup(ctx, "1234"))

	ok, err := a.IsSetup(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Login(ctx, "1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuth_WrongPasscode(t *testing.T) {
	a := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, a.Setup(ctx, "1234"))

	ok, err := a.Login(ctx, "4321")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuth_ReSetupReplacesPasscode(t *testing.T) {
	a := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, a.Setup(ctx, "old"))
	require.NoError(t, a.Setup(ctx, "new"))

	ok, err := a.Login(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.Login(ctx, "new")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuth_ClearLocalData(t *testing.T) {
	a := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, a.Setup(ctx, "1234"))
	require.NoError(t, a.ClearLocalData(ctx))

	ok, err := a.IsSetup(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
