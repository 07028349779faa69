package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStorage(t *testing.T) *SQLiteTokenStorage {
	t.Helper()
	db, err := InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteTokenStorage(db)
}

func storages(t *testing.T) map[string]TokenStorage {
	return map[string]TokenStorage{
		"sqlite": newSQLiteStorage(t),
		"memory": NewMemoryTokenStorage(),
	}
}

func TestTokenStorage_LoadEmpty(t *testing.T) {
	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.True(t, got.Empty())
			assert.Equal(t, Tokens{}, got)
		})
	}
}

func TestTokenStorage_SaveLoadClear(t *testing.T) {
	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := Tokens{Access: "a1", Refresh: "r1", SessionID: "s1"}

			require.NoError(t, s.Save(ctx, want))
			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			require.NoError(t, s.Save(ctx, Tokens{Access: "a2"}))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, Tokens{Access: "a2"}, got)

			require.NoError(t, s.Clear(ctx))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.True(t, got.Empty())
		})
	}
}

func TestTokenStorage_CompareAndSwap(t *testing.T) {
	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			old := Tokens{Access: "a1", Refresh: "r1", SessionID: "s1"}
			next := Tokens{Access: "a2", Refresh: "r2", SessionID: "s1"}
			require.NoError(t, s.Save(ctx, old))

			ok, err := s.CompareAndSwap(ctx, old, next)
			require.NoError(t, err)
			assert.True(t, ok)

			// old no longer matches
			ok, err = s.CompareAndSwap(ctx, old, Tokens{Access: "a3"})
			require.NoError(t, err)
			assert.False(t, ok)

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, next, got)
		})
	}
}

func TestTokenStorage_CompareAndSwapAfterClear(t *testing.T) {
	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			old := Tokens{Access: "a1", Refresh: "r1", SessionID: "s1"}
			require.NoError(t, s.Save(ctx, old))
			require.NoError(t, s.Clear(ctx))

			ok, err := s.CompareAndSwap(ctx, old, Tokens{Access: "a2", Refresh: "r2", SessionID: "s1"})
			require.NoError(t, err)
			assert.False(t, ok)

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.True(t, got.Empty())
		})
	}
}

func TestSQLiteTokenStorage_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	db, err := InitDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteTokenStorage(db).Save(ctx, Tokens{Access: "a", Refresh: "r", SessionID: "s"}))
	require.NoError(t, db.Close())

	db, err = InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewSQLiteTokenStorage(db).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Tokens{Access: "a", Refresh: "r", SessionID: "s"}, got)
}
