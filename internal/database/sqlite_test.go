package database

import (
	"context"
	"path/filepath"
	"testing"

	"playground/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteGetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	_, err := s.GetItem(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.SetItem(ctx, "k", "v1"))
	require.NoError(t, s.SetItem(ctx, "k", "v2"))

	v, err := s.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	require.NoError(t, s.RemoveItem(ctx, "k"))
	_, err = s.GetItem(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	s, err := InitDB(path)
	require.NoError(t, err)
	require.NoError(t, s.SetItem(ctx, "thesisFeedback", `{"post-1":{}}`))
	require.NoError(t, s.Close())

	s, err = InitDB(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.GetItem(ctx, "thesisFeedback")
	require.NoError(t, err)
	assert.Equal(t, `{"post-1":{}}`, v)
}

func TestSQLiteClosedIsUnavailable(t *testing.T) {
	ctx := context.Background()
	s, err := InitDB(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.GetItem(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrUnavailable)
	assert.ErrorIs(t, s.SetItem(ctx, "k", "v"), storage.ErrUnavailable)
}
