package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "supabase.mock.db", `{"users":[]}`))
	value, found, err := store.Get(ctx, "supabase.mock.db")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"users":[]}`, value)

	require.NoError(t, store.Set(ctx, "supabase.mock.db", "other"))
	value, found, err = store.Get(ctx, "supabase.mock.db")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "other", value)

	require.NoError(t, store.Remove(ctx, "supabase.mock.db"))
	_, found, err = store.Get(ctx, "supabase.mock.db")
	require.NoError(t, err)
	assert.False(t, found)

	// removing an absent key is fine
	require.NoError(t, store.Remove(ctx, "supabase.mock.db"))

	require.NoError(t, store.Close())
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	// keys contain dots and would be unsafe as raw file names
	require.NoError(t, store.Set(ctx, "supabase.session", `{"access_token":"mock_abc"}`))
	value, found, err := store.Get(ctx, "supabase.session")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"access_token":"mock_abc"}`, value)

	require.NoError(t, store.Remove(ctx, "supabase.session"))
	_, found, err = store.Get(ctx, "supabase.session")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Remove(ctx, "supabase.session"))
	require.NoError(t, store.Close())
}

func TestFileStore_missingRoot(t *testing.T) {
	_, err := NewFileStore("")
	require.Error(t, err)
}
