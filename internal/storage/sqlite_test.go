package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "hub.db"))
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get(ctx, "studentHubData")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Put(ctx, "studentHubData", []byte(`[{"id":"1"}]`)))
	v, ok, err := kv.Get(ctx, "studentHubData")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, string(v))

	// Overwrite replaces the prior blob.
	require.NoError(t, kv.Put(ctx, "studentHubData", []byte(`[]`)))
	v, ok, err = kv.Get(ctx, "studentHubData")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(v))

	require.NoError(t, kv.Delete(ctx, "studentHubData"))
	_, ok, err = kv.Get(ctx, "studentHubData")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	require.NoError(t, kv.Delete(ctx, "studentHubData"))
}

func TestSQLiteKVPersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hub.db")

	kv, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "k", []byte("v")))
	require.NoError(t, kv.Close())

	kv, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer kv.Close()
	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(v))
}

func TestOpenSelectsBackendByDSN(t *testing.T) {
	ctx := context.Background()
	kv, err := Open(ctx, filepath.Join(t.TempDir(), "hub.db"))
	require.NoError(t, err)
	require.NoError(t, kv.Close())
}
