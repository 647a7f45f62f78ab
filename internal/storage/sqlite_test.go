package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "budget", []byte(`{"monthlyLimit":1000}`)))

	blob, ok, err := kv.Get(ctx, "budget")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"monthlyLimit":1000}`, string(blob))

	// Overwrite replaces in place.
	require.NoError(t, kv.Set(ctx, "budget", []byte(`{"monthlyLimit":2000}`)))
	blob, _, err = kv.Get(ctx, "budget")
	require.NoError(t, err)
	assert.JSONEq(t, `{"monthlyLimit":2000}`, string(blob))
}

func TestSQLiteKVDelete(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", []byte("v")))
	require.NoError(t, kv.Delete(ctx, "k"))

	_, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is fine.
	require.NoError(t, kv.Delete(ctx, "k"))
}

func TestSQLiteKVValidation(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	_, _, err := kv.Get(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyString)

	assert.ErrorIs(t, kv.Set(ctx, " ", []byte("v")), ErrEmptyString)

	_, err = NewSQLiteKV("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	kv, err := NewSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "k", []byte("v")))
	require.NoError(t, kv.Close())

	kv, err = NewSQLiteKV(path)
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()

	blob, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), blob)
}
