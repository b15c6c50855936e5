package cartstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte(`{"version":1,"items":[]}`)

	require.NoError(t, store.Save(ctx, "k1", data))

	got, err := store.Load(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestFileOverwrite(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k1", []byte("first")))
	require.NoError(t, store.Save(ctx, "k1", []byte("second")))

	got, err := store.Load(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestFileMissingKey(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileDeleteIdempotent(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "k1", []byte("x")))

	require.NoError(t, store.Delete(ctx, "k1"))
	require.NoError(t, store.Delete(ctx, "k1"))

	_, err = store.Load(ctx, "k1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileKeysAreIsolated(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "k1", []byte("one")))
	require.NoError(t, store.Save(ctx, "k2", []byte("two")))

	require.NoError(t, store.Delete(ctx, "k1"))

	got, err := store.Load(ctx, "k2")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}
