package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/locallink"
	"github.com/fwojciec/locallink/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_GetMissing(t *testing.T) {
	t.Parallel()
	s := fs.New(t.TempDir())
	_, err := s.Get(context.Background(), "history")
	assert.ErrorIs(t, err, locallink.ErrSlotEmpty)
}

func TestSlot_PutThenGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := fs.New(t.TempDir())

	require.NoError(t, s.Put(ctx, "history", []byte(`[1]`)))
	got, err := s.Get(ctx, "history")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
}

func TestSlot_PutOverwrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := fs.New(t.TempDir())

	require.NoError(t, s.Put(ctx, "history", []byte(`["a","b","c"]`)))
	require.NoError(t, s.Put(ctx, "history", []byte(`["d"]`)))
	got, err := s.Get(ctx, "history")
	require.NoError(t, err)
	assert.Equal(t, `["d"]`, string(got))
}

func TestSlot_PutCreatesDirectories(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	s := fs.New(dir)

	require.NoError(t, s.Put(context.Background(), "k", []byte("v")))
	_, err := os.Stat(s.Path("k"))
	assert.NoError(t, err)
}

func TestSlot_PutLeavesNoTempFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s := fs.New(dir)

	require.NoError(t, s.Put(context.Background(), "k", []byte("v")))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestSlot_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := fs.New(t.TempDir())

	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, locallink.ErrSlotEmpty)

	// Deleting again is fine.
	assert.NoError(t, s.Delete(ctx, "k"))
}

func TestSlot_InvalidKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := fs.New(t.TempDir())
	for _, key := range []string{"", ".", "..", "a/b", `a\b`, "../escape"} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, s.Put(ctx, key, []byte("v")))
			_, err := s.Get(ctx, key)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, locallink.ErrSlotEmpty)
			assert.Error(t, s.Delete(ctx, key))
		})
	}
}
