package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestFileStore_SetGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "room:0xabc", []byte(`{"thc":1.5}`)))

	got, err := s.Get(ctx, "room:0xabc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"thc":1.5}`), got)
}

func TestFileStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "room:0xmissing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStore_Overwrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("one")))
	require.NoError(t, s.Set(ctx, "k", []byte("two")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}

func TestFileStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.NoError(t, s.Delete(ctx, "k"), "deleting a missing key is not an error")
}

func TestFileStore_KeysByPrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "room:0xaaa", []byte("1")))
	require.NoError(t, s.Set(ctx, "room:0xbbb", []byte("2")))
	require.NoError(t, s.Set(ctx, "leaderboard", []byte("3")))

	keys, err := s.Keys(ctx, "room:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"room:0xaaa", "room:0xbbb"}, keys)

	all, err := s.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFileStore_KeysIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "room:0xaaa", []byte("1")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hi"), 0644))

	keys, err := s.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"room:0xaaa"}, keys)
}

func TestFileStore_UnsafeKeyCharacters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	key := "room:0xAbC/../../etc"
	require.NoError(t, s.Set(ctx, key, []byte("safe")))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("safe"), got)

	keys, err := s.Keys(ctx, "room:")
	require.NoError(t, err)
	assert.Equal(t, []string{key}, keys)
}
