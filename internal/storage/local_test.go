package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), URLPrefix: "/uploads/"})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	n, err := s.Save(ctx, "image/a.txt", strings.NewReader("hello"), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	info, err := s.Stat(ctx, "image/a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
	assert.WithinDuration(t, time.Now(), info.ModTime, time.Minute)

	f, err := s.Open(ctx, "image/a.txt")
	require.NoError(t, err)
	data, _ := io.ReadAll(f)
	f.Close()
	assert.Equal(t, "hello", string(data))

	assert.Equal(t, "/uploads/image/a.txt", s.GetURL("image/a.txt"))

	require.NoError(t, s.Delete(ctx, "image/a.txt"))
	require.NoError(t, s.Delete(ctx, "image/a.txt"), "deleting a missing file is not an error")

	_, err = s.Open(ctx, "image/a.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Stat(ctx, "image/a.txt")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Stat(ctx, "image")
	assert.ErrorIs(t, err, ErrNotFound, "directories are not files")
}

func TestLocalStorage_SaveOverLimitLeavesNothing(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "document/big.bin", strings.NewReader(strings.Repeat("x", 11)), 10)
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(filepath.Join(s.BasePath(), "document"))
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial or temporary file remains")

	_, err = s.Save(ctx, "document/exact.bin", strings.NewReader(strings.Repeat("x", 10)), 10)
	assert.NoError(t, err, "exactly the limit is accepted")
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.FullPath("../../etc/passwd")
	assert.NoError(t, err, "cleaned into the root")

	full, _ := s.FullPath("../../etc/passwd")
	assert.True(t, strings.HasPrefix(full, s.BasePath()))

	_, err = s.FullPath("/")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStorage_List(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, p := range []string{"image/1.png", "document/2.pdf", "general/3.txt"} {
		_, err := s.Save(ctx, p, strings.NewReader("x"), 0)
		require.NoError(t, err)
	}
	// мусор от прерванной загрузки
	require.NoError(t, os.WriteFile(filepath.Join(s.BasePath(), "image", ".upload-123"), []byte("x"), 0644))

	files, err := s.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"image/1.png", "document/2.pdf", "general/3.txt"}, files)
}
