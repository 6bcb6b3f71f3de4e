package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewLocalStore(dir, nil)
	require.NoError(t, err)

	path, err := s.Save(context.Background(), strings.NewReader("fake png bytes"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "uploads/images/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	name := strings.TrimPrefix(path, "uploads/images/")
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(content))

	require.NoError(t, s.Remove(context.Background(), path))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreSaveRejectsUnsupportedType(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), strings.NewReader("<svg/>"), "image/svg+xml")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.Save(context.Background(), strings.NewReader("plain"), "text/plain")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocalStoreRemoveMissing(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir(), nil)
	require.NoError(t, err)

	err = s.Remove(context.Background(), "uploads/images/no-such-file.png")
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestLocalStoreRemoveRejectsTraversal(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir(), nil)
	require.NoError(t, err)

	err = s.Remove(context.Background(), "uploads/images/../../etc/passwd")
	assert.ErrorIs(t, err, ErrImageNotFound)

	err = s.Remove(context.Background(), "somewhere/else.png")
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestLocalStoreGeneratesUniqueNames(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir(), nil)
	require.NoError(t, err)

	first, err := s.Save(context.Background(), strings.NewReader("a"), "image/jpeg")
	require.NoError(t, err)
	second, err := s.Save(context.Background(), strings.NewReader("b"), "image/jpeg")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
