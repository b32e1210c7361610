package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/setia/htmldicts/internal/errors"
)

func TestIndexLock_AcquireRelease(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "dict.bleve")
	lock := NewIndexLock(indexPath)
	assert.Equal(t, indexPath+".lock", lock.Path())

	require.NoError(t, lock.Acquire())
	_, err := os.Stat(lock.Path())
	assert.NoError(t, err, "lock file created")

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release(), "second release is a no-op")
}

func TestIndexLock_HeldElsewhere(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "dict.bleve")
	first := NewIndexLock(indexPath)
	require.NoError(t, first.Acquire())
	defer func() { _ = first.Release() }()

	second := NewIndexLock(indexPath)
	err := second.Acquire()
	require.Error(t, err)
	assert.True(t, herrors.HasCode(err, herrors.ErrCodeIndexLocked))
	assert.True(t, herrors.IsRetryable(err))

	require.NoError(t, first.Release())
	require.NoError(t, second.Acquire(), "lock is free after release")
	require.NoError(t, second.Release())
}

func TestIndexLock_ReleaseWithoutAcquire(t *testing.T) {
	lock := NewIndexLock(filepath.Join(t.TempDir(), "dict.bleve"))
	assert.NoError(t, lock.Release())
}
