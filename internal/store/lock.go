package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	herrors "github.com/setia/htmldicts/internal/errors"
)

// IndexLock serialises index builds across processes. The lock file sits
// next to the index directory as <index>.lock.
type IndexLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewIndexLock creates the lock for the index at indexPath.
func NewIndexLock(indexPath string) *IndexLock {
	lockPath := filepath.Clean(indexPath) + ".lock"
	return &IndexLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// Acquire takes the lock without blocking. A lock held by another process is
// reported as ErrCodeIndexLocked.
func (l *IndexLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire index lock: %w", err)
	}
	if !acquired {
		return herrors.New(herrors.ErrCodeIndexLocked,
			"another process is building the index", nil).
			WithDetail("lock", l.path).
			WithSuggestion("Wait for the other build to finish, then retry")
	}

	l.locked = true
	return nil
}

// Release drops the lock. Releasing an unheld lock is a no-op.
func (l *IndexLock) Release() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release index lock: %w", err)
	}
	return nil
}

// Path returns the lock file path.
func (l *IndexLock) Path() string {
	return l.path
}
