package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"video-transcriber/domain/media"
)

// DefaultLockRetry is how often a blocked Lock polls the lock file
const DefaultLockRetry = 100 * time.Millisecond

// Locker serializes processes that write the same output path.
// Lock files live in a dedicated directory and are never deleted, so every
// waiter contends on the same inode.
type Locker struct {
	dir   string
	retry time.Duration
}

// NewLocker creates a Locker keeping its lock files in dir
func NewLocker(dir string) *Locker {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "video-transcriber-locks")
	}
	return &Locker{dir: dir, retry: DefaultLockRetry}
}

// LockPath returns the lock file guarding path
func (l *Locker) LockPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(path))
	return filepath.Join(l.dir, hex.EncodeToString(sum[:8])+".lock")
}

// Lock blocks until the exclusive lock for path is held or ctx is done
func (l *Locker) Lock(ctx context.Context, path string) (func() error, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(l.LockPath(path))
	locked, err := fl.TryLockContext(ctx, l.retry)
	if err != nil {
		return nil, fmt.Errorf("acquire lock for %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("acquire lock for %s: lock not obtained", path)
	}
	return fl.Unlock, nil
}

// Ensure Locker implements media.PathLocker
var _ media.PathLocker = (*Locker)(nil)
