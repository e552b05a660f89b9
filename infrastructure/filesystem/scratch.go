package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"video-transcriber/domain/media"
)

// Scratch hands out uniquely named files under a working directory
type Scratch struct {
	dir    string
	prefix string
}

// NewScratch creates a Scratch rooted at dir. An empty dir means os.TempDir().
func NewScratch(dir string) *Scratch {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Scratch{dir: dir, prefix: "audio-"}
}

// Dir returns the root directory
func (s *Scratch) Dir() string {
	return s.dir
}

// Artifact is a scratch file owned by a single caller.
// The file is not created; the path is only reserved by its unique name.
type Artifact struct {
	path string

	once sync.Once
	err  error
}

// Acquire reserves a new artifact path with the given extension (".wav")
func (s *Scratch) Acquire(ext string) (media.ScratchArtifact, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	name := s.prefix + uuid.NewString() + ext
	return &Artifact{path: filepath.Join(s.dir, name)}, nil
}

// Path returns the reserved location
func (a *Artifact) Path() string {
	return a.path
}

// Release deletes the file. It is safe to call more than once and
// succeeds when the file was never written.
func (a *Artifact) Release() error {
	a.once.Do(func() {
		if err := os.Remove(a.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			a.err = fmt.Errorf("failed to remove scratch file: %w", err)
		}
	})
	return a.err
}

// Ensure Scratch implements media.ScratchSpace
var _ media.ScratchSpace = (*Scratch)(nil)
