package media

import "context"

// ScratchArtifact is an intermediate file owned by exactly one pipeline run
type ScratchArtifact interface {
	// Path is the reserved file location
	Path() string
	// Release deletes the file; safe to call repeatedly
	Release() error
}

// ScratchSpace reserves uniquely named intermediate files
type ScratchSpace interface {
	Acquire(ext string) (ScratchArtifact, error)
}

// PathLocker serializes writers of a shared output path
type PathLocker interface {
	// Lock blocks until path is exclusively held or ctx is done
	Lock(ctx context.Context, path string) (unlock func() error, err error)
}
