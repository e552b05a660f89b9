package transcription

import (
	"errors"
	"fmt"

	"video-transcriber/domain/media"
)

var (
	// ErrVideoNotFound is returned when the source video does not exist
	ErrVideoNotFound = errors.New("source video does not exist")

	// ErrUnknownModelTier is returned when a model name is not a recognized tier
	ErrUnknownModelTier = errors.New("unknown model tier")

	// ErrEmptyAudioPath is returned when a recognizer is asked to read no file
	ErrEmptyAudioPath = errors.New("audio path is required")

	// ErrInvalidClipRange is returned when only one of start/end is given.
	// It matches media.ErrInvalidRange under errors.Is.
	ErrInvalidClipRange = fmt.Errorf("%w: start and end must be given together", media.ErrInvalidRange)
)
