package media

import "errors"

var (
	// ErrNoAudioTrack is returned when the source video carries no audio stream
	ErrNoAudioTrack = errors.New("video has no audio track")

	// ErrNoSourceVideo is returned when an extraction request has no source path
	ErrNoSourceVideo = errors.New("source video path is required")

	// ErrInvalidFormat is returned when an audio format has out-of-range values
	ErrInvalidFormat = errors.New("invalid audio format")

	// ErrInvalidRange is returned when a clip range is incomplete or reversed
	ErrInvalidRange = errors.New("invalid clip range")
)
