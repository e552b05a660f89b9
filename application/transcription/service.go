package transcription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"video-transcriber/domain/media"
	"video-transcriber/domain/transcription"
	"video-transcriber/infrastructure/logging"
)

// Service runs the transcription pipeline: extract the audio track of a video
// into a waveform file, then run speech recognition over that file.
//
// When the caller names the waveform path, the file is written there and left
// in place; writers of the same path are serialized through the PathLocker.
// Otherwise the waveform goes to a scratch artifact that is released on every
// return path.
type Service struct {
	extractor   media.AudioExtractor
	recognizer  transcription.SpeechRecognizer
	fileChecker media.FileChecker
	scratch     media.ScratchSpace
	locker      media.PathLocker
	opts        transcription.Options
	log         *logrus.Entry
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithOptions sets model tier, language and audio format
func WithOptions(opts transcription.Options) Option {
	return func(s *Service) {
		s.opts = opts.WithDefaults()
	}
}

// WithLocker enables locking of caller-supplied audio paths
func WithLocker(locker media.PathLocker) Option {
	return func(s *Service) {
		s.locker = locker
	}
}

// WithLogger sets the logger
func WithLogger(log *logrus.Logger) Option {
	return func(s *Service) {
		s.log = log.WithField("component", "transcription")
	}
}

// NewService creates a new Service
func NewService(
	extractor media.AudioExtractor,
	recognizer transcription.SpeechRecognizer,
	fileChecker media.FileChecker,
	scratch media.ScratchSpace,
	opts ...Option,
) *Service {
	s := &Service{
		extractor:   extractor,
		recognizer:  recognizer,
		fileChecker: fileChecker,
		scratch:     scratch,
		opts:        transcription.DefaultOptions(),
		log:         logging.Discard().WithField("component", "transcription"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Input represents the input for a transcription run
type Input struct {
	VideoPath string
	AudioPath string // Optional; empty uses a scratch file that is removed afterwards
	StartTime string // Optional HH:MM:SS, requires EndTime
	EndTime   string // Optional HH:MM:SS, requires StartTime
}

// Result contains the outcome of a transcription run
type Result struct {
	Transcript *transcription.Result
	AudioPath  string // where the waveform was written
	AudioKept  bool   // false when AudioPath was a scratch file, already removed
	Elapsed    time.Duration
}

// TranscribeVideo extracts the audio of videoPath and returns the transcript text
// exactly as the recognizer produced it. An empty outputAudioPath writes the waveform
// to a scratch file that is deleted before returning; no temp_audio.wav is left behind.
func (s *Service) TranscribeVideo(ctx context.Context, videoPath, outputAudioPath string) (string, error) {
	res, err := s.Transcribe(ctx, Input{VideoPath: videoPath, AudioPath: outputAudioPath})
	if err != nil {
		return "", err
	}
	return res.Transcript.Text, nil
}

// Transcribe runs the full pipeline and returns the recognizer's complete result
func (s *Service) Transcribe(ctx context.Context, input Input) (*Result, error) {
	start := time.Now()
	log := s.log.WithField("video", input.VideoPath)

	if err := s.opts.Validate(); err != nil {
		return nil, err
	}

	// Verify source file exists
	if !s.fileChecker.Exists(input.VideoPath) {
		return nil, fmt.Errorf("%w: %s", transcription.ErrVideoNotFound, input.VideoPath)
	}

	req, err := s.buildRequest(input)
	if err != nil {
		return nil, err
	}

	audioPath, kept, release, err := s.acquireAudioPath(ctx, input.AudioPath, req.Format)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(); err != nil {
			log.WithError(err).WithField("audio", audioPath).Warn("failed to release intermediate audio")
		}
	}()
	log = log.WithField("audio", audioPath)

	log.Debug("extracting audio track")
	if err := s.extractor.Extract(ctx, req, audioPath); err != nil {
		return nil, fmt.Errorf("audio extraction failed: %w", err)
	}
	extracted := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.WithField("model", s.opts.Model).Debug("running speech recognition")
	transcript, err := s.recognizer.Transcribe(ctx, transcription.Request{
		AudioPath: audioPath,
		Model:     s.opts.Model,
		Language:  s.opts.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("speech recognition failed: %w", err)
	}
	if transcript == nil {
		return nil, errors.New("speech recognition failed: engine returned no result")
	}

	elapsed := time.Since(start)
	log.WithFields(logrus.Fields{
		"extract_ms":    extracted.Sub(start).Milliseconds(),
		"recognize_ms":  time.Since(extracted).Milliseconds(),
		"segments":      len(transcript.Segments),
		"language":      transcript.Language,
		"audio_kept":    kept,
		"total_elapsed": elapsed.String(),
	}).Info("transcription complete")

	return &Result{
		Transcript: transcript,
		AudioPath:  audioPath,
		AudioKept:  kept,
		Elapsed:    elapsed,
	}, nil
}

// buildRequest validates the clip range and creates the extraction request
func (s *Service) buildRequest(input Input) (*media.AudioExtractionRequest, error) {
	hasStart, hasEnd := input.StartTime != "", input.EndTime != ""
	switch {
	case hasStart && hasEnd:
		return media.NewAudioExtractionRequestWithTimestamps(input.VideoPath, s.opts.Format, input.StartTime, input.EndTime)
	case hasStart || hasEnd:
		return nil, transcription.ErrInvalidClipRange
	default:
		return media.NewAudioExtractionRequest(input.VideoPath, s.opts.Format)
	}
}

// acquireAudioPath resolves where the waveform is written and how it is released
func (s *Service) acquireAudioPath(ctx context.Context, explicit string, format media.AudioFormat) (string, bool, func() error, error) {
	if explicit == "" {
		artifact, err := s.scratch.Acquire(format.Extension())
		if err != nil {
			return "", false, nil, fmt.Errorf("failed to reserve intermediate audio file: %w", err)
		}
		return artifact.Path(), false, artifact.Release, nil
	}

	if s.locker == nil {
		return explicit, true, func() error { return nil }, nil
	}
	unlock, err := s.locker.Lock(ctx, explicit)
	if err != nil {
		return "", false, nil, err
	}
	return explicit, true, unlock, nil
}
