package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"video-transcriber/domain/transcription"
	"video-transcriber/infrastructure/config"
	"video-transcriber/infrastructure/ffmpeg"
	"video-transcriber/infrastructure/filesystem"
	"video-transcriber/infrastructure/openai"
	"video-transcriber/infrastructure/whisper"
)

// verifiable is implemented by adapters that wrap an external executable
type verifiable interface {
	VerifyInstalled(ctx context.Context) error
}

// verifyInstalled checks each dependency that can report its availability
func verifyInstalled(ctx context.Context, deps ...any) error {
	for _, dep := range deps {
		v, ok := dep.(verifiable)
		if !ok {
			continue
		}
		verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := v.VerifyInstalled(verifyCtx)
		cancel()
		if err != nil {
			return err
		}
	}
	return nil
}

// newExtractor builds the production ffmpeg extractor
func newExtractor(c *config.Config) *ffmpeg.Extractor {
	return ffmpeg.NewExtractor(ffmpeg.WithFFmpegPath(c.FFmpeg.Binary))
}

// newRecognizer builds the speech engine selected by the configuration
func newRecognizer(c *config.Config) (transcription.SpeechRecognizer, error) {
	switch c.Transcription.Engine {
	case config.EngineLocal:
		return whisper.NewRecognizer(
			whisper.WithBinary(c.Whisper.Binary),
			whisper.WithDevice(c.Transcription.Device),
			whisper.WithTempDir(c.Paths.WorkDirectory),
		), nil
	case config.EngineOpenAI:
		return openai.NewRecognizer(openai.Config{
			APIKey:  c.OpenAI.APIKey,
			BaseURL: c.OpenAI.BaseURL,
			Model:   c.OpenAI.Model,
		})
	default:
		return nil, fmt.Errorf("unknown transcription engine %q", c.Transcription.Engine)
	}
}

// newScratch and newLocker share the configured work directory
func newScratch(c *config.Config) *filesystem.Scratch {
	return filesystem.NewScratch(c.Paths.WorkDirectory)
}

func newLocker(c *config.Config) *filesystem.Locker {
	return filesystem.NewLocker(filepath.Join(c.Paths.WorkDirectory, "locks"))
}

func newChecker() *filesystem.Checker {
	return filesystem.NewChecker()
}
