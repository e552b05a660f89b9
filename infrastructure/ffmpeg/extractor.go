package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"video-transcriber/domain/media"
	"video-transcriber/infrastructure/command"
)

// DefaultBinary is the ffmpeg executable looked up on PATH
const DefaultBinary = "ffmpeg"

// ffmpeg stderr fragments that mean the input had nothing to map
var noAudioMarkers = []string{
	"matches no streams",
	"does not contain any stream",
}

// Extractor implements media.AudioExtractor using ffmpeg
type Extractor struct {
	ffmpegPath string
	runner     command.Runner
}

// ExtractorOption is a functional option for configuring Extractor
type ExtractorOption func(*Extractor)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) ExtractorOption {
	return func(e *Extractor) {
		if path != "" {
			e.ffmpegPath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner command.Runner) ExtractorOption {
	return func(e *Extractor) {
		e.runner = runner
	}
}

// NewExtractor creates a new FFmpeg-based audio extractor
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		ffmpegPath: DefaultBinary,
		runner:     command.NewExecRunner(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract implements media.AudioExtractor
func (e *Extractor) Extract(ctx context.Context, req *media.AudioExtractionRequest, outputPath string) error {
	if err := e.runner.Run(ctx, e.ffmpegPath, BuildArgs(req, outputPath)...); err != nil {
		if isNoAudio(err) {
			return fmt.Errorf("%w: %s", media.ErrNoAudioTrack, req.SourceVideoPath)
		}
		return fmt.Errorf("ffmpeg audio extraction failed: %w", err)
	}
	return nil
}

// BuildArgs returns the ffmpeg arguments that write the first audio stream of
// req.SourceVideoPath to outputPath
func BuildArgs(req *media.AudioExtractionRequest, outputPath string) []string {
	format := req.Format.WithDefaults()

	args := []string{
		"-y", // Overwrite output file if it exists
		"-hide_banner",
		"-loglevel", "error",
	}
	if req.HasTimestamps() {
		args = append(args, "-ss", req.StartTime.String(), "-to", req.EndTime.String())
	}
	args = append(args,
		"-i", req.SourceVideoPath,
		"-map", "0:a:0",
		"-vn", // No video
		"-sn", // No subtitles
		"-dn", // No data streams
		"-ac", strconv.Itoa(format.Channels),
		"-ar", strconv.Itoa(format.SampleRate),
		"-c:a", format.Codec,
		outputPath,
	)
	return args
}

// VerifyInstalled checks that ffmpeg is available
func (e *Extractor) VerifyInstalled(ctx context.Context) error {
	_, err := e.runner.Output(ctx, e.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

func isNoAudio(err error) bool {
	var cmdErr *command.Error
	if !errors.As(err, &cmdErr) {
		return false
	}
	for _, marker := range noAudioMarkers {
		if strings.Contains(cmdErr.Stderr, marker) {
			return true
		}
	}
	return false
}

// Ensure Extractor implements media.AudioExtractor
var _ media.AudioExtractor = (*Extractor)(nil)
