package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	apptranscription "video-transcriber/application/transcription"
	"video-transcriber/domain/media"
	"video-transcriber/domain/transcription"
	"video-transcriber/infrastructure/config"
)

// DefaultVideoPath is transcribed when --video is not given
const DefaultVideoPath = "example_video.mp4"

var (
	transcribeVideo    string
	transcribeAudio    string
	transcribeModel    string
	transcribeEngine   string
	transcribeLanguage string
	transcribeDevice   string
	transcribeStart    string
	transcribeEnd      string
	transcribeFormat   string
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe the audio track of a video",
	Long: `Extract the audio track of a video and transcribe it with Whisper.

Without --audio the intermediate WAV file is written to the work directory
under a unique name and deleted when the command finishes. With --audio the
file is written to that path, overwriting any existing file, and kept.

Example:
  video-transcriber transcribe --video clip.mp4
  video-transcriber transcribe --video clip.mp4 --audio clip.wav --model small --language en
  video-transcriber transcribe --video talk.mkv --start 00:10:00 --end 00:15:00 --format segments`,
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
	transcribeCmd.Flags().StringVar(&transcribeVideo, "video", DefaultVideoPath, "Path to source video file")
	transcribeCmd.Flags().StringVar(&transcribeAudio, "audio", "", "Keep the extracted audio at this path")
	transcribeCmd.Flags().StringVar(&transcribeModel, "model", "", "Model tier: tiny, base, small, medium, large, turbo (default from config or base)")
	transcribeCmd.Flags().StringVar(&transcribeEngine, "engine", "", "Speech engine: local or openai (default from config or local)")
	transcribeCmd.Flags().StringVar(&transcribeLanguage, "language", "", "Spoken language as ISO 639-1 code (default: detect)")
	transcribeCmd.Flags().StringVar(&transcribeDevice, "device", "", "Torch device for the local engine: cpu or cuda")
	transcribeCmd.Flags().StringVar(&transcribeStart, "start", "", "Start of the clip range in HH:MM:SS")
	transcribeCmd.Flags().StringVar(&transcribeEnd, "end", "", "End of the clip range in HH:MM:SS")
	transcribeCmd.Flags().StringVar(&transcribeFormat, "format", FormatText, "Output format: text, segments or json")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	base, err := GetConfig()
	if err != nil {
		return err
	}

	c := applyTranscribeFlags(*base)
	if err := c.Validate(); err != nil {
		return err
	}
	opts, err := c.TranscriptionOptions()
	if err != nil {
		return err
	}

	recognizer, err := newRecognizer(&c)
	if err != nil {
		return err
	}

	return RunTranscribeWithDependencies(
		cmd.Context(),
		TranscribeDeps{
			Extractor:   newExtractor(&c),
			Recognizer:  recognizer,
			FileChecker: newChecker(),
			Scratch:     newScratch(&c),
			Locker:      newLocker(&c),
		},
		opts,
		apptranscription.Input{
			VideoPath: transcribeVideo,
			AudioPath: transcribeAudio,
			StartTime: transcribeStart,
			EndTime:   transcribeEnd,
		},
		transcribeFormat,
		GetLogger(),
		cmd.OutOrStdout(),
	)
}

// applyTranscribeFlags overlays command line flags on a copy of the configuration
func applyTranscribeFlags(c config.Config) config.Config {
	if transcribeModel != "" {
		c.Transcription.Model = transcribeModel
	}
	if transcribeEngine != "" {
		c.Transcription.Engine = transcribeEngine
	}
	if transcribeLanguage != "" {
		c.Transcription.Language = transcribeLanguage
	}
	if transcribeDevice != "" {
		c.Transcription.Device = transcribeDevice
	}
	c.ApplyDefaults()
	return c
}

// TranscribeDeps are the collaborators of the transcribe command
type TranscribeDeps struct {
	Extractor   media.AudioExtractor
	Recognizer  transcription.SpeechRecognizer
	FileChecker media.FileChecker
	Scratch     media.ScratchSpace
	Locker      media.PathLocker
}

// RunTranscribeWithDependencies runs the transcribe command with injected dependencies (for testing)
func RunTranscribeWithDependencies(
	ctx context.Context,
	deps TranscribeDeps,
	opts transcription.Options,
	input apptranscription.Input,
	format string,
	log *logrus.Logger,
	output OutputWriter,
) error {
	switch format {
	case "", FormatText, FormatSegments, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (expected text, segments or json)", format)
	}

	if err := verifyInstalled(ctx, deps.Extractor, deps.Recognizer); err != nil {
		return fmt.Errorf("dependency check failed: %w", err)
	}

	service := apptranscription.NewService(
		deps.Extractor,
		deps.Recognizer,
		deps.FileChecker,
		deps.Scratch,
		apptranscription.WithOptions(opts),
		apptranscription.WithLocker(deps.Locker),
		apptranscription.WithLogger(log),
	)

	log.WithFields(logrus.Fields{
		"video": input.VideoPath,
		"model": opts.Model,
	}).Info("transcribing video")

	result, err := service.Transcribe(ctx, input)
	if err != nil {
		return err
	}

	return writeTranscript(output, result, format)
}
