package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"video-transcriber/domain/media"
	"video-transcriber/domain/transcription"
)

var (
	extractVideo string
	extractAudio string
	extractStart string
	extractEnd   string
)

var extractAudioCmd = &cobra.Command{
	Use:   "extract-audio",
	Short: "Extract the audio track of a video to a waveform file",
	Long: `Run only the extraction step: write the first audio stream of a video to a
waveform file in the configured format (16 kHz mono PCM WAV by default).

Example:
  video-transcriber extract-audio --video clip.mp4 --audio clip.wav
  video-transcriber extract-audio --video clip.mp4 --audio intro.wav --start 00:00:00 --end 00:01:30`,
	RunE: runExtractAudio,
}

func init() {
	rootCmd.AddCommand(extractAudioCmd)
	extractAudioCmd.Flags().StringVar(&extractVideo, "video", "", "Path to source video file (required)")
	extractAudioCmd.Flags().StringVar(&extractAudio, "audio", "", "Output waveform path (required)")
	extractAudioCmd.Flags().StringVar(&extractStart, "start", "", "Start of the clip range in HH:MM:SS")
	extractAudioCmd.Flags().StringVar(&extractEnd, "end", "", "End of the clip range in HH:MM:SS")
	extractAudioCmd.MarkFlagRequired("video")
	extractAudioCmd.MarkFlagRequired("audio")
}

func runExtractAudio(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}

	return RunExtractAudioWithDependencies(
		cmd.Context(),
		newExtractor(c),
		newChecker(),
		c.AudioFormat(),
		extractVideo,
		extractAudio,
		extractStart,
		extractEnd,
		cmd.OutOrStdout(),
	)
}

// RunExtractAudioWithDependencies runs the extract-audio command with injected dependencies (for testing)
func RunExtractAudioWithDependencies(
	ctx context.Context,
	extractor media.AudioExtractor,
	fileChecker media.FileChecker,
	format media.AudioFormat,
	videoPath string,
	audioPath string,
	startTime string,
	endTime string,
	output OutputWriter,
) error {
	if err := verifyInstalled(ctx, extractor); err != nil {
		return fmt.Errorf("ffmpeg verification failed: %w", err)
	}

	if !fileChecker.Exists(videoPath) {
		return fmt.Errorf("source video does not exist: %s", videoPath)
	}

	var req *media.AudioExtractionRequest
	var err error
	switch {
	case startTime != "" && endTime != "":
		req, err = media.NewAudioExtractionRequestWithTimestamps(videoPath, format, startTime, endTime)
	case startTime != "" || endTime != "":
		err = transcription.ErrInvalidClipRange
	default:
		req, err = media.NewAudioExtractionRequest(videoPath, format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Extracting audio from %s (%d Hz, %d ch, %s)...\n",
		videoPath, req.Format.SampleRate, req.Format.Channels, req.Format.Codec)

	if err := extractor.Extract(ctx, req, audioPath); err != nil {
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s\n", audioPath)
	return nil
}
