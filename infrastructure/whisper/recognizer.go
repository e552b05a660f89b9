package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"video-transcriber/domain/transcription"
	"video-transcriber/infrastructure/command"
)

// DefaultBinary is the openai-whisper command line entry point
const DefaultBinary = "whisper"

// Recognizer implements transcription.SpeechRecognizer by running the whisper CLI.
// Each call loads the requested model, writes a JSON result into a private
// temporary directory, and removes that directory before returning.
type Recognizer struct {
	binary string
	device string
	tmpDir string
	runner command.Runner
}

// Option is a functional option for configuring Recognizer
type Option func(*Recognizer)

// WithBinary sets a custom whisper executable path
func WithBinary(path string) Option {
	return func(r *Recognizer) {
		if path != "" {
			r.binary = path
		}
	}
}

// WithDevice selects the torch device ("cpu", "cuda"); empty lets whisper choose
func WithDevice(device string) Option {
	return func(r *Recognizer) {
		r.device = device
	}
}

// WithTempDir sets the parent directory for per-call output directories
func WithTempDir(dir string) Option {
	return func(r *Recognizer) {
		r.tmpDir = dir
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner command.Runner) Option {
	return func(r *Recognizer) {
		r.runner = runner
	}
}

// NewRecognizer creates a whisper CLI recognizer
func NewRecognizer(opts ...Option) *Recognizer {
	r := &Recognizer{
		binary: DefaultBinary,
		runner: command.NewExecRunner(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Transcribe implements transcription.SpeechRecognizer
func (r *Recognizer) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	if req.AudioPath == "" {
		return nil, transcription.ErrEmptyAudioPath
	}

	outputDir, err := os.MkdirTemp(r.tmpDir, "whisper-")
	if err != nil {
		return nil, fmt.Errorf("whisper: create output dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	if err := r.runner.Run(ctx, r.binary, r.buildArgs(req, outputDir)...); err != nil {
		return nil, fmt.Errorf("whisper: %w", err)
	}

	return LoadResult(resultPath(req.AudioPath, outputDir))
}

// buildArgs constructs the whisper CLI arguments
func (r *Recognizer) buildArgs(req transcription.Request, outputDir string) []string {
	model := req.Model
	if model == "" {
		model = transcription.DefaultModelTier
	}

	args := []string{
		req.AudioPath,
		"--model", model.String(),
		"--output_dir", outputDir,
		"--output_format", "json",
		"--verbose", "False",
	}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}
	if r.device != "" {
		args = append(args, "--device", r.device)
		if r.device == "cpu" {
			args = append(args, "--fp16", "False")
		}
	}
	return args
}

// resultPath mirrors whisper's naming: <output_dir>/<audio basename without extension>.json.
// Leading dots belong to the stem, so ".wav" stays ".wav" and ".take.wav" becomes ".take".
func resultPath(audioPath, outputDir string) string {
	base := filepath.Base(audioPath)
	ext := filepath.Ext(strings.TrimLeft(base, "."))
	return filepath.Join(outputDir, strings.TrimSuffix(base, ext)+".json")
}

// segment is one entry of the whisper JSON "segments" array
type segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// payload is the JSON document whisper writes with --output_format json
type payload struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []segment `json:"segments"`
}

// LoadResult parses a whisper JSON result file
func LoadResult(path string) (*transcription.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("whisper: read result: %w", err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("whisper: parse result: %w", err)
	}

	result := &transcription.Result{
		Text:     p.Text,
		Language: p.Language,
		Segments: make([]transcription.Segment, 0, len(p.Segments)),
	}
	for _, s := range p.Segments {
		result.Segments = append(result.Segments, transcription.Segment{
			Start: transcription.SecondsToDuration(s.Start),
			End:   transcription.SecondsToDuration(s.End),
			Text:  s.Text,
		})
	}
	if n := len(result.Segments); n > 0 {
		result.Duration = result.Segments[n-1].End
	}
	return result, nil
}

// VerifyInstalled checks that the whisper CLI is available
func (r *Recognizer) VerifyInstalled(ctx context.Context) error {
	if _, err := r.runner.Output(ctx, r.binary, "--help"); err != nil {
		return fmt.Errorf("whisper not found or not executable: %w", err)
	}
	return nil
}

// Ensure Recognizer implements transcription.SpeechRecognizer
var _ transcription.SpeechRecognizer = (*Recognizer)(nil)
