package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	goopenai "github.com/sashabaranov/go-openai"

	"video-transcriber/domain/transcription"
)

// APIKeyEnv is consulted when no key is configured
const APIKeyEnv = "OPENAI_API_KEY"

// ErrMissingAPIKey is returned when neither config nor environment supply a key
var ErrMissingAPIKey = errors.New("openai api key is not configured")

// Config holds the hosted transcription settings
type Config struct {
	APIKey  string
	BaseURL string // optional, for compatible gateways
	Model   string // hosted model name, defaults to whisper-1
}

// Recognizer implements transcription.SpeechRecognizer with the OpenAI
// audio transcription endpoint. The hosted service picks its own model size,
// so the requested tier is not forwarded.
type Recognizer struct {
	client *goopenai.Client
	model  string
}

// NewRecognizer creates a hosted recognizer
func NewRecognizer(cfg Config) (*Recognizer, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv(APIKeyEnv)
	}
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	clientCfg := goopenai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = goopenai.Whisper1
	}

	return &Recognizer{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Model returns the hosted model name
func (r *Recognizer) Model() string {
	return r.model
}

// Transcribe implements transcription.SpeechRecognizer
func (r *Recognizer) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	if req.AudioPath == "" {
		return nil, transcription.ErrEmptyAudioPath
	}

	resp, err := r.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    r.model,
		FilePath: req.AudioPath,
		Language: req.Language,
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("openai transcription: %w", err)
	}

	result := &transcription.Result{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: transcription.SecondsToDuration(resp.Duration),
		Segments: make([]transcription.Segment, 0, len(resp.Segments)),
	}
	for _, s := range resp.Segments {
		result.Segments = append(result.Segments, transcription.Segment{
			Start: transcription.SecondsToDuration(s.Start),
			End:   transcription.SecondsToDuration(s.End),
			Text:  s.Text,
		})
	}
	return result, nil
}

// Ensure Recognizer implements transcription.SpeechRecognizer
var _ transcription.SpeechRecognizer = (*Recognizer)(nil)
