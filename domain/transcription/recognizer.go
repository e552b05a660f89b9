package transcription

import "context"

// Request is a single inference pass over a waveform file
type Request struct {
	AudioPath string
	Model     ModelTier
	Language  string
}

// SpeechRecognizer defines the interface for speech-to-text engines
// This is a port that can be implemented by different infrastructure adapters
type SpeechRecognizer interface {
	// Transcribe runs inference over req.AudioPath and returns the engine's result
	Transcribe(ctx context.Context, req Request) (*Result, error)
}
