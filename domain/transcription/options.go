package transcription

import "video-transcriber/domain/media"

// Options are the caller-tunable settings of a pipeline run
type Options struct {
	Model    ModelTier
	Language string // ISO 639-1 code; empty lets the engine detect it
	Format   media.AudioFormat
}

// DefaultOptions returns the base tier with 16 kHz mono PCM audio
func DefaultOptions() Options {
	return Options{
		Model:  DefaultModelTier,
		Format: media.DefaultAudioFormat(),
	}
}

// WithDefaults fills zero fields from DefaultOptions
func (o Options) WithDefaults() Options {
	if o.Model == "" {
		o.Model = DefaultModelTier
	}
	o.Format = o.Format.WithDefaults()
	return o
}

// Validate checks the model tier and the audio format
func (o Options) Validate() error {
	if _, err := ParseModelTier(string(o.Model)); err != nil {
		return err
	}
	return o.Format.Validate()
}
