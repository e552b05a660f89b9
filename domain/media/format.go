package media

import "fmt"

// Default waveform settings. Whisper resamples everything to 16 kHz mono internally,
// so extracting in that shape avoids a second conversion.
const (
	DefaultSampleRate = 16000
	DefaultChannels   = 1
	DefaultCodec      = "pcm_s16le"
	DefaultExtension  = ".wav"
)

// SupportedCodecs lists the waveform codecs the extractor will write
var SupportedCodecs = []string{"pcm_s16le", "pcm_s24le", "pcm_f32le", "flac"}

// AudioFormat describes the intermediate waveform file
type AudioFormat struct {
	SampleRate int
	Channels   int
	Codec      string
}

// DefaultAudioFormat returns 16 kHz mono 16-bit PCM
func DefaultAudioFormat() AudioFormat {
	return AudioFormat{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		Codec:      DefaultCodec,
	}
}

// WithDefaults fills zero fields from DefaultAudioFormat
func (f AudioFormat) WithDefaults() AudioFormat {
	if f.SampleRate == 0 {
		f.SampleRate = DefaultSampleRate
	}
	if f.Channels == 0 {
		f.Channels = DefaultChannels
	}
	if f.Codec == "" {
		f.Codec = DefaultCodec
	}
	return f
}

// Validate checks the format against the ranges ffmpeg and whisper accept
func (f AudioFormat) Validate() error {
	if f.SampleRate < 8000 || f.SampleRate > 192000 {
		return fmt.Errorf("%w: sample rate %d out of range 8000-192000", ErrInvalidFormat, f.SampleRate)
	}
	if f.Channels < 1 || f.Channels > 2 {
		return fmt.Errorf("%w: channels must be 1 or 2, got %d", ErrInvalidFormat, f.Channels)
	}
	for _, c := range SupportedCodecs {
		if c == f.Codec {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported codec %q", ErrInvalidFormat, f.Codec)
}

// Extension returns the file extension matching the codec
func (f AudioFormat) Extension() string {
	if f.Codec == "flac" {
		return ".flac"
	}
	return DefaultExtension
}
