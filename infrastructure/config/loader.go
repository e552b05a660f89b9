package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"video-transcriber/domain/media"
	"video-transcriber/domain/transcription"
)

// DefaultPath is used when no --config flag is given
const DefaultPath = "config/config.yaml"

// Recognized speech engines
const (
	EngineLocal  = "local"
	EngineOpenAI = "openai"
)

// Engines lists the recognized engine names
var Engines = []string{EngineLocal, EngineOpenAI}

// Config represents the complete application configuration
type Config struct {
	Paths         PathsConfig         `yaml:"paths"`
	Audio         AudioConfig         `yaml:"audio"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Whisper       WhisperConfig       `yaml:"whisper"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// PathsConfig contains directories used for intermediate files
type PathsConfig struct {
	WorkDirectory string `yaml:"work_directory"`
}

// AudioConfig contains the intermediate waveform settings
type AudioConfig struct {
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
	Codec      string `yaml:"codec"`
}

// TranscriptionConfig selects the engine and model
type TranscriptionConfig struct {
	Engine   string `yaml:"engine"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
	Device   string `yaml:"device"`
}

// WhisperConfig contains settings for the local whisper CLI
type WhisperConfig struct {
	Binary string `yaml:"binary"`
}

// FFmpegConfig contains settings for ffmpeg
type FFmpegConfig struct {
	Binary string `yaml:"binary"`
}

// OpenAIConfig contains settings for the hosted engine
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration with every field set
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields
func (c *Config) ApplyDefaults() {
	if c.Paths.WorkDirectory == "" {
		c.Paths.WorkDirectory = filepath.Join(os.TempDir(), "video-transcriber")
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = media.DefaultSampleRate
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = media.DefaultChannels
	}
	if c.Audio.Codec == "" {
		c.Audio.Codec = media.DefaultCodec
	}
	c.Transcription.Engine = strings.ToLower(strings.TrimSpace(c.Transcription.Engine))
	if c.Transcription.Engine == "" {
		c.Transcription.Engine = EngineLocal
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = string(transcription.DefaultModelTier)
	}
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = "whisper"
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "whisper-1"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks enumerated fields
func (c *Config) Validate() error {
	if c.Transcription.Engine != EngineLocal && c.Transcription.Engine != EngineOpenAI {
		return fmt.Errorf("unknown transcription engine %q (expected one of: %s)", c.Transcription.Engine, strings.Join(Engines, ", "))
	}
	if _, err := c.TranscriptionOptions(); err != nil {
		return err
	}
	return nil
}

// AudioFormat returns the configured waveform format
func (c *Config) AudioFormat() media.AudioFormat {
	return media.AudioFormat{
		SampleRate: c.Audio.SampleRate,
		Channels:   c.Audio.Channels,
		Codec:      c.Audio.Codec,
	}.WithDefaults()
}

// TranscriptionOptions converts the configuration into validated pipeline options
func (c *Config) TranscriptionOptions() (transcription.Options, error) {
	tier, err := transcription.ParseModelTier(c.Transcription.Model)
	if err != nil {
		return transcription.Options{}, err
	}
	opts := transcription.Options{
		Model:    tier,
		Language: c.Transcription.Language,
		Format:   c.AudioFormat(),
	}
	if err := opts.Validate(); err != nil {
		return transcription.Options{}, err
	}
	return opts, nil
}

// Load reads and parses the configuration from the specified YAML file.
// Missing fields are defaulted.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
