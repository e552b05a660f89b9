package media

import (
	"errors"
	"strings"
	"testing"
)

func TestNewAudioExtractionRequest(t *testing.T) {
	tests := []struct {
		name       string
		sourcePath string
		format     AudioFormat
		wantFormat AudioFormat
		wantErr    error
	}{
		{
			name:       "defaults applied to zero format",
			sourcePath: "clip.mp4",
			wantFormat: DefaultAudioFormat(),
		},
		{
			name:       "explicit format kept",
			sourcePath: "clip.mp4",
			format:     AudioFormat{SampleRate: 44100, Channels: 2, Codec: "flac"},
			wantFormat: AudioFormat{SampleRate: 44100, Channels: 2, Codec: "flac"},
		},
		{
			name:       "partial format filled",
			sourcePath: "clip.mp4",
			format:     AudioFormat{SampleRate: 22050},
			wantFormat: AudioFormat{SampleRate: 22050, Channels: 1, Codec: "pcm_s16le"},
		},
		{
			name:    "empty source path",
			wantErr: ErrNoSourceVideo,
		},
		{
			name:       "unsupported codec",
			sourcePath: "clip.mp4",
			format:     AudioFormat{Codec: "libmp3lame"},
			wantErr:    ErrInvalidFormat,
		},
		{
			name:       "too many channels",
			sourcePath: "clip.mp4",
			format:     AudioFormat{Channels: 6},
			wantErr:    ErrInvalidFormat,
		},
		{
			name:       "sample rate too low",
			sourcePath: "clip.mp4",
			format:     AudioFormat{SampleRate: 4000},
			wantErr:    ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAudioExtractionRequest(tt.sourcePath, tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewAudioExtractionRequest() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewAudioExtractionRequest() unexpected error: %v", err)
			}
			if got.Format != tt.wantFormat {
				t.Errorf("NewAudioExtractionRequest() Format = %+v, want %+v", got.Format, tt.wantFormat)
			}
			if got.HasTimestamps() {
				t.Errorf("HasTimestamps() = true, want false")
			}
		})
	}
}

func TestNewAudioExtractionRequestWithTimestamps(t *testing.T) {
	tests := []struct {
		name        string
		start, end  string
		wantErr     bool
		errContains string
	}{
		{name: "valid range", start: "00:01:00", end: "00:02:30"},
		{name: "bad start", start: "1:00", end: "00:02:00", wantErr: true, errContains: "invalid start time"},
		{name: "bad end", start: "00:01:00", end: "x", wantErr: true, errContains: "invalid end time"},
		{name: "reversed", start: "00:05:00", end: "00:01:00", wantErr: true, errContains: "invalid clip range"},
		{name: "equal", start: "00:05:00", end: "00:05:00", wantErr: true, errContains: "invalid clip range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAudioExtractionRequestWithTimestamps("clip.mp4", AudioFormat{}, tt.start, tt.end)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("error = %v, want containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.HasTimestamps() {
				t.Fatal("HasTimestamps() = false, want true")
			}
			if got.StartTime.String() != tt.start || got.EndTime.String() != tt.end {
				t.Errorf("range = %s-%s, want %s-%s", got.StartTime, got.EndTime, tt.start, tt.end)
			}
		})
	}
}

func TestAudioFormat_Extension(t *testing.T) {
	if got := DefaultAudioFormat().Extension(); got != ".wav" {
		t.Errorf("Extension() = %q, want .wav", got)
	}
	if got := (AudioFormat{Codec: "flac"}).Extension(); got != ".flac" {
		t.Errorf("Extension() = %q, want .flac", got)
	}
}
