package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"video-transcriber/domain/transcription"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "temp_audio.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRecognizer_Transcribe(t *testing.T) {
	var gotModel, gotFormat, gotLanguage, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")
		gotFormat = r.FormValue("response_format")
		gotLanguage = r.FormValue("language")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"task": "transcribe",
			"language": "english",
			"duration": 2.5,
			"text": "hello world",
			"segments": [{"id": 0, "start": 0.0, "end": 2.5, "text": "hello world"}]
		}`))
	}))
	defer srv.Close()

	r, err := NewRecognizer(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewRecognizer() unexpected error: %v", err)
	}

	got, err := r.Transcribe(context.Background(), transcription.Request{
		AudioPath: writeAudio(t),
		Model:     transcription.ModelLarge,
		Language:  "en",
	})
	if err != nil {
		t.Fatalf("Transcribe() unexpected error: %v", err)
	}

	if got.Text != "hello world" {
		t.Errorf("Text = %q, want %q", got.Text, "hello world")
	}
	if got.Language != "english" {
		t.Errorf("Language = %q, want english", got.Language)
	}
	if got.Duration != 2500*time.Millisecond {
		t.Errorf("Duration = %v, want 2.5s", got.Duration)
	}
	if len(got.Segments) != 1 || got.Segments[0].End != 2500*time.Millisecond {
		t.Errorf("Segments = %+v, want one 2.5s segment", got.Segments)
	}
	if gotModel != goopenai.Whisper1 {
		t.Errorf("model = %q, want %q", gotModel, goopenai.Whisper1)
	}
	if gotFormat != string(goopenai.AudioResponseFormatVerboseJSON) {
		t.Errorf("response_format = %q, want verbose_json", gotFormat)
	}
	if gotLanguage != "en" {
		t.Errorf("language = %q, want en", gotLanguage)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestRecognizer_TranscribeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "engine overloaded", "type": "server_error"}}`))
	}))
	defer srv.Close()

	r, err := NewRecognizer(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1", Model: "whisper-large"})
	if err != nil {
		t.Fatalf("NewRecognizer() unexpected error: %v", err)
	}
	if r.Model() != "whisper-large" {
		t.Errorf("Model() = %q, want whisper-large", r.Model())
	}

	_, err = r.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudio(t)})
	var apiErr *goopenai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Transcribe() error = %v, want *APIError", err)
	}
	if apiErr.HTTPStatusCode != http.StatusInternalServerError {
		t.Errorf("HTTPStatusCode = %d, want 500", apiErr.HTTPStatusCode)
	}
}

func TestNewRecognizer_APIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	if _, err := NewRecognizer(Config{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewRecognizer() error = %v, want ErrMissingAPIKey", err)
	}

	t.Setenv(APIKeyEnv, "sk-env")
	r, err := NewRecognizer(Config{})
	if err != nil {
		t.Fatalf("NewRecognizer() unexpected error: %v", err)
	}
	if r.Model() != goopenai.Whisper1 {
		t.Errorf("Model() = %q, want default", r.Model())
	}

	if _, err := r.Transcribe(context.Background(), transcription.Request{}); !errors.Is(err, transcription.ErrEmptyAudioPath) {
		t.Errorf("Transcribe() error = %v, want ErrEmptyAudioPath", err)
	}
}
