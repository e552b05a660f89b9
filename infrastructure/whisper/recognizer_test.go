package whisper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"video-transcriber/domain/transcription"
)

const sampleJSON = `{
  "text": " Hello world. How are you?",
  "language": "en",
  "segments": [
    {"id": 0, "seek": 0, "start": 0.0, "end": 1.5, "text": " Hello world.", "temperature": 0.0},
    {"id": 1, "seek": 0, "start": 1.5, "end": 3.25, "text": " How are you?", "temperature": 0.0}
  ]
}`

// fakeRunner emulates the whisper CLI by writing a result file into --output_dir
type fakeRunner struct {
	name    string
	args    []string
	payload string
	runErr  error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.name = name
	f.args = args
	if f.runErr != nil {
		return f.runErr
	}
	outDir := argValue(args, "--output_dir")
	return os.WriteFile(resultPath(args[0], outDir), []byte(f.payload), 0o644)
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return nil, f.runErr
}

func argValue(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func TestRecognizer_Transcribe(t *testing.T) {
	tmp := t.TempDir()
	runner := &fakeRunner{payload: sampleJSON}
	r := NewRecognizer(WithCommandRunner(runner), WithTempDir(tmp))

	got, err := r.Transcribe(context.Background(), transcription.Request{
		AudioPath: "/work/temp_audio.wav",
		Model:     transcription.ModelBase,
	})
	if err != nil {
		t.Fatalf("Transcribe() unexpected error: %v", err)
	}

	if got.Text != " Hello world. How are you?" {
		t.Errorf("Text = %q, want engine text unmodified", got.Text)
	}
	if got.Language != "en" {
		t.Errorf("Language = %q, want en", got.Language)
	}
	wantSegments := []transcription.Segment{
		{Start: 0, End: 1500 * time.Millisecond, Text: " Hello world."},
		{Start: 1500 * time.Millisecond, End: 3250 * time.Millisecond, Text: " How are you?"},
	}
	if !reflect.DeepEqual(got.Segments, wantSegments) {
		t.Errorf("Segments = %+v, want %+v", got.Segments, wantSegments)
	}
	if got.Duration != 3250*time.Millisecond {
		t.Errorf("Duration = %v, want 3.25s", got.Duration)
	}

	if runner.name != DefaultBinary {
		t.Errorf("binary = %q, want %q", runner.name, DefaultBinary)
	}
	outDir := argValue(runner.args, "--output_dir")
	if filepath.Dir(outDir) != tmp {
		t.Errorf("output dir %q not under %q", outDir, tmp)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Errorf("output dir %q still exists after Transcribe", outDir)
	}
}

func TestRecognizer_BuildArgs(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		req  transcription.Request
		want []string
	}{
		{
			name: "defaults",
			req:  transcription.Request{AudioPath: "a.wav"},
			want: []string{"a.wav", "--model", "base", "--output_dir", "/out", "--output_format", "json", "--verbose", "False"},
		},
		{
			name: "language and cpu device",
			opts: []Option{WithDevice("cpu")},
			req:  transcription.Request{AudioPath: "a.wav", Model: transcription.ModelSmall, Language: "de"},
			want: []string{"a.wav", "--model", "small", "--output_dir", "/out", "--output_format", "json", "--verbose", "False",
				"--language", "de", "--device", "cpu", "--fp16", "False"},
		},
		{
			name: "cuda device",
			opts: []Option{WithDevice("cuda")},
			req:  transcription.Request{AudioPath: "a.wav", Model: "medium.en"},
			want: []string{"a.wav", "--model", "medium.en", "--output_dir", "/out", "--output_format", "json", "--verbose", "False",
				"--device", "cuda"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecognizer(tt.opts...)
			if got := r.buildArgs(tt.req, "/out"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildArgs() = %v\nwant %v", got, tt.want)
			}
		})
	}
}

func TestRecognizer_TranscribeErrors(t *testing.T) {
	engineErr := errors.New("CUDA out of memory")

	r := NewRecognizer(WithCommandRunner(&fakeRunner{runErr: engineErr}), WithTempDir(t.TempDir()))
	if _, err := r.Transcribe(context.Background(), transcription.Request{AudioPath: "a.wav"}); !errors.Is(err, engineErr) {
		t.Errorf("Transcribe() error = %v, want %v", err, engineErr)
	}

	if _, err := r.Transcribe(context.Background(), transcription.Request{}); !errors.Is(err, transcription.ErrEmptyAudioPath) {
		t.Errorf("Transcribe() error = %v, want ErrEmptyAudioPath", err)
	}

	bad := NewRecognizer(WithCommandRunner(&fakeRunner{payload: "not json"}), WithTempDir(t.TempDir()))
	if _, err := bad.Transcribe(context.Background(), transcription.Request{AudioPath: "a.wav"}); err == nil {
		t.Error("Transcribe() expected parse error, got nil")
	}
}

func TestLoadResult_NoSegments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{"text": "", "language": "fr", "segments": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadResult(path)
	if err != nil {
		t.Fatalf("LoadResult() unexpected error: %v", err)
	}
	if got.Duration != 0 || len(got.Segments) != 0 || got.Language != "fr" {
		t.Errorf("LoadResult() = %+v, want empty french result", got)
	}
}

func TestResultPath(t *testing.T) {
	tests := []struct {
		audio string
		want  string
	}{
		{audio: "/work/clip.wav", want: "clip.json"},
		{audio: "clip", want: "clip.json"},
		{audio: "talk.part1.flac", want: "talk.part1.json"},
		{audio: "/work/.wav", want: ".wav.json"},
		{audio: "..wav", want: "..wav.json"},
		{audio: ".take.wav", want: ".take.json"},
	}

	for _, tt := range tests {
		t.Run(tt.audio, func(t *testing.T) {
			if got := resultPath(tt.audio, "/out"); got != filepath.Join("/out", tt.want) {
				t.Errorf("resultPath(%q) = %q, want %q", tt.audio, got, filepath.Join("/out", tt.want))
			}
		})
	}
}
