//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"video-transcriber/domain/media"
	"video-transcriber/domain/transcription"

	"github.com/cucumber/godog"
)

// mockExtractor writes a placeholder waveform to the requested path
type mockExtractor struct {
	calls     []extractCall
	failError error
}

type extractCall struct {
	req        *media.AudioExtractionRequest
	outputPath string
}

func (m *mockExtractor) Extract(ctx context.Context, req *media.AudioExtractionRequest, outputPath string) error {
	m.calls = append(m.calls, extractCall{req: req, outputPath: outputPath})
	if m.failError != nil {
		return m.failError
	}
	return os.WriteFile(outputPath, []byte("RIFF"), 0o644)
}

// mockRecognizer returns a canned transcript after checking the audio exists
type mockRecognizer struct {
	mu        sync.Mutex
	text      string
	failError error
	requests  []transcription.Request
}

func (m *mockRecognizer) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.failError != nil {
		return nil, m.failError
	}
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, fmt.Errorf("audio not readable: %w", err)
	}
	return &transcription.Result{Text: m.text}, nil
}

type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

// workspaceContext is the state shared by all scenarios
type workspaceContext struct {
	dir         string
	extractor   *mockExtractor
	recognizer  *mockRecognizer
	fileChecker *mockFileChecker
	output      *bytes.Buffer
	err         error
}

// SharedWorkspace is reset before each scenario via Before hook
var SharedWorkspace *workspaceContext

func getWorkspace() *workspaceContext {
	return SharedWorkspace
}

// path resolves a scenario path inside the scenario's temp directory
func (w *workspaceContext) path(p string) string {
	return filepath.Join(w.dir, p)
}

func (w *workspaceContext) workDir() string {
	return w.path("work")
}

func InitializeWorkspaceScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "transcriber-test-*")
		if err != nil {
			return c, err
		}
		SharedWorkspace = &workspaceContext{
			dir:        dir,
			extractor:  &mockExtractor{},
			recognizer: &mockRecognizer{},
			fileChecker: &mockFileChecker{
				existingFiles: make(map[string]bool),
			},
			output: &bytes.Buffer{},
		}
		return c, os.MkdirAll(SharedWorkspace.workDir(), 0o755)
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedWorkspace != nil {
			os.RemoveAll(SharedWorkspace.dir)
		}
		SharedWorkspace = nil
		return c, nil
	})

	ctx.Step(`^a video at "([^"]*)"$`, aVideoAt)
	ctx.Step(`^the video has no audio track$`, theVideoHasNoAudioTrack)
	ctx.Step(`^the audio file "([^"]*)" should exist$`, theAudioFileShouldExist)
	ctx.Step(`^the work directory should be empty$`, theWorkDirectoryShouldBeEmpty)
	ctx.Step(`^I should receive an error containing "([^"]*)"$`, iShouldReceiveAnErrorContaining)
}

func aVideoAt(path string) error {
	w := getWorkspace()
	w.fileChecker.existingFiles[w.path(path)] = true
	return nil
}

func theVideoHasNoAudioTrack() error {
	w := getWorkspace()
	w.extractor.failError = fmt.Errorf("ffmpeg audio extraction failed: %w", media.ErrNoAudioTrack)
	return nil
}

func theAudioFileShouldExist(path string) error {
	w := getWorkspace()
	info, err := os.Stat(w.path(path))
	if err != nil {
		return fmt.Errorf("expected audio file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}

func theWorkDirectoryShouldBeEmpty() error {
	w := getWorkspace()
	entries, err := os.ReadDir(w.workDir())
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) > 0 {
		return fmt.Errorf("expected empty work directory, found: %s", strings.Join(names, ", "))
	}
	return nil
}

func iShouldReceiveAnErrorContaining(text string) error {
	w := getWorkspace()
	if w.err == nil {
		return fmt.Errorf("expected error containing %q, got nil", text)
	}
	if !strings.Contains(w.err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got: %v", text, w.err)
	}
	return nil
}

func expectErrorIs(target error) error {
	w := getWorkspace()
	if w.err == nil {
		return fmt.Errorf("expected %v, got nil", target)
	}
	if !errors.Is(w.err, target) {
		return fmt.Errorf("expected %v, got: %v", target, w.err)
	}
	return nil
}
