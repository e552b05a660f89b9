//go:build integration

package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apptranscription "video-transcriber/application/transcription"
	"video-transcriber/cmd"
	"video-transcriber/domain/media"
	"video-transcriber/domain/transcription"
	"video-transcriber/infrastructure/filesystem"
	"video-transcriber/infrastructure/logging"

	"github.com/cucumber/godog"
)

type transcribeContext struct {
	model string
}

var sharedTranscribe *transcribeContext

func InitializeTranscribeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		sharedTranscribe = &transcribeContext{}
		return c, nil
	})

	ctx.Step(`^the speech engine will return "([^"]*)"$`, theSpeechEngineWillReturn)
	ctx.Step(`^the speech engine will fail with "([^"]*)"$`, theSpeechEngineWillFailWith)
	ctx.Step(`^the model tier is "([^"]*)"$`, theModelTierIs)
	ctx.Step(`^I transcribe "([^"]*)"$`, iTranscribe)
	ctx.Step(`^I transcribe "([^"]*)" keeping the audio at "([^"]*)"$`, iTranscribeKeepingTheAudioAt)
	ctx.Step(`^I attempt to transcribe "([^"]*)"$`, iAttemptToTranscribe)
	ctx.Step(`^I attempt to transcribe "([^"]*)" keeping the audio at "([^"]*)"$`, iAttemptToTranscribeKeepingTheAudioAt)
	ctx.Step(`^the transcript should be "([^"]*)"$`, theTranscriptShouldBe)
	ctx.Step(`^the speech engine should have been given "([^"]*)"$`, theSpeechEngineShouldHaveBeenGiven)
	ctx.Step(`^the speech engine should have been asked for model "([^"]*)"$`, theSpeechEngineShouldHaveBeenAskedForModel)
	ctx.Step(`^the speech engine should not have been called$`, theSpeechEngineShouldNotHaveBeenCalled)
	ctx.Step(`^I should receive an error about a missing video$`, iShouldReceiveAnErrorAboutAMissingVideo)
	ctx.Step(`^I should receive an error about a missing audio track$`, iShouldReceiveAnErrorAboutAMissingAudioTrack)
}

func theSpeechEngineWillReturn(text string) error {
	getWorkspace().recognizer.text = text
	return nil
}

func theSpeechEngineWillFailWith(msg string) error {
	getWorkspace().recognizer.failError = errors.New(msg)
	return nil
}

func theModelTierIs(name string) error {
	sharedTranscribe.model = name
	return nil
}

func runTranscribe(video, audio string) error {
	w := getWorkspace()

	opts := transcription.DefaultOptions()
	if sharedTranscribe.model != "" {
		tier, err := transcription.ParseModelTier(sharedTranscribe.model)
		if err != nil {
			return err
		}
		opts.Model = tier
	}

	input := apptranscription.Input{VideoPath: w.path(video)}
	if audio != "" {
		input.AudioPath = w.path(audio)
	}

	return cmd.RunTranscribeWithDependencies(
		context.Background(),
		cmd.TranscribeDeps{
			Extractor:   w.extractor,
			Recognizer:  w.recognizer,
			FileChecker: w.fileChecker,
			Scratch:     filesystem.NewScratch(w.workDir()),
			Locker:      filesystem.NewLocker(w.path("locks")),
		},
		opts,
		input,
		cmd.FormatText,
		logging.Discard(),
		w.output,
	)
}

func iTranscribe(video string) error {
	w := getWorkspace()
	w.err = runTranscribe(video, "")
	if w.err != nil {
		return fmt.Errorf("unexpected error: %v", w.err)
	}
	return nil
}

func iTranscribeKeepingTheAudioAt(video, audio string) error {
	w := getWorkspace()
	w.err = runTranscribe(video, audio)
	if w.err != nil {
		return fmt.Errorf("unexpected error: %v", w.err)
	}
	return nil
}

func iAttemptToTranscribe(video string) error {
	getWorkspace().err = runTranscribe(video, "")
	return nil
}

func iAttemptToTranscribeKeepingTheAudioAt(video, audio string) error {
	getWorkspace().err = runTranscribe(video, audio)
	return nil
}

func theTranscriptShouldBe(expected string) error {
	got := strings.TrimSuffix(getWorkspace().output.String(), "\n")
	if got != expected {
		return fmt.Errorf("expected transcript %q, got %q", expected, got)
	}
	return nil
}

func theSpeechEngineShouldHaveBeenGiven(audio string) error {
	w := getWorkspace()
	if len(w.recognizer.requests) != 1 {
		return fmt.Errorf("expected 1 recognizer call, got %d", len(w.recognizer.requests))
	}
	if got := w.recognizer.requests[0].AudioPath; got != w.path(audio) {
		return fmt.Errorf("expected recognizer input %s, got %s", w.path(audio), got)
	}
	return nil
}

func theSpeechEngineShouldHaveBeenAskedForModel(model string) error {
	w := getWorkspace()
	if len(w.recognizer.requests) != 1 {
		return fmt.Errorf("expected 1 recognizer call, got %d", len(w.recognizer.requests))
	}
	if got := w.recognizer.requests[0].Model.String(); got != model {
		return fmt.Errorf("expected model %q, got %q", model, got)
	}
	return nil
}

func theSpeechEngineShouldNotHaveBeenCalled() error {
	if n := len(getWorkspace().recognizer.requests); n != 0 {
		return fmt.Errorf("expected no recognizer calls, got %d", n)
	}
	return nil
}

func iShouldReceiveAnErrorAboutAMissingVideo() error {
	return expectErrorIs(transcription.ErrVideoNotFound)
}

func iShouldReceiveAnErrorAboutAMissingAudioTrack() error {
	return expectErrorIs(media.ErrNoAudioTrack)
}
