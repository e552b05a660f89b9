//go:build integration

package steps

import (
	"context"
	"fmt"

	"video-transcriber/cmd"
	"video-transcriber/domain/media"

	"github.com/cucumber/godog"
)

func InitializeExtractScenario(ctx *godog.ScenarioContext) {
	ctx.Step(`^I extract audio from "([^"]*)" to "([^"]*)"$`, iExtractAudioFromTo)
	ctx.Step(`^I extract audio from "([^"]*)" to "([^"]*)" between "([^"]*)" and "([^"]*)"$`, iExtractAudioFromToBetween)
	ctx.Step(`^I attempt to extract audio from "([^"]*)" to "([^"]*)" between "([^"]*)" and "([^"]*)"$`, iAttemptToExtractAudioFromToBetween)
	ctx.Step(`^the extraction should have used (\d+) Hz, (\d+) channels? and codec "([^"]*)"$`, theExtractionShouldHaveUsed)
	ctx.Step(`^the extraction range should be "([^"]*)" to "([^"]*)"$`, theExtractionRangeShouldBe)
}

func runExtract(video, audio, start, end string) error {
	w := getWorkspace()
	return cmd.RunExtractAudioWithDependencies(
		context.Background(),
		w.extractor,
		w.fileChecker,
		media.DefaultAudioFormat(),
		w.path(video),
		w.path(audio),
		start,
		end,
		w.output,
	)
}

func iExtractAudioFromTo(video, audio string) error {
	w := getWorkspace()
	w.err = runExtract(video, audio, "", "")
	if w.err != nil {
		return fmt.Errorf("unexpected error: %v", w.err)
	}
	return nil
}

func iExtractAudioFromToBetween(video, audio, start, end string) error {
	w := getWorkspace()
	w.err = runExtract(video, audio, start, end)
	if w.err != nil {
		return fmt.Errorf("unexpected error: %v", w.err)
	}
	return nil
}

func iAttemptToExtractAudioFromToBetween(video, audio, start, end string) error {
	getWorkspace().err = runExtract(video, audio, start, end)
	return nil
}

func lastExtractCall() (extractCall, error) {
	w := getWorkspace()
	if len(w.extractor.calls) == 0 {
		return extractCall{}, fmt.Errorf("extractor was not called")
	}
	return w.extractor.calls[len(w.extractor.calls)-1], nil
}

func theExtractionShouldHaveUsed(rate, channels int, codec string) error {
	call, err := lastExtractCall()
	if err != nil {
		return err
	}
	f := call.req.Format
	if f.SampleRate != rate || f.Channels != channels || f.Codec != codec {
		return fmt.Errorf("expected %d Hz/%d ch/%s, got %d Hz/%d ch/%s",
			rate, channels, codec, f.SampleRate, f.Channels, f.Codec)
	}
	return nil
}

func theExtractionRangeShouldBe(start, end string) error {
	call, err := lastExtractCall()
	if err != nil {
		return err
	}
	if !call.req.HasTimestamps() {
		return fmt.Errorf("expected a clip range, got full track")
	}
	if got := call.req.StartTime.String(); got != start {
		return fmt.Errorf("expected start %s, got %s", start, got)
	}
	if got := call.req.EndTime.String(); got != end {
		return fmt.Errorf("expected end %s, got %s", end, got)
	}
	return nil
}
