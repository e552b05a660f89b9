package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	apptranscription "video-transcriber/application/transcription"
	"video-transcriber/domain/media"
)

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// Transcript output formats
const (
	FormatText     = "text"
	FormatSegments = "segments"
	FormatJSON     = "json"
)

type jsonSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type jsonTranscript struct {
	Text      string        `json:"text"`
	Language  string        `json:"language,omitempty"`
	Duration  float64       `json:"duration_seconds"`
	Segments  []jsonSegment `json:"segments"`
	AudioPath string        `json:"audio_path,omitempty"`
}

// writeTranscript renders res in the requested format
func writeTranscript(out OutputWriter, res *apptranscription.Result, format string) error {
	t := res.Transcript

	switch format {
	case "", FormatText:
		_, err := fmt.Fprintln(out, t.Text)
		return err

	case FormatSegments:
		if len(t.Segments) == 0 {
			_, err := fmt.Fprintln(out, t.Text)
			return err
		}
		for _, s := range t.Segments {
			_, err := fmt.Fprintf(out, "[%s - %s] %s\n",
				media.TimestampFromDuration(s.Start), media.TimestampFromDuration(s.End), strings.TrimSpace(s.Text))
			if err != nil {
				return err
			}
		}
		return nil

	case FormatJSON:
		doc := jsonTranscript{
			Text:     t.Text,
			Language: t.Language,
			Duration: t.Duration.Seconds(),
			Segments: make([]jsonSegment, 0, len(t.Segments)),
		}
		if res.AudioKept {
			doc.AudioPath = res.AudioPath
		}
		for _, s := range t.Segments {
			doc.Segments = append(doc.Segments, jsonSegment{Start: s.Start.Seconds(), End: s.End.Seconds(), Text: s.Text})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)

	default:
		return fmt.Errorf("unknown output format %q (expected text, segments or json)", format)
	}
}
