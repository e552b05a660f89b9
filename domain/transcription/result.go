package transcription

import "time"

// Segment is a time-aligned piece of the transcript
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Result is the output of one inference pass.
// Text is the engine's full transcript, unmodified.
type Result struct {
	Text     string
	Language string
	Duration time.Duration
	Segments []Segment
}

// SecondsToDuration converts the fractional seconds engines report
func SecondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
