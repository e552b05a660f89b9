package media

import "fmt"

// AudioExtractionRequest represents a request to extract the audio track from a video
type AudioExtractionRequest struct {
	SourceVideoPath string
	Format          AudioFormat
	StartTime       *Timestamp // Optional: start of the clip range
	EndTime         *Timestamp // Optional: end of the clip range
}

// NewAudioExtractionRequest creates a new AudioExtractionRequest with validation.
// Zero fields of format are filled from DefaultAudioFormat.
func NewAudioExtractionRequest(sourcePath string, format AudioFormat) (*AudioExtractionRequest, error) {
	if sourcePath == "" {
		return nil, ErrNoSourceVideo
	}

	format = format.WithDefaults()
	if err := format.Validate(); err != nil {
		return nil, err
	}

	return &AudioExtractionRequest{
		SourceVideoPath: sourcePath,
		Format:          format,
	}, nil
}

// NewAudioExtractionRequestWithTimestamps creates a request limited to a start/end range
// of the source video
func NewAudioExtractionRequestWithTimestamps(sourcePath string, format AudioFormat, startTime, endTime string) (*AudioExtractionRequest, error) {
	req, err := NewAudioExtractionRequest(sourcePath, format)
	if err != nil {
		return nil, err
	}

	start, err := ParseTimestamp(startTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}

	end, err := ParseTimestamp(endTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}

	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidRange, start, end)
	}

	req.StartTime = &start
	req.EndTime = &end
	return req, nil
}

// HasTimestamps returns true if the request has start/end timestamps for extraction
func (r *AudioExtractionRequest) HasTimestamps() bool {
	return r.StartTime != nil && r.EndTime != nil
}
