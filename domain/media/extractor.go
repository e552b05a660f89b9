package media

import "context"

// AudioExtractor defines the interface for audio extraction operations
// This is a port that can be implemented by different infrastructure adapters
type AudioExtractor interface {
	// Extract demuxes the audio track described by req and writes it to outputPath,
	// overwriting any existing file
	Extract(ctx context.Context, req *AudioExtractionRequest, outputPath string) error
}

// FileChecker defines the interface for checking file existence
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}
