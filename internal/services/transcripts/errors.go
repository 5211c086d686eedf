package transcripts

import "errors"

// Common errors
var (
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrVersionNotFound    = errors.New("version not found")
	ErrInvalidSegments    = errors.New("invalid segments")
	ErrInvalidKeepCount   = errors.New("keep count must be at least 1")
)
