package ffmpeg

import (
	"errors"
	"fmt"
)

var (
	ErrFFmpegNotFound   = errors.New("ffmpeg binary not found")
	ErrFFprobeNotFound  = errors.New("ffprobe binary not found")
	ErrInvalidAudioFile = errors.New("invalid or unsupported audio file")
)

// ProcessingError carries enough context to debug a failed ffmpeg or
// ffprobe invocation: the operation, the file, and the tool's stderr.
type ProcessingError struct {
	Operation string // e.g. "metadata_extraction", "wav_conversion"
	File      string
	Err       error
	Stderr    string
}

func (e *ProcessingError) Error() string {
	msg := fmt.Sprintf("ffmpeg %s failed for %s: %v", e.Operation, e.File, e.Err)
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// NewProcessingError wraps a tool failure with its invocation context.
func NewProcessingError(operation, file string, err error, stderr string) *ProcessingError {
	return &ProcessingError{Operation: operation, File: file, Err: err, Stderr: stderr}
}
