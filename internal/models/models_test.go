package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/scribeworks/scribe-api/pkg/transcript"
)

func TestSegmentListValueScan(t *testing.T) {
	original := SegmentList{
		{Start: 0.0, End: 5.5, Text: "Hello"},
		{Start: 5.5, End: 12.0, Text: "World"},
	}

	value, err := original.Value()
	require.NoError(t, err)

	bytes, ok := value.([]byte)
	require.True(t, ok, "Value should produce []byte")

	var decoded SegmentList
	require.NoError(t, decoded.Scan(bytes))

	assert.Equal(t, original, decoded)
}

func TestSegmentListScanNil(t *testing.T) {
	var list SegmentList
	require.NoError(t, list.Scan(nil))
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSegmentListScanString(t *testing.T) {
	var list SegmentList
	require.NoError(t, list.Scan(`[{"start":1,"end":2,"text":"hi"}]`))
	require.Len(t, list, 1)
	assert.Equal(t, transcript.Segment{Start: 1, End: 2, Text: "hi"}, list[0])
}

func TestSegmentListValueNil(t *testing.T) {
	var list SegmentList
	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}

func TestTranscriptVersionModel(t *testing.T) {
	version := TranscriptVersion{
		TranscriptID:  1,
		VersionNumber: 3,
		Text:          "Hello World",
		Segments: SegmentList{
			{Start: 0, End: 5.5, Text: "Hello"},
			{Start: 5.5, End: 12, Text: "World"},
		},
		SegmentCount: 2,
		IsCurrent:    true,
		CreatedBy:    "editor",
		ChangeNote:   "Transcription updated",
	}

	assert.Equal(t, uint(1), version.TranscriptID)
	assert.Equal(t, 3, version.VersionNumber)
	assert.Equal(t, 2, version.SegmentCount)
	assert.True(t, version.IsCurrent)
	assert.Len(t, version.Segments.Segments(), 2)
}

func TestJobPayloadHelpers(t *testing.T) {
	job := Job{
		Payload: JobPayload{
			"file_id":   float64(42), // JSON numbers decode as float64
			"model":     "base",
			"beam_size": 5,
		},
	}

	fileID, ok := job.GetPayloadInt("file_id")
	assert.True(t, ok)
	assert.Equal(t, 42, fileID)

	model, ok := job.GetPayloadString("model")
	assert.True(t, ok)
	assert.Equal(t, "base", model)

	beam, ok := job.GetPayloadInt("beam_size")
	assert.True(t, ok)
	assert.Equal(t, 5, beam)

	_, ok = job.GetPayloadString("missing")
	assert.False(t, ok)
}

func TestJobRetryLogic(t *testing.T) {
	job := Job{
		Status:     JobStatusFailed,
		RetryCount: 1,
		MaxRetries: 3,
	}

	assert.True(t, job.IsRetryable())

	// Never failed: can retry immediately
	assert.True(t, job.CanRetryNow(time.Minute))

	// Failed just now: backoff of minDelay * 2^retryCount applies
	now := time.Now()
	job.LastFailedAt = &now
	assert.False(t, job.CanRetryNow(time.Minute))

	// Failed long ago: backoff has elapsed
	past := time.Now().Add(-10 * time.Minute)
	job.LastFailedAt = &past
	assert.True(t, job.CanRetryNow(time.Minute))

	// Exhausted retries
	job.RetryCount = 3
	assert.False(t, job.IsRetryable())
	assert.False(t, job.CanRetryNow(time.Minute))
}

func TestJobTerminalStates(t *testing.T) {
	tests := []struct {
		name     string
		job      Job
		terminal bool
	}{
		{"pending", Job{Status: JobStatusPending}, false},
		{"processing", Job{Status: JobStatusProcessing}, false},
		{"completed", Job{Status: JobStatusCompleted}, true},
		{"cancelled", Job{Status: JobStatusCancelled}, true},
		{"permanently failed", Job{Status: JobStatusPermanentlyFailed}, true},
		{"failed with retries left", Job{Status: JobStatusFailed, RetryCount: 0, MaxRetries: 3}, false},
		{"failed with retries exhausted", Job{Status: JobStatusFailed, RetryCount: 3, MaxRetries: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.job.IsTerminal())
		})
	}
}

func TestJobTask(t *testing.T) {
	transcription := Job{Type: JobTypeTranscription}
	assert.Equal(t, "transcribe", transcription.Task())

	translation := Job{Type: JobTypeTranslation}
	assert.Equal(t, "translate", translation.Task())
}

func TestJobSetErrorDetails(t *testing.T) {
	job := Job{Model: gorm.Model{ID: 1}}
	job.SetErrorDetails(ErrorTypeEngine, "engine_timeout", "whisper timed out", "killed after 30m")

	assert.Equal(t, "engine", job.ErrorType)
	assert.Equal(t, "engine_timeout", job.ErrorCode)
	assert.Equal(t, "whisper timed out", job.Error)
	assert.Equal(t, "killed after 30m", job.ErrorDetails)
}

func TestStructuredJobErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("transcript_save", "saving transcript failed", "", cause)

	assert.Equal(t, "saving transcript failed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrorTypeStorage, err.Type)
}

func TestAudioFileModel(t *testing.T) {
	file := AudioFile{
		SHA256:       "abc123",
		OriginalName: "meeting.mp3",
		Path:         "/data/uploads/ab/abc123.mp3",
		SizeBytes:    1024,
		Format:       "mp3",
	}

	assert.Equal(t, "abc123", file.SHA256)
	assert.Equal(t, "meeting.mp3", file.OriginalName)
	assert.Equal(t, int64(1024), file.SizeBytes)
}
