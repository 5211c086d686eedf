package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// JobStatus represents the status of a job in the queue
type JobStatus string

const (
	JobStatusPending           JobStatus = "pending"
	JobStatusProcessing        JobStatus = "processing"
	JobStatusCompleted         JobStatus = "completed"
	JobStatusFailed            JobStatus = "failed"
	JobStatusPermanentlyFailed JobStatus = "permanently_failed"
	JobStatusCancelled         JobStatus = "cancelled"
)

// JobType represents the type of job to be processed
type JobType string

const (
	// JobTypeTranscription transcribes audio in its spoken language.
	JobTypeTranscription JobType = "transcription"
	// JobTypeTranslation transcribes audio and translates it to English.
	JobTypeTranslation JobType = "translation"
)

// JobErrorType represents the category of error that occurred
type JobErrorType string

const (
	ErrorTypeAudio    JobErrorType = "audio"     // Probe or conversion of the source audio failed
	ErrorTypeEngine   JobErrorType = "engine"    // Whisper engine invocation failed
	ErrorTypeStorage  JobErrorType = "storage"   // Database or filesystem write failed
	ErrorTypeSystem   JobErrorType = "system"    // Worker or other system error
	ErrorTypeNotFound JobErrorType = "not_found" // Source file permanently missing
)

// StructuredJobError represents a structured error with classification information
type StructuredJobError struct {
	Type     JobErrorType
	Code     string
	Message  string
	Details  string
	Original error
}

func (e *StructuredJobError) Error() string {
	return e.Message
}

func (e *StructuredJobError) Unwrap() error {
	return e.Original
}

func newJobError(errType JobErrorType, code, message, details string, original error) *StructuredJobError {
	return &StructuredJobError{
		Type:     errType,
		Code:     code,
		Message:  message,
		Details:  details,
		Original: original,
	}
}

// NewAudioError classifies a probe or conversion failure.
func NewAudioError(code, message, details string, err error) *StructuredJobError {
	return newJobError(ErrorTypeAudio, code, message, details, err)
}

// NewEngineError classifies a whisper engine failure.
func NewEngineError(code, message, details string, err error) *StructuredJobError {
	return newJobError(ErrorTypeEngine, code, message, details, err)
}

// NewStorageError classifies a database or filesystem failure.
func NewStorageError(code, message, details string, err error) *StructuredJobError {
	return newJobError(ErrorTypeStorage, code, message, details, err)
}

// NewSystemError classifies a worker or infrastructure failure.
func NewSystemError(code, message, details string, err error) *StructuredJobError {
	return newJobError(ErrorTypeSystem, code, message, details, err)
}

// NewNotFoundError classifies a permanently missing resource. Jobs failed
// with this type are not retried.
func NewNotFoundError(code, message, details string, err error) *StructuredJobError {
	return newJobError(ErrorTypeNotFound, code, message, details, err)
}

// Job represents a background job in the queue
type Job struct {
	gorm.Model
	UUID         string     `json:"uuid" gorm:"uniqueIndex;not null"`
	Type         JobType    `json:"type" gorm:"not null;index:idx_jobs_type_status"`
	Status       JobStatus  `json:"status" gorm:"default:'pending';index:idx_jobs_status_priority"`
	Payload      JobPayload `json:"payload" gorm:"type:json"`
	Priority     int        `json:"priority" gorm:"default:0;index:idx_jobs_status_priority"`
	MaxRetries   int        `json:"max_retries" gorm:"default:3"`
	RetryCount   int        `json:"retry_count" gorm:"default:0"`
	Progress     int        `json:"progress" gorm:"default:0"` // 0-100
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	LastFailedAt *time.Time `json:"last_failed_at"`
	Error        string     `json:"error,omitempty"`
	Result       JobResult  `json:"result,omitempty" gorm:"type:json"`
	WorkerID     string     `json:"worker_id,omitempty"` // ID of the worker processing this job

	// Error classification fields
	ErrorType    string `json:"error_type,omitempty"`    // "audio", "engine", "storage", "system"
	ErrorCode    string `json:"error_code,omitempty"`    // "probe_failed", "engine_timeout", etc.
	ErrorDetails string `json:"error_details,omitempty"` // Technical details for debugging

	// Metadata
	CreatedBy string `json:"created_by,omitempty"` // Optional user/system identifier
}

// JobPayload is the input document for a job, stored as a JSON column.
type JobPayload map[string]interface{}

// Value implements driver.Valuer.
func (p JobPayload) Value() (driver.Value, error) { return jsonColumnValue(p) }

// Scan implements sql.Scanner.
func (p *JobPayload) Scan(value interface{}) error {
	return jsonColumnScan((*map[string]interface{})(p), value)
}

// JobResult is the output document of a completed job, stored as a JSON column.
type JobResult map[string]interface{}

// Value implements driver.Valuer.
func (r JobResult) Value() (driver.Value, error) { return jsonColumnValue(r) }

// Scan implements sql.Scanner.
func (r *JobResult) Scan(value interface{}) error {
	return jsonColumnScan((*map[string]interface{})(r), value)
}

func jsonColumnValue(m map[string]interface{}) (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// jsonColumnScan accepts both []byte and string; which one arrives depends
// on the driver.
func jsonColumnScan(dst *map[string]interface{}, value interface{}) error {
	switch raw := value.(type) {
	case nil:
		*dst = make(map[string]interface{})
		return nil
	case []byte:
		return json.Unmarshal(raw, dst)
	case string:
		return json.Unmarshal([]byte(raw), dst)
	default:
		return fmt.Errorf("cannot scan %T into a JSON column", value)
	}
}

// IsRetryable reports whether the job has retry attempts left.
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// CanRetryNow reports whether the retry backoff has elapsed. The delay
// doubles with every attempt: minDelay * 2^retryCount.
func (j *Job) CanRetryNow(minDelay time.Duration) bool {
	if !j.IsRetryable() {
		return false
	}
	if j.LastFailedAt == nil {
		return true
	}

	backoff := minDelay * time.Duration(1<<uint(j.RetryCount))
	return time.Since(*j.LastFailedAt) >= backoff
}

// CanProcess reports whether the job is waiting to be claimed.
func (j *Job) CanProcess() bool {
	return j.Status == JobStatusPending
}

// IsTerminal reports whether the job will never run again, including failed
// jobs that have exhausted their retries.
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted ||
		j.Status == JobStatusCancelled ||
		j.Status == JobStatusPermanentlyFailed ||
		(j.Status == JobStatusFailed && !j.IsRetryable())
}

func (j *Job) payloadValue(key string) (interface{}, bool) {
	if j.Payload == nil {
		return nil, false
	}
	val, ok := j.Payload[key]
	return val, ok
}

// GetPayloadString retrieves a string value from the payload.
func (j *Job) GetPayloadString(key string) (string, bool) {
	val, ok := j.payloadValue(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetPayloadInt retrieves an integer value from the payload. JSON numbers
// arrive as float64 after a round trip through the database.
func (j *Job) GetPayloadInt(key string) (int, bool) {
	val, ok := j.payloadValue(key)
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// CanBeRetriedManually returns true if the job can be manually retried
func (j *Job) CanBeRetriedManually() bool {
	return j.Status == JobStatusFailed || j.Status == JobStatusPermanentlyFailed
}

// SetErrorDetails sets error classification information
func (j *Job) SetErrorDetails(errorType JobErrorType, errorCode, errorMsg, errorDetails string) {
	j.ErrorType = string(errorType)
	j.ErrorCode = errorCode
	j.Error = errorMsg
	j.ErrorDetails = errorDetails
}

// Task returns the whisper task for this job type.
func (j *Job) Task() string {
	if j.Type == JobTypeTranslation {
		return "translate"
	}
	return "transcribe"
}

// TableName specifies the table name for GORM
func (Job) TableName() string {
	return "jobs"
}
