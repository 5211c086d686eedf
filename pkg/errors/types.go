package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigRequired ErrorCode = "CONFIG_REQUIRED"

	// Database errors
	ErrCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION"
	ErrCodeDatabaseQuery      ErrorCode = "DATABASE_QUERY"
	ErrCodeDatabaseMigration  ErrorCode = "DATABASE_MIGRATION"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCodeConflict      ErrorCode = "CONFLICT"

	// Validation errors
	ErrCodeValidation        ErrorCode = "VALIDATION"
	ErrCodeInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField      ErrorCode = "MISSING_FIELD"
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"

	// Transcription pipeline errors
	ErrCodeAudioProcessing ErrorCode = "AUDIO_PROCESSING"
	ErrCodeEngineFailed    ErrorCode = "ENGINE_FAILED"
	ErrCodeEngineTimeout   ErrorCode = "ENGINE_TIMEOUT"
	ErrCodeStorageQuota    ErrorCode = "STORAGE_QUOTA"

	// Internal errors
	ErrCodeInternal        ErrorCode = "INTERNAL"
	ErrCodeServiceDown     ErrorCode = "SERVICE_DOWN"
	ErrCodeResourceExhaust ErrorCode = "RESOURCE_EXHAUSTED"
	ErrCodeAPIRateLimit    ErrorCode = "API_RATE_LIMIT"

	// Authentication/Authorization errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
)

// AppError is an error with a stable machine code, an optional detail
// map, and a default HTTP status derived from the code.
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Cause    error                  `json:"-"`
	HTTPCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key/value pair for structured reporting.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// GetHTTPCode returns the status to answer with, preferring an explicit
// override on the error over the code's default.
func (e *AppError) GetHTTPCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}
	return getDefaultHTTPCode(e.Code)
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(cause error, code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

func getDefaultHTTPCode(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadyExists, ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeUnsupportedFormat:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeAPIRateLimit:
		return http.StatusTooManyRequests
	case ErrCodeEngineTimeout:
		return http.StatusRequestTimeout
	case ErrCodeServiceDown:
		return http.StatusServiceUnavailable
	case ErrCodeStorageQuota, ErrCodeResourceExhaust:
		return http.StatusInsufficientStorage
	case ErrCodeAudioProcessing:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors

// NotFound creates a not found error
func NotFound(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// AlreadyExists creates an already exists error
func AlreadyExists(resource string, id interface{}) *AppError {
	return New(ErrCodeAlreadyExists, fmt.Sprintf("%s already exists", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// ValidationError creates a validation error
func ValidationError(field string, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// MissingFieldError creates a missing field error
func MissingFieldError(field string) *AppError {
	return New(ErrCodeMissingField, fmt.Sprintf("required field '%s' is missing", field)).
		WithDetail("field", field)
}

// UnsupportedFormatError creates an error for an unknown export format
func UnsupportedFormatError(format string, supported []string) *AppError {
	return New(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format '%s'", format)).
		WithDetail("format", format).
		WithDetail("supported", supported)
}

// DatabaseError creates a database error
func DatabaseError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeDatabaseQuery, fmt.Sprintf("database %s failed", operation)).
		WithDetail("operation", operation)
}

// EngineError creates a transcription engine error
func EngineError(engine string, cause error) *AppError {
	return Wrap(cause, ErrCodeEngineFailed, fmt.Sprintf("transcription engine '%s' failed", engine)).
		WithDetail("engine", engine)
}

// AudioProcessingError creates an audio preparation error
func AudioProcessingError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeAudioProcessing, fmt.Sprintf("audio %s failed", operation)).
		WithDetail("operation", operation)
}

// QuotaExceededError creates a storage quota error
func QuotaExceededError(usedBytes, quotaBytes int64) *AppError {
	return New(ErrCodeStorageQuota, "storage quota exceeded").
		WithDetail("used_bytes", usedBytes).
		WithDetail("quota_bytes", quotaBytes)
}

// ConfigError creates a configuration error
func ConfigError(key string, reason string) *AppError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("configuration error for '%s': %s", key, reason)).
		WithDetail("key", key).
		WithDetail("reason", reason)
}

// TimeoutError creates a timeout error
func TimeoutError(operation string, timeout string) *AppError {
	return New(ErrCodeEngineTimeout, fmt.Sprintf("operation '%s' timed out after %s", operation, timeout)).
		WithDetail("operation", operation).
		WithDetail("timeout", timeout)
}

// RateLimitError creates a rate limit error
func RateLimitError(resource string, limit string) *AppError {
	return New(ErrCodeAPIRateLimit, fmt.Sprintf("rate limit exceeded for '%s': %s", resource, limit)).
		WithDetail("resource", resource).
		WithDetail("limit", limit)
}

// Is checks if an error is of a specific type
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetHTTPCode extracts the HTTP status code from an error
func GetHTTPCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}
