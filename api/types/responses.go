package types

// Status constants for API responses
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusProcessing = "processing"
	StatusFailed     = "failed"
	StatusQueued     = "queued"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}
