package jobs

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/internal/services/jobs"
)

// CreateJobRequest represents the request to queue a transcription
// @Description Request body for submitting an audio file for transcription or translation
type CreateJobRequest struct {
	FileID     uint   `json:"file_id" binding:"required" example:"12" description:"Uploaded audio file to transcribe"`
	Type       string `json:"type" example:"transcription" description:"Job type: transcription (default) or translation"`
	Model      string `json:"model" example:"base" description:"Whisper model name; validated against the model manifest"`
	Language   string `json:"language" example:"en" description:"Source language hint; omit for auto-detection"`
	BeamSize   int    `json:"beam_size" example:"5" description:"Beam search width; omit for the engine default"`
	Priority   int    `json:"priority" example:"0" description:"Higher runs earlier"`
	MaxRetries int    `json:"max_retries" example:"3" description:"Automatic retry budget"`
	Unique     bool   `json:"unique" description:"Reuse an active job for the same file instead of queueing another"`
	CreatedBy  string `json:"created_by" example:"uploader@example.com"`
}

// JobResponse is the API view of a queue entry
type JobResponse struct {
	UUID         string            `json:"uuid"`
	Type         models.JobType    `json:"type"`
	Status       models.JobStatus  `json:"status"`
	Progress     int               `json:"progress"`
	Priority     int               `json:"priority"`
	RetryCount   int               `json:"retry_count"`
	MaxRetries   int               `json:"max_retries"`
	Payload      models.JobPayload `json:"payload,omitempty"`
	Result       models.JobResult  `json:"result,omitempty"`
	Error        string            `json:"error,omitempty"`
	ErrorType    string            `json:"error_type,omitempty"`
	ErrorCode    string            `json:"error_code,omitempty"`
	WorkerID     string            `json:"worker_id,omitempty"`
	CreatedBy    string            `json:"created_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	StartedAt    *time.Time        `json:"started_at,omitempty"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
	LastFailedAt *time.Time        `json:"last_failed_at,omitempty"`
}

func toJobResponse(job *models.Job) JobResponse {
	return JobResponse{
		UUID:         job.UUID,
		Type:         job.Type,
		Status:       job.Status,
		Progress:     job.Progress,
		Priority:     job.Priority,
		RetryCount:   job.RetryCount,
		MaxRetries:   job.MaxRetries,
		Payload:      job.Payload,
		Result:       job.Result,
		Error:        job.Error,
		ErrorType:    job.ErrorType,
		ErrorCode:    job.ErrorCode,
		WorkerID:     job.WorkerID,
		CreatedBy:    job.CreatedBy,
		CreatedAt:    job.CreatedAt,
		StartedAt:    job.StartedAt,
		CompletedAt:  job.CompletedAt,
		LastFailedAt: job.LastFailedAt,
	}
}

// respondServiceError maps queue sentinels onto HTTP statuses. Lifecycle
// conflicts (retrying a running job, deleting a claimed one) are 409s.
func respondServiceError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, jobs.ErrJobNotFound):
		types.SendNotFound(c, "Job not found")
	case errors.Is(err, jobs.ErrJobNotRetryable):
		types.SendConflict(c, err.Error())
	case errors.Is(err, jobs.ErrJobNotCancellable):
		types.SendConflict(c, err.Error())
	case errors.Is(err, jobs.ErrJobActive):
		types.SendConflict(c, err.Error())
	default:
		types.SendInternalError(c, fmt.Sprintf("Failed to %s: %v", action, err))
	}
}
