package jobs

import (
	"context"

	"github.com/scribeworks/scribe-api/internal/models"
)

// Service defines the business logic interface for job operations
type Service interface {
	// Enqueue operations
	EnqueueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, opts ...JobOption) (*models.Job, error)
	EnqueueUniqueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, uniqueKey string, opts ...JobOption) (*models.Job, error)

	// Status and retrieval
	GetJob(ctx context.Context, jobID uint) (*models.Job, error)
	GetJobByUUID(ctx context.Context, jobUUID string) (*models.Job, error)
	GetJobStatus(ctx context.Context, jobID uint) (models.JobStatus, error)
	ListJobs(ctx context.Context, status models.JobStatus, limit int) ([]*models.Job, error)

	// Worker operations (used by worker pool)
	ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error)
	UpdateProgress(ctx context.Context, jobID uint, progress int) error
	CompleteJob(ctx context.Context, jobID uint, result models.JobResult) error
	FailJob(ctx context.Context, jobID uint, err error) error
	FailJobWithDetails(ctx context.Context, jobID uint, errorType models.JobErrorType, errorCode, errorMsg, errorDetails string) error
	ReleaseJob(ctx context.Context, jobID uint) error

	// Lifecycle operations (exposed through the API)
	RetryJob(ctx context.Context, jobUUID string) (*models.Job, error)
	CancelJob(ctx context.Context, jobUUID string) (*models.Job, error)
	DeleteJob(ctx context.Context, jobUUID string) error

	// Maintenance
	CleanupOldJobs(ctx context.Context, retentionDays int) (int64, error)
	Stats(ctx context.Context) (*Statistics, error)
}

// Statistics summarizes the state of the job queue.
type Statistics struct {
	TotalJobs             int64   `json:"total_jobs"`
	PendingJobs           int64   `json:"pending_jobs"`
	ProcessingJobs        int64   `json:"processing_jobs"`
	CompletedJobs         int64   `json:"completed_jobs"`
	FailedJobs            int64   `json:"failed_jobs"`
	PermanentlyFailedJobs int64   `json:"permanently_failed_jobs"`
	CancelledJobs         int64   `json:"cancelled_jobs"`
	AvgProcessingSeconds  float64 `json:"avg_processing_seconds"`
}

// JobOption is a functional option for configuring jobs
type JobOption func(*jobConfig)

// jobConfig holds configuration for a job
type jobConfig struct {
	Priority   int
	MaxRetries int
	CreatedBy  string
}

// WithPriority sets the priority of a job (higher = more priority)
func WithPriority(priority int) JobOption {
	return func(cfg *jobConfig) {
		cfg.Priority = priority
	}
}

// WithMaxRetries sets the maximum number of retries for a job
func WithMaxRetries(retries int) JobOption {
	return func(cfg *jobConfig) {
		cfg.MaxRetries = retries
	}
}

// WithCreatedBy sets who created the job
func WithCreatedBy(createdBy string) JobOption {
	return func(cfg *jobConfig) {
		cfg.CreatedBy = createdBy
	}
}
