package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scribeworks/scribe-api/internal/models"
)

// Repository errors
var (
	ErrJobNotFound       = errors.New("job not found")
	ErrNoJobsAvailable   = errors.New("no jobs available")
	ErrJobNotRetryable   = errors.New("job cannot be retried")
	ErrJobNotCancellable = errors.New("job cannot be cancelled")
	ErrJobActive         = errors.New("job is currently being processed")
)

const (
	// retryBaseDelay is the base of the exponential backoff applied to
	// failed jobs before they become claimable again.
	retryBaseDelay = 30 * time.Second

	// claimCandidateLimit bounds how many queue heads a single claim
	// inspects while skipping jobs still inside their backoff window.
	claimCandidateLimit = 10
)

// Repository defines the interface for job persistence
type Repository interface {
	// Create operations
	CreateJob(ctx context.Context, job *models.Job) error

	// Read operations
	GetJob(ctx context.Context, id uint) (*models.Job, error)
	GetJobByUUID(ctx context.Context, jobUUID string) (*models.Job, error)
	GetJobByTypeAndPayload(ctx context.Context, jobType models.JobType, key, value string) (*models.Job, error)
	ListJobs(ctx context.Context, status models.JobStatus, limit int) ([]*models.Job, error)

	// Update operations
	ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error)
	UpdateJobProgress(ctx context.Context, jobID uint, progress int) error
	CompleteJob(ctx context.Context, jobID uint, result models.JobResult) error
	FailJobWithDetails(ctx context.Context, jobID uint, errorType models.JobErrorType, errorCode, errorMsg, errorDetails string) error
	ReleaseJob(ctx context.Context, jobID uint) error
	ResetJobForRetry(ctx context.Context, jobID uint) error
	CancelJob(ctx context.Context, jobID uint) error

	// Delete operations
	DeleteJob(ctx context.Context, jobID uint) error
	DeleteOldJobs(ctx context.Context, olderThan time.Time) (int64, error)

	// Aggregates
	Stats(ctx context.Context) (*Statistics, error)
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new job repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// CreateJob creates a new job
func (r *repository) CreateJob(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetJob retrieves a job by ID
func (r *repository) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("getting job: %w", err)
	}
	return &job, nil
}

// GetJobByUUID retrieves a job by its public UUID
func (r *repository) GetJobByUUID(ctx context.Context, jobUUID string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).Where("uuid = ?", jobUUID).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("getting job by uuid: %w", err)
	}
	return &job, nil
}

// GetJobByTypeAndPayload finds the most recent job by type and a specific payload value
func (r *repository) GetJobByTypeAndPayload(ctx context.Context, jobType models.JobType, key, value string) (*models.Job, error) {
	var job models.Job

	// json_extract yields INTEGER for numeric payload values, which never
	// equals a bound TEXT parameter; CAST normalizes both sides.
	query := r.db.WithContext(ctx).
		Where("type = ?", jobType).
		Where("CAST(json_extract(payload, ?) AS TEXT) = ?", "$."+key, value).
		Order("created_at DESC, id DESC").
		First(&job)

	if err := query.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("getting job by type and payload: %w", err)
	}

	return &job, nil
}

// ListJobs retrieves recent jobs, optionally filtered by status. An empty
// status matches every job.
func (r *repository) ListJobs(ctx context.Context, status models.JobStatus, limit int) ([]*models.Job, error) {
	var jobs []*models.Job
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, nil
}

// ClaimNextJob atomically claims the next available job for a worker.
// Failed jobs are skipped while still inside their exponential backoff
// window, so the queue head moves past them to younger work.
func (r *repository) ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error) {
	var job models.Job

	// Start a transaction for atomic claim
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Find and lock the next available jobs
		query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("(status = ?) OR (status = ? AND retry_count < max_retries)",
				models.JobStatusPending, models.JobStatusFailed)

		// Filter by job types if specified
		if len(jobTypes) > 0 {
			query = query.Where("type IN ?", jobTypes)
		}

		var candidates []models.Job
		err := query.Order("priority DESC, created_at ASC").
			Limit(claimCandidateLimit).
			Find(&candidates).Error
		if err != nil {
			return fmt.Errorf("finding job to claim: %w", err)
		}

		var claimed *models.Job
		for i := range candidates {
			c := &candidates[i]
			if c.CanProcess() || c.CanRetryNow(retryBaseDelay) {
				claimed = c
				break
			}
		}
		if claimed == nil {
			return ErrNoJobsAvailable
		}

		// Update job status and worker
		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":     models.JobStatusProcessing,
			"worker_id":  workerID,
			"started_at": &now,
		}

		// Increment retry count if this is a retry
		if claimed.Status == models.JobStatusFailed {
			updates["retry_count"] = claimed.RetryCount + 1
			claimed.RetryCount++
		}

		if err := tx.Model(claimed).Updates(updates).Error; err != nil {
			return fmt.Errorf("updating claimed job: %w", err)
		}

		claimed.Status = models.JobStatusProcessing
		claimed.WorkerID = workerID
		claimed.StartedAt = &now

		job = *claimed
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &job, nil
}

// UpdateJobProgress updates the progress of a job
func (r *repository) UpdateJobProgress(ctx context.Context, jobID uint, progress int) error {
	// Ensure progress is within bounds
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}

	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND status = ?", jobID, models.JobStatusProcessing).
		Update("progress", progress)

	if result.Error != nil {
		return fmt.Errorf("updating job progress: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// CompleteJob marks a job as completed with a result
func (r *repository) CompleteJob(ctx context.Context, jobID uint, result models.JobResult) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":       models.JobStatusCompleted,
		"progress":     100,
		"completed_at": &now,
		"result":       result,
	}

	res := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", jobID).
		Updates(updates)

	if res.Error != nil {
		return fmt.Errorf("completing job: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// FailJobWithDetails marks a job as failed with classified error information.
// Not-found errors skip retries entirely: a source file that is gone will
// still be gone on the next attempt.
func (r *repository) FailJobWithDetails(ctx context.Context, jobID uint, errorType models.JobErrorType, errorCode, errorMsg, errorDetails string) error {
	now := time.Now().UTC()

	// Get current job state
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("finding job to fail: %w", err)
	}

	newRetryCount := job.RetryCount + 1

	var status models.JobStatus
	if errorType == models.ErrorTypeNotFound || newRetryCount >= job.MaxRetries {
		status = models.JobStatusPermanentlyFailed
	} else {
		status = models.JobStatusFailed
	}

	updates := map[string]interface{}{
		"status":         status,
		"error":          errorMsg,
		"error_type":     string(errorType),
		"error_code":     errorCode,
		"error_details":  errorDetails,
		"last_failed_at": &now,
		"retry_count":    newRetryCount,
		"worker_id":      "", // Clear worker ID
	}

	// Only set completed_at for permanently failed jobs
	if status == models.JobStatusPermanentlyFailed {
		updates["completed_at"] = &now
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", jobID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failing job: %w", err)
	}

	return nil
}

// ReleaseJob releases a job back to pending status (e.g., if worker crashes)
func (r *repository) ReleaseJob(ctx context.Context, jobID uint) error {
	updates := map[string]interface{}{
		"status":     models.JobStatusPending,
		"worker_id":  "",
		"started_at": nil,
		"progress":   0,
	}

	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND status = ?", jobID, models.JobStatusProcessing).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("releasing job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// ResetJobForRetry returns a failed or permanently failed job to pending
// with a fresh retry budget and cleared error state.
func (r *repository) ResetJobForRetry(ctx context.Context, jobID uint) error {
	updates := map[string]interface{}{
		"status":         models.JobStatusPending,
		"worker_id":      "",
		"started_at":     nil,
		"completed_at":   nil,
		"last_failed_at": nil,
		"progress":       0,
		"retry_count":    0,
		"error":          "",
		"error_type":     "",
		"error_code":     "",
		"error_details":  "",
	}

	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND status IN ?", jobID, []models.JobStatus{
			models.JobStatusFailed,
			models.JobStatusPermanentlyFailed,
		}).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("resetting job for retry: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// CancelJob cancels a job that has not started processing yet
func (r *repository) CancelJob(ctx context.Context, jobID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND status = ?", jobID, models.JobStatusPending).
		Update("status", models.JobStatusCancelled)

	if result.Error != nil {
		return fmt.Errorf("cancelling job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// DeleteJob removes a job row. Processing jobs are protected; cancel or
// release them first.
func (r *repository) DeleteJob(ctx context.Context, jobID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status != ?", jobID, models.JobStatusProcessing).
		Delete(&models.Job{})

	if result.Error != nil {
		return fmt.Errorf("deleting job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// DeleteOldJobs deletes terminal jobs older than the specified time
func (r *repository) DeleteOldJobs(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Where("status IN ?", []models.JobStatus{
			models.JobStatusCompleted,
			models.JobStatusFailed,
			models.JobStatusPermanentlyFailed,
			models.JobStatusCancelled,
		}).
		Delete(&models.Job{})

	if result.Error != nil {
		return 0, fmt.Errorf("deleting old jobs: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// Stats aggregates queue counts and the average processing time of
// completed jobs.
func (r *repository) Stats(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}

	var rows []struct {
		Status models.JobStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting jobs by status: %w", err)
	}

	for _, row := range rows {
		stats.TotalJobs += row.Count
		switch row.Status {
		case models.JobStatusPending:
			stats.PendingJobs = row.Count
		case models.JobStatusProcessing:
			stats.ProcessingJobs = row.Count
		case models.JobStatusCompleted:
			stats.CompletedJobs = row.Count
		case models.JobStatusFailed:
			stats.FailedJobs = row.Count
		case models.JobStatusPermanentlyFailed:
			stats.PermanentlyFailedJobs = row.Count
		case models.JobStatusCancelled:
			stats.CancelledJobs = row.Count
		}
	}

	if stats.CompletedJobs > 0 {
		var avg struct {
			AvgSeconds float64
		}
		err = r.db.WithContext(ctx).
			Model(&models.Job{}).
			Select("COALESCE(AVG((julianday(completed_at) - julianday(started_at)) * 86400.0), 0) AS avg_seconds").
			Where("status = ? AND started_at IS NOT NULL AND completed_at IS NOT NULL", models.JobStatusCompleted).
			Scan(&avg).Error
		if err != nil {
			return nil, fmt.Errorf("averaging processing time: %w", err)
		}
		stats.AvgProcessingSeconds = avg.AvgSeconds
	}

	return stats, nil
}
