package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/scribeworks/scribe-api/internal/models"
)

const (
	DefaultMaxRetries = 3
	DefaultPriority   = 0
	DefaultListLimit  = 50
)

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) EnqueueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, opts ...JobOption) (*models.Job, error) {
	cfg := &jobConfig{
		Priority:   DefaultPriority,
		MaxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	job := &models.Job{
		UUID:       uuid.New().String(),
		Type:       jobType,
		Status:     models.JobStatusPending,
		Payload:    payload,
		Priority:   cfg.Priority,
		MaxRetries: cfg.MaxRetries,
		CreatedBy:  cfg.CreatedBy,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	log.Printf("[DEBUG] Enqueued %s job %s with priority %d", jobType, job.UUID, job.Priority)

	return job, nil
}

func (s *service) EnqueueUniqueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, uniqueKey string, opts ...JobOption) (*models.Job, error) {
	uniqueValue, ok := payload[uniqueKey]
	if !ok {
		return nil, fmt.Errorf("unique key %s not found in payload", uniqueKey)
	}

	existingJob, err := s.repo.GetJobByTypeAndPayload(ctx, jobType, uniqueKey, fmt.Sprintf("%v", uniqueValue))
	if err == nil && existingJob != nil {
		if !existingJob.IsTerminal() {
			log.Printf("[DEBUG] Job already exists for %s with %s=%v (UUID: %s, Status: %s)",
				jobType, uniqueKey, uniqueValue, existingJob.UUID, existingJob.Status)
			return existingJob, nil
		}
	}

	return s.EnqueueJob(ctx, jobType, payload, opts...)
}

func (s *service) GetJob(ctx context.Context, jobID uint) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting job: %w", err)
	}
	return job, nil
}

func (s *service) GetJobByUUID(ctx context.Context, jobUUID string) (*models.Job, error) {
	job, err := s.repo.GetJobByUUID(ctx, jobUUID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting job by uuid: %w", err)
	}
	return job, nil
}

func (s *service) GetJobStatus(ctx context.Context, jobID uint) (models.JobStatus, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return "", err
	}
	return job.Status, nil
}

func (s *service) ListJobs(ctx context.Context, status models.JobStatus, limit int) ([]*models.Job, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	jobs, err := s.repo.ListJobs(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, nil
}

func (s *service) ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error) {
	job, err := s.repo.ClaimNextJob(ctx, workerID, jobTypes)
	if err != nil {
		if errors.Is(err, ErrNoJobsAvailable) {
			return nil, err
		}
		return nil, fmt.Errorf("claiming job: %w", err)
	}

	log.Printf("[DEBUG] Worker %s claimed %s job %s", workerID, job.Type, job.UUID)

	return job, nil
}

func (s *service) UpdateProgress(ctx context.Context, jobID uint, progress int) error {
	if err := s.repo.UpdateJobProgress(ctx, jobID, progress); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("updating job progress: %w", err)
	}

	if progress%10 == 0 || progress == 100 {
		log.Printf("[DEBUG] Job %d progress: %d%%", jobID, progress)
	}

	return nil
}

func (s *service) CompleteJob(ctx context.Context, jobID uint, result models.JobResult) error {
	if err := s.repo.CompleteJob(ctx, jobID, result); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("completing job: %w", err)
	}

	log.Printf("[DEBUG] Job %d completed successfully", jobID)

	return nil
}

// FailJob records a failure, classifying it when the error carries
// structured details.
func (s *service) FailJob(ctx context.Context, jobID uint, jobErr error) error {
	var structured *models.StructuredJobError
	if errors.As(jobErr, &structured) {
		return s.FailJobWithDetails(ctx, jobID, structured.Type, structured.Code, structured.Message, structured.Details)
	}
	return s.FailJobWithDetails(ctx, jobID, models.ErrorTypeSystem, "", jobErr.Error(), "")
}

func (s *service) FailJobWithDetails(ctx context.Context, jobID uint, errorType models.JobErrorType, errorCode, errorMsg, errorDetails string) error {
	if err := s.repo.FailJobWithDetails(ctx, jobID, errorType, errorCode, errorMsg, errorDetails); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("failing job: %w", err)
	}

	// Check if job is retryable
	job, _ := s.repo.GetJob(ctx, jobID)
	if job != nil && job.IsRetryable() {
		log.Printf("[ERROR] Job %d failed with %s error (retry %d/%d): %s",
			jobID, errorType, job.RetryCount, job.MaxRetries, errorMsg)
	} else {
		log.Printf("[ERROR] Job %d failed permanently with %s error: %s", jobID, errorType, errorMsg)
	}

	return nil
}

func (s *service) ReleaseJob(ctx context.Context, jobID uint) error {
	if err := s.repo.ReleaseJob(ctx, jobID); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("releasing job: %w", err)
	}

	log.Printf("[DEBUG] Job %d released back to pending", jobID)

	return nil
}

// RetryJob resets a failed or permanently failed job to pending with a
// fresh retry budget.
func (s *service) RetryJob(ctx context.Context, jobUUID string) (*models.Job, error) {
	job, err := s.repo.GetJobByUUID(ctx, jobUUID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting job for retry: %w", err)
	}

	if !job.CanBeRetriedManually() {
		return nil, fmt.Errorf("%w: status is %s (only failed or permanently_failed jobs can be retried)",
			ErrJobNotRetryable, job.Status)
	}

	if err := s.repo.ResetJobForRetry(ctx, job.ID); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resetting job for retry: %w", err)
	}

	updatedJob, err := s.repo.GetJob(ctx, job.ID)
	if err != nil {
		return nil, fmt.Errorf("getting updated job after retry: %w", err)
	}

	log.Printf("[DEBUG] Job %s manually retried (was %s, now %s)", jobUUID, job.Status, updatedJob.Status)

	return updatedJob, nil
}

// CancelJob cancels a pending job.
func (s *service) CancelJob(ctx context.Context, jobUUID string) (*models.Job, error) {
	job, err := s.repo.GetJobByUUID(ctx, jobUUID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting job for cancel: %w", err)
	}

	if job.Status != models.JobStatusPending {
		return nil, fmt.Errorf("%w: status is %s (only pending jobs can be cancelled)",
			ErrJobNotCancellable, job.Status)
	}

	if err := s.repo.CancelJob(ctx, job.ID); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("cancelling job: %w", err)
	}

	updatedJob, err := s.repo.GetJob(ctx, job.ID)
	if err != nil {
		return nil, fmt.Errorf("getting updated job after cancel: %w", err)
	}

	log.Printf("[DEBUG] Job %s cancelled", jobUUID)

	return updatedJob, nil
}

// DeleteJob removes a job that is not currently being processed.
func (s *service) DeleteJob(ctx context.Context, jobUUID string) error {
	job, err := s.repo.GetJobByUUID(ctx, jobUUID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("getting job for delete: %w", err)
	}

	if job.Status == models.JobStatusProcessing {
		return fmt.Errorf("%w: release or wait for worker %s", ErrJobActive, job.WorkerID)
	}

	if err := s.repo.DeleteJob(ctx, job.ID); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("deleting job: %w", err)
	}

	log.Printf("[DEBUG] Job %s deleted", jobUUID)

	return nil
}

func (s *service) CleanupOldJobs(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("retention days must be positive")
	}

	cutoffTime := time.Now().UTC().AddDate(0, 0, -retentionDays)

	deleted, err := s.repo.DeleteOldJobs(ctx, cutoffTime)
	if err != nil {
		return 0, fmt.Errorf("cleaning up old jobs: %w", err)
	}

	if deleted > 0 {
		log.Printf("[DEBUG] Deleted %d old jobs (older than %d days)", deleted, retentionDays)
	}

	return deleted, nil
}

func (s *service) Stats(ctx context.Context) (*Statistics, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting job statistics: %w", err)
	}
	return stats, nil
}
