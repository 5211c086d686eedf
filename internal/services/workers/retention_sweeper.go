package workers

import (
	"context"
	"log"
	"time"

	"github.com/scribeworks/scribe-api/internal/services/files"
	"github.com/scribeworks/scribe-api/internal/services/jobs"
	"github.com/scribeworks/scribe-api/internal/services/transcripts"
)

// RetentionSweeper periodically applies the retention policy: transcript
// versions beyond the keep count, terminal jobs past their age limit, and
// audio files no job references anymore.
type RetentionSweeper struct {
	jobService        jobs.Service
	transcriptService transcripts.Service
	fileService       files.Service
	interval          time.Duration
	keepVersions      int
	jobMaxAgeDays     int
	cancel            context.CancelFunc
}

// NewRetentionSweeper creates a new retention sweeper
func NewRetentionSweeper(
	jobService jobs.Service,
	transcriptService transcripts.Service,
	fileService files.Service,
	interval time.Duration,
	keepVersions int,
	jobMaxAgeDays int,
) *RetentionSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if keepVersions < 1 {
		keepVersions = 10
	}
	if jobMaxAgeDays < 1 {
		jobMaxAgeDays = 30
	}

	return &RetentionSweeper{
		jobService:        jobService,
		transcriptService: transcriptService,
		fileService:       fileService,
		interval:          interval,
		keepVersions:      keepVersions,
		jobMaxAgeDays:     jobMaxAgeDays,
	}
}

// Start begins the retention sweeper
func (s *RetentionSweeper) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// Run initial sweep
	s.sweep(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep(ctx)
			case <-ctx.Done():
				log.Println("[INFO] Retention sweeper stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Retention sweeper started (interval: %v, keep %d versions, job max age: %d days)",
		s.interval, s.keepVersions, s.jobMaxAgeDays)
}

// Stop stops the retention sweeper
func (s *RetentionSweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// sweep applies the retention policy once. Each step runs even when an
// earlier one fails.
func (s *RetentionSweeper) sweep(ctx context.Context) {
	prunedVersions, err := s.transcriptService.PruneAllVersions(ctx, s.keepVersions)
	if err != nil {
		log.Printf("[WARNING] Retention sweep: pruning versions failed: %v", err)
	}

	deletedJobs, err := s.jobService.CleanupOldJobs(ctx, s.jobMaxAgeDays)
	if err != nil {
		log.Printf("[WARNING] Retention sweep: cleaning up jobs failed: %v", err)
	}

	// Files age out on the job window: once the old jobs are gone, nothing
	// protects their audio from the orphan sweep
	maxAge := time.Duration(s.jobMaxAgeDays) * 24 * time.Hour
	removedFiles, err := s.fileService.CleanupOrphans(ctx, maxAge)
	if err != nil {
		log.Printf("[WARNING] Retention sweep: cleaning up orphaned files failed: %v", err)
	}

	if prunedVersions > 0 || deletedJobs > 0 || removedFiles > 0 {
		log.Printf("[INFO] Retention sweep: pruned %d version(s), deleted %d job(s), removed %d orphaned file(s)",
			prunedVersions, deletedJobs, removedFiles)
	}
}
