package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/internal/services/jobs"
)

// knownJobTypes is the probe list for RegisterProcessor. A worker only
// claims types listed here.
var knownJobTypes = []models.JobType{
	models.JobTypeTranscription,
	models.JobTypeTranslation,
}

// JobProcessor handles one or more job types pulled off the queue.
type JobProcessor interface {
	ProcessJob(ctx context.Context, job *models.Job) error
	CanProcess(jobType models.JobType) bool
}

// Worker polls the job queue and dispatches claimed jobs to its processors.
type Worker struct {
	id             string
	jobService     jobs.Service
	processors     []JobProcessor
	supportedTypes []models.JobType
	pollInterval   time.Duration
	stopChan       chan struct{}
	wg             sync.WaitGroup
}

// NewWorker creates a worker. Processors must be registered before Start.
func NewWorker(id string, jobService jobs.Service, pollInterval time.Duration) *Worker {
	return &Worker{
		id:           id,
		jobService:   jobService,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

// RegisterProcessor adds a processor and refreshes the set of job types
// this worker claims. Not safe to call after Start.
func (w *Worker) RegisterProcessor(processor JobProcessor) {
	w.processors = append(w.processors, processor)

	w.supportedTypes = w.supportedTypes[:0]
	for _, jobType := range knownJobTypes {
		for _, p := range w.processors {
			if p.CanProcess(jobType) {
				w.supportedTypes = append(w.supportedTypes, jobType)
				break
			}
		}
	}
}

// Start launches the polling loop.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop signals the loop to exit and blocks until it has.
func (w *Worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	log.Printf("[INFO] Worker %s started (poll interval: %v)", w.id, w.pollInterval)
	defer log.Printf("[INFO] Worker %s stopped", w.id)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.drainQueue(ctx)
		}
	}
}

// drainQueue processes jobs back to back until the queue is empty, so a
// burst of enqueues is not paced by the poll interval.
func (w *Worker) drainQueue(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		default:
		}

		claimed, err := w.claimAndProcess(ctx)
		if err != nil {
			log.Printf("[ERROR] Worker %s: %v", w.id, err)
			return
		}
		if !claimed {
			return
		}
	}
}

// processNextJob claims a single job and runs it to completion or failure.
// An empty queue is not an error.
func (w *Worker) processNextJob(ctx context.Context) error {
	_, err := w.claimAndProcess(ctx)
	return err
}

func (w *Worker) claimAndProcess(ctx context.Context) (bool, error) {
	if len(w.supportedTypes) == 0 {
		return false, fmt.Errorf("no job processors registered")
	}

	job, err := w.jobService.ClaimNextJob(ctx, w.id, w.supportedTypes)
	if err != nil {
		if errors.Is(err, jobs.ErrNoJobsAvailable) {
			return false, nil
		}
		return false, err
	}

	processor := w.processorFor(job.Type)
	if processor == nil {
		// Should be unreachable: supportedTypes is derived from the
		// processors. Put the job back rather than strand it.
		if relErr := w.jobService.ReleaseJob(ctx, job.ID); relErr != nil {
			log.Printf("[WARNING] Worker %s: failed to release job %s: %v", w.id, job.UUID, relErr)
		}
		return false, fmt.Errorf("no processor for job type %s", job.Type)
	}

	if err := processor.ProcessJob(ctx, job); err != nil {
		w.recordFailure(ctx, job, err)
		return true, fmt.Errorf("job processing failed: %w", err)
	}

	log.Printf("[INFO] Worker %s completed job %s", w.id, job.UUID)
	return true, nil
}

// recordFailure marks the job failed, carrying the processor's error
// classification into the job row when it provided one. Classification
// drives the retry policy (not_found fails permanently).
func (w *Worker) recordFailure(ctx context.Context, job *models.Job, procErr error) {
	var structured *models.StructuredJobError
	var failErr error
	if errors.As(procErr, &structured) {
		failErr = w.jobService.FailJobWithDetails(ctx, job.ID, structured.Type, structured.Code, structured.Message, structured.Details)
	} else {
		failErr = w.jobService.FailJob(ctx, job.ID, procErr)
	}
	if failErr != nil {
		log.Printf("[ERROR] Worker %s: failed to mark job %s as failed: %v", w.id, job.UUID, failErr)
	}
}

func (w *Worker) processorFor(jobType models.JobType) JobProcessor {
	for _, p := range w.processors {
		if p.CanProcess(jobType) {
			return p
		}
	}
	return nil
}

// WorkerPool runs a fixed set of workers over one job service.
type WorkerPool struct {
	workers []*Worker
	mu      sync.Mutex
	started bool
}

// NewWorkerPool creates workerCount workers sharing one poll interval.
func NewWorkerPool(jobService jobs.Service, workerCount int, pollInterval time.Duration) *WorkerPool {
	pool := &WorkerPool{workers: make([]*Worker, 0, workerCount)}
	for i := 0; i < workerCount; i++ {
		id := fmt.Sprintf("worker-%d", i+1)
		pool.workers = append(pool.workers, NewWorker(id, jobService, pollInterval))
	}
	return pool
}

// RegisterProcessor registers a processor with every worker in the pool.
func (p *WorkerPool) RegisterProcessor(processor JobProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, worker := range p.workers {
		worker.RegisterProcessor(processor)
	}
}

// Start launches all workers. Starting a running pool is an error.
func (p *WorkerPool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}

	log.Printf("[INFO] Starting %d workers", len(p.workers))
	for _, worker := range p.workers {
		worker.Start(ctx)
	}

	p.started = true
	return nil
}

// Stop shuts down all workers and waits for in-flight jobs to settle.
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	for _, worker := range p.workers {
		worker.Stop()
	}

	p.started = false
	log.Printf("[INFO] Worker pool stopped")
}
