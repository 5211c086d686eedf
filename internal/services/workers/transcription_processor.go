package workers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/internal/services/files"
	"github.com/scribeworks/scribe-api/internal/services/jobs"
	"github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/internal/services/whisper"
	"github.com/scribeworks/scribe-api/pkg/ffmpeg"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

// AudioProber is the slice of pkg/ffmpeg the processor needs. *ffmpeg.FFmpeg
// satisfies it.
type AudioProber interface {
	GetMetadata(ctx context.Context, filePath string) (*ffmpeg.AudioMetadata, error)
	ConvertToWAV(ctx context.Context, inputPath, outputDir string) (string, error)
}

// TranscriptionProcessor runs transcription and translation jobs end to end:
// look up the source audio, probe and convert it for the engine, transcribe,
// persist the transcript, render the SRT artifact, complete the job.
type TranscriptionProcessor struct {
	jobService        jobs.Service
	transcriptService transcripts.Service
	fileService       files.Service
	engine            whisper.Engine
	prober            AudioProber
	tempDir           string
	exportDir         string
	defaultModel      string
}

// ProcessorConfig carries the filesystem layout and engine defaults
type ProcessorConfig struct {
	TempDir      string // scratch space for converted audio
	ExportDir    string // where rendered SRT artifacts land
	DefaultModel string // engine model when the payload names none
}

// NewTranscriptionProcessor creates a new transcription processor
func NewTranscriptionProcessor(
	jobService jobs.Service,
	transcriptService transcripts.Service,
	fileService files.Service,
	engine whisper.Engine,
	prober AudioProber,
	cfg ProcessorConfig,
) *TranscriptionProcessor {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "base"
	}

	return &TranscriptionProcessor{
		jobService:        jobService,
		transcriptService: transcriptService,
		fileService:       fileService,
		engine:            engine,
		prober:            prober,
		tempDir:           cfg.TempDir,
		exportDir:         cfg.ExportDir,
		defaultModel:      cfg.DefaultModel,
	}
}

// CanProcess returns true if this processor can handle the job type
func (p *TranscriptionProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeTranscription || jobType == models.JobTypeTranslation
}

// ProcessJob processes a transcription or translation job
func (p *TranscriptionProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	if !p.CanProcess(job.Type) {
		return fmt.Errorf("unsupported job type: %s", job.Type)
	}

	log.Printf("[DEBUG] Processing %s job %s", job.Type, job.UUID)
	started := time.Now()

	fileID, ok := job.GetPayloadInt("file_id")
	if !ok || fileID <= 0 {
		return models.NewSystemError("invalid_payload",
			"job payload carries no file_id",
			fmt.Sprintf("payload: %v", job.Payload), nil)
	}

	p.progress(ctx, job.ID, 5)

	audioFile, err := p.fileService.GetFile(ctx, uint(fileID))
	if err != nil {
		if errors.Is(err, files.ErrFileNotFound) {
			return models.NewNotFoundError("file_missing",
				fmt.Sprintf("audio file %d not found", fileID),
				err.Error(), err)
		}
		return models.NewStorageError("file_lookup",
			fmt.Sprintf("looking up audio file %d failed", fileID),
			err.Error(), err)
	}

	// The row can outlive the bytes when someone prunes the upload dir by hand
	if _, err := os.Stat(audioFile.Path); err != nil {
		return models.NewNotFoundError("audio_missing",
			fmt.Sprintf("audio content for file %d is gone from disk", audioFile.ID),
			audioFile.Path, err)
	}

	metadata, err := p.prober.GetMetadata(ctx, audioFile.Path)
	if err != nil {
		return models.NewAudioError("probe_failed",
			fmt.Sprintf("probing %s failed", filepath.Base(audioFile.Path)),
			err.Error(), err)
	}

	// Record what the probe discovered; listings show duration without
	// having to touch the file again
	if err := p.fileService.UpdateProbeData(ctx, audioFile.ID, metadata.Duration, metadata.SampleRate); err != nil {
		log.Printf("[WARNING] Failed to record probe data for file %d: %v", audioFile.ID, err)
	}

	p.progress(ctx, job.ID, 15)

	audioPath := audioFile.Path
	if !ffmpeg.IsEngineFormat(metadata) {
		// Convert into a per-job directory: two jobs over the same source
		// file must not race on one output path
		convDir := filepath.Join(p.tempDir, job.UUID)
		converted, err := p.prober.ConvertToWAV(ctx, audioFile.Path, convDir)
		if err != nil {
			return models.NewAudioError("wav_conversion",
				fmt.Sprintf("converting %s for the engine failed", filepath.Base(audioFile.Path)),
				err.Error(), err)
		}
		defer func() {
			if err := os.RemoveAll(convDir); err != nil {
				log.Printf("[WARNING] Failed to remove converted audio dir %s: %v", convDir, err)
			}
		}()
		audioPath = converted

		log.Printf("[DEBUG] Converted %s (%s, %d Hz) for engine input",
			filepath.Base(audioFile.Path), metadata.Codec, metadata.SampleRate)
	}

	p.progress(ctx, job.ID, 30)

	req := whisper.Request{
		AudioPath: audioPath,
		Model:     p.defaultModel,
		Task:      job.Task(),
	}
	if model, ok := job.GetPayloadString("model"); ok && model != "" {
		req.Model = model
	}
	if language, ok := job.GetPayloadString("language"); ok {
		req.Language = language
	}
	if beamSize, ok := job.GetPayloadInt("beam_size"); ok && beamSize > 0 {
		req.BeamSize = beamSize
	}

	result, err := p.engine.Transcribe(ctx, req)
	if err != nil {
		return models.NewEngineError("transcribe_failed",
			fmt.Sprintf("%s engine failed on job %s", p.engine.Name(), job.UUID),
			err.Error(), err)
	}

	p.progress(ctx, job.ID, 85)

	srtPath, err := p.renderSubtitles(job.UUID, result.Segments)
	if err != nil {
		return models.NewStorageError("srt_artifact",
			"writing the SRT artifact failed",
			err.Error(), err)
	}

	text := transcript.JoinText(result.Segments)
	transcriptID, err := p.transcriptService.SaveTranscript(ctx, job.UUID, text, result.Segments,
		transcripts.WithLanguage(result.Language),
		transcripts.WithSubtitlePath(srtPath),
		transcripts.WithCreatedBy("whisper:"+req.Model),
	)
	if err != nil {
		// The orphaned artifact would otherwise shadow the retry's output
		if srtPath != "" {
			if removeErr := os.Remove(srtPath); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
				log.Printf("[WARNING] Failed to remove orphaned artifact %s: %v", srtPath, removeErr)
			}
		}
		return models.NewStorageError("transcript_save",
			fmt.Sprintf("saving transcript for job %s failed", job.UUID),
			err.Error(), err)
	}

	if err := p.fileService.TouchFile(ctx, audioFile.ID); err != nil {
		log.Printf("[WARNING] Failed to touch file %d: %v", audioFile.ID, err)
	}

	p.progress(ctx, job.ID, 100)

	processingTime := time.Since(started).Seconds()

	jobResult := models.JobResult{
		"file_id":                 audioFile.ID,
		"transcript_id":           transcriptID,
		"segment_count":           len(result.Segments),
		"detected_language":       result.Language,
		"language_probability":    result.LanguageProbability,
		"duration_seconds":        metadata.Duration,
		"processing_time_seconds": processingTime,
		"model":                   req.Model,
		"text_length":             len(text),
	}
	if srtPath != "" {
		jobResult["srt_path"] = srtPath
	}

	if err := p.jobService.CompleteJob(ctx, job.ID, jobResult); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	log.Printf("[INFO] Transcribed job %s: %d segments, language %s (%.0f%%), %.1fs audio in %.1fs",
		job.UUID, len(result.Segments), result.Language,
		result.LanguageProbability*100, metadata.Duration, processingTime)

	return nil
}

// renderSubtitles writes the SRT artifact for a finished job. An empty
// export dir disables artifacts.
func (p *TranscriptionProcessor) renderSubtitles(jobUUID string, segments []transcript.Segment) (string, error) {
	if p.exportDir == "" {
		return "", nil
	}

	if err := os.MkdirAll(p.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	srtPath := filepath.Join(p.exportDir, jobUUID+".srt")
	if err := os.WriteFile(srtPath, []byte(transcript.ToSRT(segments)), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", srtPath, err)
	}

	return srtPath, nil
}

// progress updates are best effort; a failed update never stops the job
func (p *TranscriptionProcessor) progress(ctx context.Context, jobID uint, pct int) {
	if err := p.jobService.UpdateProgress(ctx, jobID, pct); err != nil {
		log.Printf("Failed to update job progress: %v", err)
	}
}
