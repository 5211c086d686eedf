package transcripts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

type service struct {
	repo Repository
}

// NewService creates a new transcript service
func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) SaveTranscript(ctx context.Context, jobID, text string, segments []transcript.Segment, opts ...Option) (uint, error) {
	cfg := newRequestConfig(opts)

	if !transcript.ValidateSegments(segments) {
		return 0, ErrInvalidSegments
	}

	tr := &models.Transcript{
		JobID:        jobID,
		Language:     cfg.language,
		SubtitlePath: cfg.subtitlePath,
	}
	version := &models.TranscriptVersion{
		Text:         text,
		Segments:     models.SegmentList(segments),
		SegmentCount: len(segments),
		CreatedBy:    cfg.createdBy,
		ChangeNote:   "Initial transcription",
	}

	if err := s.repo.CreateWithInitialVersion(ctx, tr, version); err != nil {
		return 0, fmt.Errorf("saving transcript: %w", err)
	}

	log.Printf("[INFO] Saved transcript %d for job %s (version 1, %d segments)", tr.ID, jobID, len(segments))

	return tr.ID, nil
}

func (s *service) UpdateTranscript(ctx context.Context, transcriptID uint, text string, segments []transcript.Segment, opts ...Option) (int, error) {
	cfg := newRequestConfig(opts)

	if !transcript.ValidateSegments(segments) {
		return 0, ErrInvalidSegments
	}

	note := cfg.changeNote
	if note == "" {
		note = "Transcription updated"
	}

	version := &models.TranscriptVersion{
		Text:         text,
		Segments:     models.SegmentList(segments),
		SegmentCount: len(segments),
		CreatedBy:    cfg.createdBy,
		ChangeNote:   note,
	}

	newNumber, err := s.repo.AppendVersion(ctx, transcriptID, version)
	if err != nil {
		if errors.Is(err, ErrTranscriptNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("updating transcript: %w", err)
	}

	log.Printf("[INFO] Updated transcript %d to version %d", transcriptID, newNumber)

	return newNumber, nil
}

func (s *service) RollbackToVersion(ctx context.Context, transcriptID uint, versionNumber int, opts ...Option) (int, error) {
	cfg := newRequestConfig(opts)

	if _, err := s.repo.GetTranscript(ctx, transcriptID); err != nil {
		return 0, err
	}

	version, err := s.repo.GetVersion(ctx, transcriptID, versionNumber)
	if err != nil {
		return 0, err
	}

	note := cfg.changeNote
	if note == "" {
		note = fmt.Sprintf("Rolled back to version %d", version.VersionNumber)
	}

	newNumber, err := s.UpdateTranscript(ctx, transcriptID, version.Text, version.Segments.Segments(),
		WithCreatedBy(cfg.createdBy), WithChangeNote(note))
	if err != nil {
		return 0, err
	}

	log.Printf("[INFO] Rolled transcript %d back to version %d content (new version %d)",
		transcriptID, version.VersionNumber, newNumber)

	return newNumber, nil
}

func (s *service) ImportVersion(ctx context.Context, transcriptID uint, content, format string, opts ...Option) (int, error) {
	cfg := newRequestConfig(opts)

	doc, err := transcript.Parse(content, format)
	if err != nil {
		return 0, err
	}

	text := doc.Text
	if text == "" {
		text = transcript.JoinText(doc.Segments)
	}

	note := cfg.changeNote
	if note == "" {
		note = fmt.Sprintf("Imported from %s", strings.ToUpper(strings.TrimSpace(format)))
	}

	return s.UpdateTranscript(ctx, transcriptID, text, doc.Segments,
		WithCreatedBy(cfg.createdBy), WithChangeNote(note))
}

func (s *service) GetTranscript(ctx context.Context, transcriptID uint, version int) (*TranscriptRecord, error) {
	tr, err := s.repo.GetTranscript(ctx, transcriptID)
	if err != nil {
		return nil, err
	}

	v, err := s.repo.GetVersion(ctx, transcriptID, version)
	if err != nil {
		return nil, err
	}

	return buildRecord(tr, v), nil
}

func (s *service) GetTranscriptByJob(ctx context.Context, jobID string) (*TranscriptRecord, error) {
	tr, err := s.repo.LatestByJob(ctx, jobID)
	if err != nil {
		// Absence is not an error here: the job may simply not have
		// produced a transcript yet.
		if errors.Is(err, ErrTranscriptNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting transcript by job: %w", err)
	}

	v, err := s.repo.GetVersion(ctx, tr.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("getting current version: %w", err)
	}

	return buildRecord(tr, v), nil
}

func (s *service) GetVersions(ctx context.Context, transcriptID uint) ([]VersionInfo, error) {
	if _, err := s.repo.GetTranscript(ctx, transcriptID); err != nil {
		return nil, err
	}

	versions, err := s.repo.ListVersions(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("getting versions: %w", err)
	}
	return versions, nil
}

func (s *service) GetVersionHistory(ctx context.Context, transcriptID uint) (*VersionHistory, error) {
	tr, err := s.repo.GetTranscript(ctx, transcriptID)
	if err != nil {
		return nil, err
	}

	versions, err := s.repo.ListVersions(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("getting version history: %w", err)
	}

	exports, err := s.repo.ListExports(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("getting export history: %w", err)
	}

	current := 0
	for _, v := range versions {
		if v.IsCurrent {
			current = v.VersionNumber
			break
		}
	}

	return &VersionHistory{
		TranscriptID:   tr.ID,
		JobID:          tr.JobID,
		Language:       tr.Language,
		SubtitlePath:   tr.SubtitlePath,
		CreatedAt:      tr.CreatedAt,
		CurrentVersion: current,
		Versions:       versions,
		Exports:        exports,
	}, nil
}

func (s *service) CompareVersions(ctx context.Context, transcriptID uint, version1, version2 int) (*VersionComparison, error) {
	if _, err := s.repo.GetTranscript(ctx, transcriptID); err != nil {
		return nil, err
	}

	v1, err := s.repo.GetVersion(ctx, transcriptID, version1)
	if err != nil {
		return nil, err
	}
	v2, err := s.repo.GetVersion(ctx, transcriptID, version2)
	if err != nil {
		return nil, err
	}

	return &VersionComparison{
		TranscriptID: transcriptID,
		Version1:     versionMeta(v1),
		Version2:     versionMeta(v2),
		TextDiff:     transcript.DiffText(v1.Text, v2.Text),
		SegmentDiff:  transcript.DiffSegments(v1.Segments.Segments(), v2.Segments.Segments()),
	}, nil
}

func (s *service) ExportTranscript(ctx context.Context, transcriptID uint, format string, opts ...Option) (string, error) {
	cfg := newRequestConfig(opts)

	record, err := s.GetTranscript(ctx, transcriptID, cfg.version)
	if err != nil {
		return "", err
	}

	name := strings.ToLower(strings.TrimSpace(format))

	// VTT and JSON renderings carry transcript metadata; JSON also carries
	// the full text.
	formatOpts := make([]transcript.Option, 0, len(cfg.formatOpts)+2)
	switch name {
	case transcript.FormatVTT:
		formatOpts = append(formatOpts, transcript.WithMetadata(exportMetadata(record)))
	case transcript.FormatJSON:
		formatOpts = append(formatOpts,
			transcript.WithMetadata(exportMetadata(record)),
			transcript.WithText(record.Text))
	}
	formatOpts = append(formatOpts, cfg.formatOpts...)

	content, err := transcript.Convert(record.Segments, format, formatOpts...)
	if err != nil {
		return "", err
	}

	if cfg.outputPath == "" {
		return content, nil
	}

	if dir := filepath.Dir(cfg.outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating export directory: %w", err)
		}
	}
	if err := os.WriteFile(cfg.outputPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}

	export := &models.ExportRecord{
		TranscriptID: transcriptID,
		Format:       name,
		FilePath:     cfg.outputPath,
		ExportedBy:   cfg.createdBy,
	}
	if cfg.version > 0 {
		v := cfg.version
		export.VersionNumber = &v
	}
	// The audit row is best-effort: the file is already written and the
	// rendered content is still returned.
	if err := s.repo.RecordExport(ctx, export); err != nil {
		log.Printf("[WARNING] Failed to record export of transcript %d: %v", transcriptID, err)
	}

	log.Printf("[INFO] Exported transcript %d version %d as %s to %s",
		transcriptID, record.VersionNumber, name, cfg.outputPath)

	return content, nil
}

func (s *service) DeleteOldVersions(ctx context.Context, transcriptID uint, keepCount int) (int64, error) {
	if keepCount < 1 {
		return 0, ErrInvalidKeepCount
	}

	if _, err := s.repo.GetTranscript(ctx, transcriptID); err != nil {
		return 0, err
	}

	deleted, err := s.repo.PruneVersions(ctx, transcriptID, keepCount)
	if err != nil {
		return 0, fmt.Errorf("deleting old versions: %w", err)
	}

	if deleted > 0 {
		log.Printf("[INFO] Deleted %d old version(s) of transcript %d (keeping %d most recent)",
			deleted, transcriptID, keepCount)
	}

	return deleted, nil
}

func (s *service) PruneAllVersions(ctx context.Context, keepCount int) (int64, error) {
	if keepCount < 1 {
		return 0, ErrInvalidKeepCount
	}

	ids, err := s.repo.TranscriptIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing transcripts: %w", err)
	}

	var total int64
	for _, id := range ids {
		deleted, err := s.repo.PruneVersions(ctx, id, keepCount)
		if err != nil {
			// One bad transcript must not stall the sweep
			log.Printf("[WARNING] Failed to prune versions of transcript %d: %v", id, err)
			continue
		}
		total += deleted
	}

	if total > 0 {
		log.Printf("[INFO] Pruned %d old version(s) across %d transcript(s) (keeping %d most recent)",
			total, len(ids), keepCount)
	}

	return total, nil
}

func (s *service) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting statistics: %w", err)
	}
	return stats, nil
}

func buildRecord(tr *models.Transcript, v *models.TranscriptVersion) *TranscriptRecord {
	return &TranscriptRecord{
		TranscriptID:  tr.ID,
		JobID:         tr.JobID,
		Language:      tr.Language,
		SubtitlePath:  tr.SubtitlePath,
		VersionNumber: v.VersionNumber,
		Text:          v.Text,
		Segments:      v.Segments.Segments(),
		SegmentCount:  v.SegmentCount,
		IsCurrent:     v.IsCurrent,
		CreatedAt:     v.CreatedAt,
		CreatedBy:     v.CreatedBy,
		ChangeNote:    v.ChangeNote,
	}
}

func versionMeta(v *models.TranscriptVersion) VersionMeta {
	return VersionMeta{
		VersionNumber: v.VersionNumber,
		CreatedAt:     v.CreatedAt,
		CreatedBy:     v.CreatedBy,
		ChangeNote:    v.ChangeNote,
	}
}

func exportMetadata(record *TranscriptRecord) map[string]interface{} {
	return map[string]interface{}{
		"language": record.Language,
		"job_id":   record.JobID,
		"version":  record.VersionNumber,
	}
}
