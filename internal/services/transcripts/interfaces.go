// Package transcripts implements the versioned transcript store. A transcript
// is created once per job; its content lives in an append-only sequence of
// versions, exactly one of which is current. Updates and rollbacks never
// rewrite history, they append.
package transcripts

import (
	"context"
	"time"

	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

// Service defines the business logic interface for transcript operations
type Service interface {
	// Write operations
	SaveTranscript(ctx context.Context, jobID, text string, segments []transcript.Segment, opts ...Option) (uint, error)
	UpdateTranscript(ctx context.Context, transcriptID uint, text string, segments []transcript.Segment, opts ...Option) (int, error)
	RollbackToVersion(ctx context.Context, transcriptID uint, versionNumber int, opts ...Option) (int, error)
	ImportVersion(ctx context.Context, transcriptID uint, content, format string, opts ...Option) (int, error)

	// Read operations
	GetTranscript(ctx context.Context, transcriptID uint, version int) (*TranscriptRecord, error)
	GetTranscriptByJob(ctx context.Context, jobID string) (*TranscriptRecord, error)
	GetVersions(ctx context.Context, transcriptID uint) ([]VersionInfo, error)
	GetVersionHistory(ctx context.Context, transcriptID uint) (*VersionHistory, error)
	CompareVersions(ctx context.Context, transcriptID uint, version1, version2 int) (*VersionComparison, error)

	// Rendering
	ExportTranscript(ctx context.Context, transcriptID uint, format string, opts ...Option) (string, error)

	// Maintenance
	DeleteOldVersions(ctx context.Context, transcriptID uint, keepCount int) (int64, error)
	PruneAllVersions(ctx context.Context, keepCount int) (int64, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}

// TranscriptRecord is one version's content joined with its transcript metadata
type TranscriptRecord struct {
	TranscriptID  uint                 `json:"transcript_id"`
	JobID         string               `json:"job_id"`
	Language      string               `json:"language"`
	SubtitlePath  string               `json:"subtitle_path,omitempty"`
	VersionNumber int                  `json:"version_number"`
	Text          string               `json:"text"`
	Segments      []transcript.Segment `json:"segments"`
	SegmentCount  int                  `json:"segment_count"`
	IsCurrent     bool                 `json:"is_current"`
	CreatedAt     time.Time            `json:"created_at"`
	CreatedBy     string               `json:"created_by"`
	ChangeNote    string               `json:"change_note"`
}

// VersionInfo is version metadata without the segment payload
type VersionInfo struct {
	VersionNumber int       `json:"version_number"`
	SegmentCount  int       `json:"segment_count"`
	TextLength    int       `json:"text_length"`
	IsCurrent     bool      `json:"is_current"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
	ChangeNote    string    `json:"change_note"`
}

// VersionMeta identifies one side of a comparison
type VersionMeta struct {
	VersionNumber int       `json:"version_number"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
	ChangeNote    string    `json:"change_note"`
}

// VersionComparison holds the diff between two versions.
// Version1 is treated as the old side, Version2 as the new side.
type VersionComparison struct {
	TranscriptID uint                   `json:"transcript_id"`
	Version1     VersionMeta            `json:"version1"`
	Version2     VersionMeta            `json:"version2"`
	TextDiff     transcript.TextDiff    `json:"text_diff"`
	SegmentDiff  transcript.SegmentDiff `json:"segment_diff"`
}

// VersionHistory aggregates a transcript's metadata, versions and exports
type VersionHistory struct {
	TranscriptID   uint                  `json:"transcript_id"`
	JobID          string                `json:"job_id"`
	Language       string                `json:"language"`
	SubtitlePath   string                `json:"subtitle_path,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	CurrentVersion int                   `json:"current_version"`
	Versions       []VersionInfo         `json:"versions"`
	Exports        []models.ExportRecord `json:"exports"`
}

// Statistics holds store-wide aggregate counters
type Statistics struct {
	TotalTranscripts         int64            `json:"total_transcripts"`
	TotalVersions            int64            `json:"total_versions"`
	AvgVersionsPerTranscript float64          `json:"avg_versions_per_transcript"`
	MaxVersionsPerTranscript int64            `json:"max_versions_per_transcript"`
	TotalExports             int64            `json:"total_exports"`
	DistinctExportFormats    int64            `json:"distinct_export_formats"`
	ExportsByFormat          map[string]int64 `json:"exports_by_format"`
}

// Option is a functional option for transcript operations
type Option func(*requestConfig)

// requestConfig holds per-call settings. Options that do not apply to an
// operation are ignored, matching keyword-argument style call sites.
type requestConfig struct {
	language     string
	subtitlePath string
	createdBy    string
	changeNote   string
	outputPath   string
	version      int
	formatOpts   []transcript.Option
}

func newRequestConfig(opts []Option) *requestConfig {
	cfg := &requestConfig{
		language:  "unknown",
		createdBy: "system",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLanguage sets the transcript language (save only)
func WithLanguage(language string) Option {
	return func(cfg *requestConfig) {
		if language != "" {
			cfg.language = language
		}
	}
}

// WithSubtitlePath records the rendered subtitle artifact path (save only)
func WithSubtitlePath(path string) Option {
	return func(cfg *requestConfig) {
		cfg.subtitlePath = path
	}
}

// WithCreatedBy sets who performed the operation
func WithCreatedBy(createdBy string) Option {
	return func(cfg *requestConfig) {
		if createdBy != "" {
			cfg.createdBy = createdBy
		}
	}
}

// WithChangeNote sets the free-text note stored on the new version
func WithChangeNote(note string) Option {
	return func(cfg *requestConfig) {
		cfg.changeNote = note
	}
}

// WithOutputPath makes ExportTranscript write the rendering to a file
// and record an audit row
func WithOutputPath(path string) Option {
	return func(cfg *requestConfig) {
		cfg.outputPath = path
	}
}

// WithVersion selects a specific version; zero or negative means current
func WithVersion(version int) Option {
	return func(cfg *requestConfig) {
		cfg.version = version
	}
}

// WithFormatOptions forwards rendering options to the format converter
func WithFormatOptions(opts ...transcript.Option) Option {
	return func(cfg *requestConfig) {
		cfg.formatOpts = append(cfg.formatOpts, opts...)
	}
}
