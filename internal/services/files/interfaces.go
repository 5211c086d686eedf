// Package files manages uploaded audio on disk and its bookkeeping rows.
// Storage is content-addressed: files are keyed by the SHA256 of their
// bytes, so uploading the same audio twice yields one row and one copy.
package files

import (
	"context"
	"io"
	"time"

	"github.com/scribeworks/scribe-api/internal/models"
)

// Service defines the business logic interface for file operations
type Service interface {
	// Ingestion. Both return the stored file and whether a new copy was
	// written; an existing hash short-circuits to the already-stored row.
	StoreUpload(ctx context.Context, r io.Reader, originalName string) (*models.AudioFile, bool, error)
	RegisterFile(ctx context.Context, sourcePath string) (*models.AudioFile, bool, error)

	// Lookups
	GetFile(ctx context.Context, fileID uint) (*models.AudioFile, error)
	GetFileByHash(ctx context.Context, sha256 string) (*models.AudioFile, error)
	ListFiles(ctx context.Context, limit, offset int) ([]*models.AudioFile, error)

	// UpdateProbeData fills in metadata discovered when a worker probes
	// the audio (duration, sample rate)
	UpdateProbeData(ctx context.Context, fileID uint, durationSeconds float64, sampleRate int) error

	// TouchFile bumps the last-accessed timestamp
	TouchFile(ctx context.Context, fileID uint) error

	// DeleteFile removes the row and the bytes on disk. Files referenced
	// by jobs are protected unless force is set.
	DeleteFile(ctx context.Context, fileID uint, force bool) error

	// CleanupOrphans removes files older than maxAge that no job references
	CleanupOrphans(ctx context.Context, maxAge time.Duration) (int64, error)

	// Stats returns storage usage counters
	Stats(ctx context.Context) (*StorageStats, error)
}

// StorageStats summarizes disk usage against the configured quota
type StorageStats struct {
	TotalFiles           int64   `json:"total_files"`
	TotalSizeBytes       int64   `json:"total_size_bytes"`
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
	QuotaBytes           int64   `json:"quota_bytes"`
	UsagePercent         float64 `json:"usage_percent"`
}
