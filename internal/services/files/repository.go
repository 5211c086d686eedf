package files

import (
	"context"
	"errors"
	"time"

	"github.com/scribeworks/scribe-api/internal/models"
	"gorm.io/gorm"
)

// Repository defines the data access interface for file records
type Repository interface {
	CreateFile(ctx context.Context, file *models.AudioFile) error
	GetFile(ctx context.Context, fileID uint) (*models.AudioFile, error)
	GetFileByHash(ctx context.Context, sha256 string) (*models.AudioFile, error)
	ListFiles(ctx context.Context, limit, offset int) ([]*models.AudioFile, error)
	UpdateProbeData(ctx context.Context, fileID uint, durationSeconds float64, sampleRate int) error
	TouchFile(ctx context.Context, fileID uint) error
	CountJobReferences(ctx context.Context, fileID uint) (int64, error)
	DeleteFile(ctx context.Context, fileID uint) error
	GetOrphanedFiles(ctx context.Context, olderThan time.Time) ([]*models.AudioFile, error)
	TotalSize(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*StorageStats, error)
}

// RepositoryImpl implements the Repository interface using GORM
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new file repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateFile inserts a new file record
func (r *RepositoryImpl) CreateFile(ctx context.Context, file *models.AudioFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// GetFile retrieves a file record by ID
func (r *RepositoryImpl) GetFile(ctx context.Context, fileID uint) (*models.AudioFile, error) {
	var file models.AudioFile
	err := r.db.WithContext(ctx).First(&file, fileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

// GetFileByHash retrieves a file record by its content hash
func (r *RepositoryImpl) GetFileByHash(ctx context.Context, sha256 string) (*models.AudioFile, error) {
	var file models.AudioFile
	err := r.db.WithContext(ctx).Where("sha256 = ?", sha256).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

// ListFiles retrieves file records, most recent first
func (r *RepositoryImpl) ListFiles(ctx context.Context, limit, offset int) ([]*models.AudioFile, error) {
	var files []*models.AudioFile

	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&files).Error
	return files, err
}

// UpdateProbeData stores metadata discovered by probing the audio
func (r *RepositoryImpl) UpdateProbeData(ctx context.Context, fileID uint, durationSeconds float64, sampleRate int) error {
	result := r.db.WithContext(ctx).
		Model(&models.AudioFile{}).
		Where("id = ?", fileID).
		Updates(map[string]interface{}{
			"duration_seconds": durationSeconds,
			"sample_rate":      sampleRate,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

// TouchFile bumps the last-accessed timestamp
func (r *RepositoryImpl) TouchFile(ctx context.Context, fileID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.AudioFile{}).
		Where("id = ?", fileID).
		Update("last_accessed_at", time.Now().UTC())

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

// CountJobReferences returns how many live jobs name the file in their
// payload. The CAST tolerates payloads that stored the id as a JSON string.
func (r *RepositoryImpl) CountJobReferences(ctx context.Context, fileID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("CAST(json_extract(payload, ?) AS INTEGER) = ?", "$.file_id", fileID).
		Count(&count).Error
	return count, err
}

// DeleteFile removes a file record. Unlike jobs, file rows are deleted
// outright; the content hash makes a re-upload indistinguishable anyway.
func (r *RepositoryImpl) DeleteFile(ctx context.Context, fileID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.AudioFile{}, fileID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

// GetOrphanedFiles retrieves files older than the cutoff that no live job
// references, oldest first
func (r *RepositoryImpl) GetOrphanedFiles(ctx context.Context, olderThan time.Time) ([]*models.AudioFile, error) {
	var files []*models.AudioFile

	// NOT IN against NULLs matches nothing, so jobs without a file_id are
	// filtered inside the subquery.
	referenced := r.db.Model(&models.Job{}).
		Select("CAST(json_extract(payload, '$.file_id') AS INTEGER)").
		Where("json_extract(payload, '$.file_id') IS NOT NULL")

	err := r.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Where("id NOT IN (?)", referenced).
		Order("created_at ASC, id ASC").
		Find(&files).Error
	return files, err
}

// TotalSize returns the sum of stored file sizes in bytes
func (r *RepositoryImpl) TotalSize(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.AudioFile{}).
		Select("COALESCE(SUM(size_bytes), 0)").
		Scan(&total).Error
	return total, err
}

// Stats retrieves storage usage counters. Quota fields are filled in by
// the service, which knows the configured limits.
func (r *RepositoryImpl) Stats(ctx context.Context) (*StorageStats, error) {
	stats := &StorageStats{}

	if err := r.db.WithContext(ctx).Model(&models.AudioFile{}).Count(&stats.TotalFiles).Error; err != nil {
		return nil, err
	}

	var totals struct {
		SizeBytes       int64
		DurationSeconds float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.AudioFile{}).
		Select("COALESCE(SUM(size_bytes), 0) AS size_bytes, COALESCE(SUM(duration_seconds), 0) AS duration_seconds").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	stats.TotalSizeBytes = totals.SizeBytes
	stats.TotalDurationSeconds = totals.DurationSeconds
	return stats, nil
}
