package transcripts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scribeworks/scribe-api/internal/models"
)

// Repository defines the interface for transcript persistence
type Repository interface {
	// Create operations
	CreateWithInitialVersion(ctx context.Context, tr *models.Transcript, version *models.TranscriptVersion) error
	AppendVersion(ctx context.Context, transcriptID uint, version *models.TranscriptVersion) (int, error)

	// Read operations
	GetTranscript(ctx context.Context, transcriptID uint) (*models.Transcript, error)
	GetVersion(ctx context.Context, transcriptID uint, versionNumber int) (*models.TranscriptVersion, error)
	ListVersions(ctx context.Context, transcriptID uint) ([]VersionInfo, error)
	LatestByJob(ctx context.Context, jobID string) (*models.Transcript, error)
	ListExports(ctx context.Context, transcriptID uint) ([]models.ExportRecord, error)
	TranscriptIDs(ctx context.Context) ([]uint, error)
	Stats(ctx context.Context) (*Statistics, error)

	// Write operations
	RecordExport(ctx context.Context, record *models.ExportRecord) error
	PruneVersions(ctx context.Context, transcriptID uint, keepCount int) (int64, error)
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new transcript repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// CreateWithInitialVersion inserts a transcript and its version 1 in one transaction
func (r *repository) CreateWithInitialVersion(ctx context.Context, tr *models.Transcript, version *models.TranscriptVersion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tr).Error; err != nil {
			return fmt.Errorf("creating transcript: %w", err)
		}

		version.TranscriptID = tr.ID
		version.VersionNumber = 1
		version.IsCurrent = true
		if err := tx.Create(version).Error; err != nil {
			return fmt.Errorf("creating initial version: %w", err)
		}

		return nil
	})
}

// AppendVersion inserts the next version and demotes the previous current one.
// The demote + insert pair runs in a single transaction so a crash can never
// leave zero or two current versions. The unique index on
// (transcript_id, version_number) makes racing writers fail loudly.
func (r *repository) AppendVersion(ctx context.Context, transcriptID uint, version *models.TranscriptVersion) (int, error) {
	var newNumber int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tr models.Transcript
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tr, transcriptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTranscriptNotFound
			}
			return fmt.Errorf("locking transcript: %w", err)
		}

		var maxVersion int
		if err := tx.Model(&models.TranscriptVersion{}).
			Where("transcript_id = ?", transcriptID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&maxVersion).Error; err != nil {
			return fmt.Errorf("resolving max version: %w", err)
		}

		if err := tx.Model(&models.TranscriptVersion{}).
			Where("transcript_id = ? AND is_current = ?", transcriptID, true).
			Update("is_current", false).Error; err != nil {
			return fmt.Errorf("demoting current version: %w", err)
		}

		version.TranscriptID = transcriptID
		version.VersionNumber = maxVersion + 1
		version.IsCurrent = true
		if err := tx.Create(version).Error; err != nil {
			return fmt.Errorf("inserting version: %w", err)
		}
		newNumber = version.VersionNumber

		if err := tx.Model(&tr).Update("updated_at", time.Now().UTC()).Error; err != nil {
			return fmt.Errorf("touching transcript: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return newNumber, nil
}

// GetTranscript retrieves a transcript row by ID
func (r *repository) GetTranscript(ctx context.Context, transcriptID uint) (*models.Transcript, error) {
	var tr models.Transcript
	if err := r.db.WithContext(ctx).First(&tr, transcriptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("getting transcript: %w", err)
	}
	return &tr, nil
}

// GetVersion retrieves one version; versionNumber <= 0 selects the current one
func (r *repository) GetVersion(ctx context.Context, transcriptID uint, versionNumber int) (*models.TranscriptVersion, error) {
	query := r.db.WithContext(ctx).Where("transcript_id = ?", transcriptID)
	if versionNumber > 0 {
		query = query.Where("version_number = ?", versionNumber)
	} else {
		query = query.Where("is_current = ?", true)
	}

	var version models.TranscriptVersion
	if err := query.First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("getting version: %w", err)
	}
	return &version, nil
}

// ListVersions returns version metadata newest first, without segment payloads
func (r *repository) ListVersions(ctx context.Context, transcriptID uint) ([]VersionInfo, error) {
	var versions []VersionInfo
	err := r.db.WithContext(ctx).
		Model(&models.TranscriptVersion{}).
		Select("version_number, segment_count, LENGTH(text) AS text_length, is_current, created_at, created_by, change_note").
		Where("transcript_id = ?", transcriptID).
		Order("version_number DESC").
		Scan(&versions).Error
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	return versions, nil
}

// LatestByJob returns the most recently created transcript for a job
func (r *repository) LatestByJob(ctx context.Context, jobID string) (*models.Transcript, error) {
	var tr models.Transcript
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC, id DESC").
		First(&tr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("getting transcript by job: %w", err)
	}
	return &tr, nil
}

// ListExports returns export records most recent first
func (r *repository) ListExports(ctx context.Context, transcriptID uint) ([]models.ExportRecord, error) {
	var exports []models.ExportRecord
	err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("created_at DESC, id DESC").
		Find(&exports).Error
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	return exports, nil
}

// TranscriptIDs lists all transcript IDs, used by the retention sweeper
func (r *repository) TranscriptIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Transcript{}).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("listing transcript ids: %w", err)
	}
	return ids, nil
}

// RecordExport appends an export audit row
func (r *repository) RecordExport(ctx context.Context, record *models.ExportRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	return nil
}

// PruneVersions deletes all versions except the keepCount most recent by
// version number. The current version is always among the kept set because
// appends only ever create the highest-numbered version.
func (r *repository) PruneVersions(ctx context.Context, transcriptID uint, keepCount int) (int64, error) {
	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := tx.Model(&models.TranscriptVersion{}).
			Select("id").
			Where("transcript_id = ?", transcriptID).
			Order("version_number DESC").
			Limit(keepCount)

		result := tx.Where("transcript_id = ?", transcriptID).
			Where("id NOT IN (?)", keep).
			Delete(&models.TranscriptVersion{})
		if result.Error != nil {
			return fmt.Errorf("pruning versions: %w", result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// Stats computes store-wide aggregate counters
func (r *repository) Stats(ctx context.Context) (*Statistics, error) {
	db := r.db.WithContext(ctx)
	stats := &Statistics{ExportsByFormat: make(map[string]int64)}

	if err := db.Model(&models.Transcript{}).Count(&stats.TotalTranscripts).Error; err != nil {
		return nil, fmt.Errorf("counting transcripts: %w", err)
	}
	if err := db.Model(&models.TranscriptVersion{}).Count(&stats.TotalVersions).Error; err != nil {
		return nil, fmt.Errorf("counting versions: %w", err)
	}

	if stats.TotalTranscripts > 0 {
		var agg struct {
			AvgVersions float64
			MaxVersions int64
		}
		err := db.Raw(`SELECT AVG(version_count) AS avg_versions, MAX(version_count) AS max_versions
			FROM (SELECT COUNT(*) AS version_count FROM transcript_versions GROUP BY transcript_id)`).
			Scan(&agg).Error
		if err != nil {
			return nil, fmt.Errorf("aggregating version counts: %w", err)
		}
		stats.AvgVersionsPerTranscript = agg.AvgVersions
		stats.MaxVersionsPerTranscript = agg.MaxVersions
	}

	if err := db.Model(&models.ExportRecord{}).Count(&stats.TotalExports).Error; err != nil {
		return nil, fmt.Errorf("counting exports: %w", err)
	}

	var byFormat []struct {
		Format string
		Count  int64
	}
	if err := db.Model(&models.ExportRecord{}).
		Select("format, COUNT(*) AS count").
		Group("format").
		Scan(&byFormat).Error; err != nil {
		return nil, fmt.Errorf("grouping exports by format: %w", err)
	}
	for _, fc := range byFormat {
		stats.ExportsByFormat[fc.Format] = fc.Count
	}
	stats.DistinctExportFormats = int64(len(byFormat))

	return stats, nil
}
