package models

import (
	"time"

	"gorm.io/gorm"
)

// AudioFile represents an uploaded audio file tracked for deduplication
// and storage accounting. Files are content-addressed: two uploads with
// the same SHA256 share one row and one on-disk copy.
type AudioFile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Content hash of the stored bytes, dedup key
	SHA256 string `gorm:"uniqueIndex;not null;size:64" json:"sha256"`

	// Name the file was uploaded under (first upload wins)
	OriginalName string `gorm:"not null" json:"original_name"`

	// Where the bytes live on disk
	Path      string `gorm:"not null" json:"path"`
	SizeBytes int64  `gorm:"not null" json:"size_bytes"`

	// Container format inferred from the filename extension (mp3, wav, ...)
	Format string `json:"format"`

	// Probed metadata, filled in once a transcription job touches the file
	DurationSeconds float64 `json:"duration_seconds"`
	SampleRate      int     `json:"sample_rate"`

	LastAccessedAt time.Time `json:"last_accessed_at"`
}

// TableName returns the table name for the AudioFile model
func (AudioFile) TableName() string {
	return "audio_files"
}

// BeforeCreate hook to set timestamps
func (f *AudioFile) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	if f.LastAccessedAt.IsZero() {
		f.LastAccessedAt = now
	}
	return nil
}

// BeforeUpdate hook to update timestamp
func (f *AudioFile) BeforeUpdate(tx *gorm.DB) error {
	f.UpdatedAt = time.Now()
	return nil
}

// Touch updates the last accessed timestamp
func (f *AudioFile) Touch(db *gorm.DB) error {
	f.LastAccessedAt = time.Now()
	return db.Model(f).Update("last_accessed_at", f.LastAccessedAt).Error
}
