package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/scribeworks/scribe-api/pkg/transcript"
)

// Transcript is the versioned container for one piece of transcribed
// audio. Content lives in TranscriptVersion rows; this row carries the
// identity and source linkage.
type Transcript struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	JobID        string    `gorm:"index;not null" json:"job_id"`
	Language     string    `json:"language"`
	SubtitlePath string    `json:"subtitle_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Versions []TranscriptVersion `gorm:"foreignKey:TranscriptID;constraint:OnDelete:CASCADE" json:"versions,omitempty"`
	Exports  []ExportRecord      `gorm:"foreignKey:TranscriptID;constraint:OnDelete:CASCADE" json:"exports,omitempty"`
}

// TableName specifies the table name for Transcript
func (Transcript) TableName() string {
	return "transcripts"
}

// TranscriptVersion is one immutable revision of a transcript. Version
// numbers are monotonic per transcript starting at 1, and exactly one
// version per transcript has IsCurrent set. Rows are hard-deleted by
// retention pruning, never soft-deleted.
type TranscriptVersion struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	TranscriptID  uint        `gorm:"not null;uniqueIndex:idx_transcript_version" json:"transcript_id"`
	VersionNumber int         `gorm:"not null;uniqueIndex:idx_transcript_version" json:"version_number"`
	Text          string      `gorm:"type:text" json:"text"`
	Segments      SegmentList `gorm:"type:json" json:"segments"`
	SegmentCount  int         `json:"segment_count"`
	IsCurrent     bool        `gorm:"index" json:"is_current"`
	CreatedAt     time.Time   `json:"created_at"`
	CreatedBy     string      `json:"created_by"`
	ChangeNote    string      `json:"change_note"`
}

// TableName specifies the table name for TranscriptVersion
func (TranscriptVersion) TableName() string {
	return "transcript_versions"
}

// ExportRecord is an append-only audit row for a rendered export. A nil
// VersionNumber means the current version at export time.
type ExportRecord struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TranscriptID  uint      `gorm:"not null;index" json:"transcript_id"`
	VersionNumber *int      `json:"version_number,omitempty"`
	Format        string    `gorm:"not null" json:"format"`
	FilePath      string    `json:"file_path,omitempty"`
	ExportedBy    string    `json:"exported_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for ExportRecord
func (ExportRecord) TableName() string {
	return "transcript_exports"
}

// SegmentList stores transcript segments as a JSON column
type SegmentList []transcript.Segment

// Value implements driver.Valuer. A nil list marshals as [] so the column
// is never NULL.
func (s SegmentList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(SegmentList{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner. Accepts both []byte and string; which one
// arrives depends on the driver.
func (s *SegmentList) Scan(value interface{}) error {
	switch raw := value.(type) {
	case nil:
		*s = SegmentList{}
		return nil
	case []byte:
		return json.Unmarshal(raw, s)
	case string:
		return json.Unmarshal([]byte(raw), s)
	default:
		return fmt.Errorf("cannot scan %T into a JSON column", value)
	}
}

// Segments returns the list as the conversion package's segment type.
func (s SegmentList) Segments() []transcript.Segment {
	return []transcript.Segment(s)
}
