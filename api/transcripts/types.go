package transcripts

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/services/transcripts"
	"github.com/scribeworks/scribe-api/pkg/transcript"
)

// UpdateTranscriptRequest represents the request to append a corrected version
// @Description Request body for updating a transcript. The previous content stays in the version history.
type UpdateTranscriptRequest struct {
	Text       string               `json:"text" binding:"required" example:"Welcome back to the show." description:"Full corrected transcript text"`
	Segments   []transcript.Segment `json:"segments" description:"Timed segments; omit to store text without timing"`
	CreatedBy  string               `json:"created_by" example:"editor@example.com" description:"Who made the edit"`
	ChangeNote string               `json:"change_note" example:"Fixed speaker names" description:"Free-text note stored on the version"`
}

// RollbackRequest represents the request to restore an older version's content
// @Description Request body for rolling a transcript back. Rollback appends a new version, it never rewrites history.
type RollbackRequest struct {
	Version    int    `json:"version" binding:"required,min=1" example:"2" description:"Version number whose content to restore"`
	CreatedBy  string `json:"created_by" example:"editor@example.com"`
	ChangeNote string `json:"change_note" example:"Reverting bad auto-correction"`
}

// ImportRequest represents the request to import externally edited content
// @Description Request body for importing SRT, VTT or whisper-JSON content as a new version
type ImportRequest struct {
	Content    string `json:"content" binding:"required" description:"Subtitle or transcript payload"`
	Format     string `json:"format" binding:"required" example:"srt" description:"Payload format: srt, vtt or json"`
	CreatedBy  string `json:"created_by" example:"editor@example.com"`
	ChangeNote string `json:"change_note" example:"Imported from subtitle editor"`
}

// ExportRequest represents the request to render a version to a file on the server
// @Description Request body for POST export. The rendering is written under the configured export directory and audited.
type ExportRequest struct {
	Format            string `json:"format" binding:"required" example:"vtt" description:"Output format: srt, vtt, json, txt or csv"`
	Version           int    `json:"version" example:"3" description:"Version to export; 0 or omitted means current"`
	IncludeTimestamps bool   `json:"include_timestamps" description:"Prefix txt lines with timestamps"`
	Pretty            bool   `json:"pretty" description:"Indent json output"`
	ExportedBy        string `json:"exported_by" example:"editor@example.com"`
}

// VersionResponse reports the version an operation produced
type VersionResponse struct {
	TranscriptID  uint   `json:"transcript_id"`
	VersionNumber int    `json:"version_number"`
	Message       string `json:"message"`
}

// respondServiceError maps store sentinels onto HTTP statuses. Anything
// unrecognized is a 500 carrying the failed action for context.
func respondServiceError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, transcripts.ErrTranscriptNotFound):
		types.SendNotFound(c, "Transcript not found")
	case errors.Is(err, transcripts.ErrVersionNotFound):
		types.SendNotFound(c, "Version not found")
	case errors.Is(err, transcripts.ErrInvalidSegments):
		types.SendBadRequest(c, "Segments must have non-negative start and end times with end >= start")
	case errors.Is(err, transcripts.ErrInvalidKeepCount):
		types.SendBadRequest(c, "keep must be at least 1")
	case errors.Is(err, transcript.ErrUnsupportedFormat):
		types.SendBadRequest(c, err.Error())
	default:
		types.SendInternalError(c, fmt.Sprintf("Failed to %s: %v", action, err))
	}
}
