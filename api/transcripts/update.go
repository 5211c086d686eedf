package transcripts

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/services/transcripts"
)

// Update appends a corrected version and makes it current
// @Summary Update a transcript
// @Description Stores edited text and segments as a new version. Earlier versions remain readable and diffable.
// @Tags transcripts
// @Accept json
// @Produce json
// @Param id path int true "Transcript ID"
// @Param request body UpdateTranscriptRequest true "Corrected content"
// @Success 200 {object} VersionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/{id} [put]
func Update(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req UpdateTranscriptRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		versionNumber, err := deps.TranscriptService.UpdateTranscript(
			c.Request.Context(), id, req.Text, req.Segments,
			transcripts.WithCreatedBy(req.CreatedBy),
			transcripts.WithChangeNote(req.ChangeNote),
		)
		if err != nil {
			respondServiceError(c, "update transcript", err)
			return
		}

		c.JSON(200, VersionResponse{
			TranscriptID:  id,
			VersionNumber: versionNumber,
			Message:       "Transcript updated",
		})
	}
}

// Import parses external subtitle or transcript content into a new version
// @Summary Import a transcript version
// @Description Accepts SRT, VTT or whisper-style JSON content, parses it and appends it as the new current version.
// @Tags transcripts
// @Accept json
// @Produce json
// @Param id path int true "Transcript ID"
// @Param request body ImportRequest true "Content and its format"
// @Success 200 {object} VersionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/{id}/import [post]
func Import(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req ImportRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		versionNumber, err := deps.TranscriptService.ImportVersion(
			c.Request.Context(), id, req.Content, req.Format,
			transcripts.WithCreatedBy(req.CreatedBy),
			transcripts.WithChangeNote(req.ChangeNote),
		)
		if err != nil {
			// Malformed JSON payloads are caller errors, not server errors.
			if strings.Contains(err.Error(), "invalid transcript JSON") {
				types.SendBadRequest(c, "Content could not be parsed as "+req.Format)
				return
			}
			respondServiceError(c, "import version", err)
			return
		}

		c.JSON(200, VersionResponse{
			TranscriptID:  id,
			VersionNumber: versionNumber,
			Message:       "Imported " + normalizedFormatName(req.Format) + " content",
		})
	}
}

func normalizedFormatName(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}
