package transcripts

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/services/transcripts"
)

// Rollback restores an older version's content as a new current version
// @Summary Roll back a transcript
// @Description Copies the named version's content into a brand new version and marks it current. History is never rewritten.
// @Tags transcripts
// @Accept json
// @Produce json
// @Param id path int true "Transcript ID"
// @Param request body RollbackRequest true "Version to restore"
// @Success 200 {object} VersionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/{id}/rollback [post]
func Rollback(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req RollbackRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		versionNumber, err := deps.TranscriptService.RollbackToVersion(
			c.Request.Context(), id, req.Version,
			transcripts.WithCreatedBy(req.CreatedBy),
			transcripts.WithChangeNote(req.ChangeNote),
		)
		if err != nil {
			respondServiceError(c, "roll back transcript", err)
			return
		}

		c.JSON(200, VersionResponse{
			TranscriptID:  id,
			VersionNumber: versionNumber,
			Message:       fmt.Sprintf("Restored content from version %d", req.Version),
		})
	}
}
