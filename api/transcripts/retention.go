package transcripts

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// PruneVersions deletes a transcript's oldest versions beyond a retention count
// @Summary Prune old versions
// @Description Deletes all but the newest N versions. The current version always survives, whatever N is.
// @Tags transcripts
// @Produce json
// @Param id path int true "Transcript ID"
// @Param keep query int true "How many newest versions to keep"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/{id}/versions [delete]
func PruneVersions(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		raw := c.Query("keep")
		if raw == "" {
			types.SendBadRequest(c, "Query parameter 'keep' is required")
			return
		}
		keep, err := strconv.Atoi(raw)
		if err != nil {
			types.SendBadRequest(c, "Query parameter 'keep' must be an integer")
			return
		}

		deleted, err := deps.TranscriptService.DeleteOldVersions(c.Request.Context(), id, keep)
		if err != nil {
			respondServiceError(c, "prune versions", err)
			return
		}

		c.JSON(200, gin.H{
			"transcript_id": id,
			"deleted":       deleted,
			"kept":          keep,
		})
	}
}
