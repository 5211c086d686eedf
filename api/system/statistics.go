package system

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// GetStatistics aggregates counters from every store
// @Summary Service statistics
// @Description Returns transcript, job queue and storage statistics in one response.
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Router /api/v1/system/statistics [get]
func GetStatistics(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.TranscriptService == nil || deps.JobService == nil || deps.FileService == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "Statistics require a configured database",
			})
			return
		}

		ctx := c.Request.Context()

		transcriptStats, err := deps.TranscriptService.GetStatistics(ctx)
		if err != nil {
			types.SendInternalError(c, "Failed to collect transcript statistics: "+err.Error())
			return
		}
		jobStats, err := deps.JobService.Stats(ctx)
		if err != nil {
			types.SendInternalError(c, "Failed to collect job statistics: "+err.Error())
			return
		}
		storageStats, err := deps.FileService.Stats(ctx)
		if err != nil {
			types.SendInternalError(c, "Failed to collect storage statistics: "+err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"transcripts": transcriptStats,
			"jobs":        jobStats,
			"storage":     storageStats,
		})
	}
}
