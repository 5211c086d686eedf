// Package system exposes operational endpoints: a detailed status view and
// cross-store statistics. The lighter liveness probe lives at /health.
package system

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// GetStatus reports the state of the API's moving parts
// @Summary Service status
// @Description Returns database reachability, the configured transcription engine and current queue depth.
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/system/status [get]
func GetStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		if deps.EngineName != "" {
			response["engine"] = deps.EngineName
		}

		if deps.DB == nil || deps.DB.DB == nil {
			response["database"] = gin.H{"status": "not configured"}
		} else if err := deps.DB.HealthCheck(); err != nil {
			response["database"] = gin.H{"status": "unhealthy", "error": err.Error()}
		} else {
			response["database"] = gin.H{"status": "healthy"}
		}

		// Queue depth is informational; a failure here must not fail the probe.
		if deps.JobService != nil {
			if stats, err := deps.JobService.Stats(c.Request.Context()); err == nil {
				response["queue"] = gin.H{
					"pending":    stats.PendingJobs,
					"processing": stats.ProcessingJobs,
				}
			} else {
				log.Printf("[WARNING] Status probe could not read queue stats: %v", err)
			}
		}

		c.JSON(http.StatusOK, response)
	}
}
