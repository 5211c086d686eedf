package jobs

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/models"
)

const maxListLimit = 500

var listableStatuses = map[models.JobStatus]bool{
	models.JobStatusPending:           true,
	models.JobStatusProcessing:        true,
	models.JobStatusCompleted:         true,
	models.JobStatusFailed:            true,
	models.JobStatusPermanentlyFailed: true,
	models.JobStatusCancelled:         true,
}

// Get retrieves a job by its UUID
// @Summary Get a job
// @Description Returns a job's status, progress and result. Completed transcriptions carry the transcript ID in the result.
// @Tags jobs
// @Produce json
// @Param uuid path string true "Job UUID"
// @Success 200 {object} JobResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/jobs/{uuid} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := deps.JobService.GetJobByUUID(c.Request.Context(), c.Param("uuid"))
		if err != nil {
			respondServiceError(c, "get job", err)
			return
		}

		c.JSON(200, toJobResponse(job))
	}
}

// List returns queued jobs, newest first
// @Summary List jobs
// @Description Lists jobs, optionally filtered by status.
// @Tags jobs
// @Produce json
// @Param status query string false "Filter: pending, processing, completed, failed, permanently_failed or cancelled"
// @Param limit query int false "Maximum rows (default 50, cap 500)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/jobs [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := models.JobStatus(c.Query("status"))
		if status != "" && !listableStatuses[status] {
			types.SendBadRequest(c, "Unknown status filter: "+string(status))
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				types.SendBadRequest(c, "limit must be a positive integer")
				return
			}
			limit = parsed
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}

		list, err := deps.JobService.ListJobs(c.Request.Context(), status, limit)
		if err != nil {
			respondServiceError(c, "list jobs", err)
			return
		}

		responses := make([]JobResponse, 0, len(list))
		for _, job := range list {
			responses = append(responses, toJobResponse(job))
		}

		c.JSON(200, gin.H{
			"jobs":  responses,
			"count": len(responses),
		})
	}
}

// GetStats returns queue-wide counters
// @Summary Job queue statistics
// @Description Returns per-status job counts and the average processing time of completed jobs.
// @Tags jobs
// @Produce json
// @Success 200 {object} jobs.Statistics
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/jobs/stats [get]
func GetStats(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := deps.JobService.Stats(c.Request.Context())
		if err != nil {
			respondServiceError(c, "collect queue statistics", err)
			return
		}

		c.JSON(200, stats)
	}
}
