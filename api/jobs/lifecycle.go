package jobs

import (
	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// Retry requeues a failed job
// @Summary Retry a failed job
// @Description Resets a failed or permanently failed job to pending so a worker picks it up again. Jobs in other states conflict.
// @Tags jobs
// @Produce json
// @Param uuid path string true "Job UUID"
// @Success 200 {object} JobResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/jobs/{uuid}/retry [post]
func Retry(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := deps.JobService.RetryJob(c.Request.Context(), c.Param("uuid"))
		if err != nil {
			respondServiceError(c, "retry job", err)
			return
		}

		c.JSON(200, toJobResponse(job))
	}
}

// Cancel stops a pending or failed job from ever running
// @Summary Cancel a job
// @Description Marks a job cancelled. Jobs already claimed by a worker or finished conflict.
// @Tags jobs
// @Produce json
// @Param uuid path string true "Job UUID"
// @Success 200 {object} JobResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/jobs/{uuid}/cancel [post]
func Cancel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := deps.JobService.CancelJob(c.Request.Context(), c.Param("uuid"))
		if err != nil {
			respondServiceError(c, "cancel job", err)
			return
		}

		c.JSON(200, toJobResponse(job))
	}
}

// Delete removes a job row entirely
// @Summary Delete a job
// @Description Deletes a job from the queue. A job currently held by a worker conflicts; cancel or wait first.
// @Tags jobs
// @Produce json
// @Param uuid path string true "Job UUID"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/jobs/{uuid} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := c.Param("uuid")
		if err := deps.JobService.DeleteJob(c.Request.Context(), uuid); err != nil {
			respondServiceError(c, "delete job", err)
			return
		}

		c.JSON(200, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Job " + uuid + " deleted",
		})
	}
}
