package jobs

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/internal/services/files"
	"github.com/scribeworks/scribe-api/internal/services/jobs"
)

// Create queues a transcription or translation job for an uploaded file
// @Summary Queue a transcription job
// @Description Validates the requested model against the manifest and the file against storage, then enqueues the job. Workers pick it up asynchronously; poll the job UUID for progress.
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body CreateJobRequest true "Job parameters"
// @Success 202 {object} JobResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/jobs [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateJobRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		jobType := models.JobTypeTranscription
		switch req.Type {
		case "", string(models.JobTypeTranscription):
		case string(models.JobTypeTranslation):
			jobType = models.JobTypeTranslation
		default:
			types.SendBadRequest(c, "type must be transcription or translation")
			return
		}

		if req.BeamSize < 0 {
			types.SendBadRequest(c, "beam_size must not be negative")
			return
		}

		if req.Model != "" && deps.ModelManifest != nil {
			if err := deps.ModelManifest.Validate(req.Model); err != nil {
				types.SendBadRequest(c, err.Error())
				return
			}
		}

		file, err := deps.FileService.GetFile(c.Request.Context(), req.FileID)
		if err != nil {
			if errors.Is(err, files.ErrFileNotFound) {
				types.SendNotFound(c, "Audio file not found")
				return
			}
			types.SendInternalError(c, "Failed to look up audio file: "+err.Error())
			return
		}

		payload := models.JobPayload{
			"file_id": int(file.ID),
		}
		if req.Model != "" {
			payload["model"] = req.Model
		}
		if req.Language != "" {
			payload["language"] = req.Language
		}
		if req.BeamSize > 0 {
			payload["beam_size"] = req.BeamSize
		}

		opts := []jobs.JobOption{jobs.WithPriority(req.Priority)}
		if req.MaxRetries > 0 {
			opts = append(opts, jobs.WithMaxRetries(req.MaxRetries))
		}
		if req.CreatedBy != "" {
			opts = append(opts, jobs.WithCreatedBy(req.CreatedBy))
		}

		var job *models.Job
		if req.Unique {
			job, err = deps.JobService.EnqueueUniqueJob(c.Request.Context(), jobType, payload, "file_id", opts...)
		} else {
			job, err = deps.JobService.EnqueueJob(c.Request.Context(), jobType, payload, opts...)
		}
		if err != nil {
			respondServiceError(c, "enqueue job", err)
			return
		}

		c.JSON(202, toJobResponse(job))
	}
}
