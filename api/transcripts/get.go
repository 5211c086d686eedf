package transcripts

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// Get retrieves a transcript version with its full text and segments
// @Summary Get a transcript
// @Description Retrieves a transcript's content. Returns the current version unless a specific version is requested.
// @Tags transcripts
// @Produce json
// @Param id path int true "Transcript ID"
// @Param version query int false "Version number; omit for current"
// @Success 200 {object} transcripts.TranscriptRecord
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		version := 0
		if raw := c.Query("version"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				types.SendBadRequest(c, "version must be a positive integer")
				return
			}
			version = parsed
		}

		record, err := deps.TranscriptService.GetTranscript(c.Request.Context(), id, version)
		if err != nil {
			respondServiceError(c, "get transcript", err)
			return
		}

		c.JSON(200, record)
	}
}

// GetByJob retrieves the current transcript produced by a job
// @Summary Get a job's transcript
// @Description Looks up the transcript created for a transcription job and returns its current version.
// @Tags transcripts
// @Produce json
// @Param uuid path string true "Job UUID"
// @Success 200 {object} transcripts.TranscriptRecord
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/by-job/{uuid} [get]
func GetByJob(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("uuid")

		record, err := deps.TranscriptService.GetTranscriptByJob(c.Request.Context(), jobID)
		if err != nil {
			respondServiceError(c, "get transcript by job", err)
			return
		}
		if record == nil {
			types.SendNotFound(c, "No transcript exists for this job")
			return
		}

		c.JSON(200, record)
	}
}

// GetVersions lists a transcript's version metadata, newest first
// @Summary List transcript versions
// @Description Lists version metadata without segment payloads.
// @Tags transcripts
// @Produce json
// @Param id path int true "Transcript ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/{id}/versions [get]
func GetVersions(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		versions, err := deps.TranscriptService.GetVersions(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, "list versions", err)
			return
		}

		c.JSON(200, gin.H{
			"transcript_id": id,
			"versions":      versions,
			"count":         len(versions),
		})
	}
}

// GetHistory returns a transcript's full lineage including export audit rows
// @Summary Get version history
// @Description Returns transcript metadata, every version's summary and the export audit trail.
// @Tags transcripts
// @Produce json
// @Param id path int true "Transcript ID"
// @Success 200 {object} transcripts.VersionHistory
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/{id}/history [get]
func GetHistory(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		history, err := deps.TranscriptService.GetVersionHistory(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, "get version history", err)
			return
		}

		c.JSON(200, history)
	}
}

// GetStats returns store-wide transcript and export counters
// @Summary Transcript store statistics
// @Description Returns aggregate counts across all transcripts, versions and exports.
// @Tags transcripts
// @Produce json
// @Success 200 {object} transcripts.Statistics
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/stats [get]
func GetStats(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := deps.TranscriptService.GetStatistics(c.Request.Context())
		if err != nil {
			respondServiceError(c, "collect statistics", err)
			return
		}

		c.JSON(200, stats)
	}
}
