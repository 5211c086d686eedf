package files

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// Get retrieves a stored file's metadata
// @Summary Get a file
// @Description Returns a stored file's metadata including probed duration once a job has processed it.
// @Tags files
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} models.AudioFile
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/files/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		file, err := deps.FileService.GetFile(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, "get file", err)
			return
		}

		c.JSON(200, file)
	}
}

// List returns stored files, newest first
// @Summary List files
// @Description Lists stored audio files with paging.
// @Tags files
// @Produce json
// @Param limit query int false "Maximum rows (default 50)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/files [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := parseCountQuery(c, "limit")
		if !ok {
			return
		}
		offset, ok := parseCountQuery(c, "offset")
		if !ok {
			return
		}

		list, err := deps.FileService.ListFiles(c.Request.Context(), limit, offset)
		if err != nil {
			respondServiceError(c, "list files", err)
			return
		}

		c.JSON(200, gin.H{
			"files": list,
			"count": len(list),
		})
	}
}

// GetStats returns storage usage against the configured quota
// @Summary Storage statistics
// @Description Returns total files, bytes and audio duration, plus quota usage.
// @Tags files
// @Produce json
// @Success 200 {object} files.StorageStats
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/files/stats [get]
func GetStats(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := deps.FileService.Stats(c.Request.Context())
		if err != nil {
			respondServiceError(c, "collect storage statistics", err)
			return
		}

		c.JSON(200, stats)
	}
}

// parseCountQuery reads an optional non-negative integer query parameter.
// On failure it writes the 400 response and returns false.
func parseCountQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		types.SendBadRequest(c, "Query parameter '"+name+"' must be a non-negative integer")
		return 0, false
	}
	return value, true
}
