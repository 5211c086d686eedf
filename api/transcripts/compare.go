package transcripts

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// Compare diffs two versions of a transcript
// @Summary Compare transcript versions
// @Description Computes a word-level text diff and a timing-aware segment diff between two versions. "from" is the old side.
// @Tags transcripts
// @Produce json
// @Param id path int true "Transcript ID"
// @Param from query int true "Old version number"
// @Param to query int true "New version number"
// @Success 200 {object} transcripts.VersionComparison
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/transcripts/{id}/compare [get]
func Compare(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		from, ok := parseVersionQuery(c, "from")
		if !ok {
			return
		}
		to, ok := parseVersionQuery(c, "to")
		if !ok {
			return
		}

		comparison, err := deps.TranscriptService.CompareVersions(c.Request.Context(), id, from, to)
		if err != nil {
			respondServiceError(c, "compare versions", err)
			return
		}

		c.JSON(200, comparison)
	}
}

// parseVersionQuery reads a required positive integer query parameter.
// On failure it writes the 400 response and returns false.
func parseVersionQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		types.SendBadRequest(c, "Query parameter '"+name+"' is required")
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		types.SendBadRequest(c, "Query parameter '"+name+"' must be a positive integer")
		return 0, false
	}
	return value, true
}
