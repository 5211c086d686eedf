package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
// @Summary      Service identity
// @Description  Returns the service name, version and status.
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string "Service identity"
// @Router       / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Scribe API",
			"version":     "1.0.0",
			"description": "Transcription pipeline with versioned transcript storage",
			"status":      "running",
		})
	}
}
