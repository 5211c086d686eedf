package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// Get handles health check requests
// @Summary      Service health
// @Description  Reports whether the API and its database are reachable. Always returns 200 when the process is up; the database block carries its own status.
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]interface{} "Health status"
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  databaseStatus(deps),
		})
	}
}

// databaseStatus probes the connection without failing the endpoint.
func databaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}
	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}
	return gin.H{"status": "healthy"}
}
