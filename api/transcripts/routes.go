package transcripts

import (
	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// RegisterRoutes registers transcript endpoints on the given router group.
// exportMiddleware, when given, runs only on the export routes so they can
// carry a separate rate budget from ordinary transcript reads.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, exportMiddleware ...gin.HandlerFunc) {
	router.GET("/stats", GetStats(deps))
	router.GET("/by-job/:uuid", GetByJob(deps))

	router.GET("/:id", Get(deps))
	router.PUT("/:id", Update(deps))
	router.GET("/:id/versions", GetVersions(deps))
	router.DELETE("/:id/versions", PruneVersions(deps))
	router.GET("/:id/history", GetHistory(deps))
	router.GET("/:id/compare", Compare(deps))
	router.POST("/:id/rollback", Rollback(deps))
	router.POST("/:id/import", Import(deps))

	exportHandlers := func(final gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, exportMiddleware...), final)
	}
	router.GET("/:id/export", exportHandlers(Export(deps))...)
	router.POST("/:id/export", exportHandlers(CreateExport(deps))...)
}
