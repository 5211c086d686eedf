package jobs

import (
	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// RegisterRoutes registers job queue endpoints on the given router group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Create(deps))
	router.GET("", List(deps))
	router.GET("/stats", GetStats(deps))

	router.GET("/:uuid", Get(deps))
	router.DELETE("/:uuid", Delete(deps))
	router.POST("/:uuid/retry", Retry(deps))
	router.POST("/:uuid/cancel", Cancel(deps))
}
