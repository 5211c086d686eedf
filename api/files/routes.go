package files

import (
	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// RegisterRoutes registers file storage endpoints on the given router group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Upload(deps))
	router.GET("", List(deps))
	router.GET("/stats", GetStats(deps))

	router.GET("/:id", Get(deps))
	router.DELETE("/:id", Delete(deps))
}
