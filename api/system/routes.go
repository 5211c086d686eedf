package system

import (
	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// RegisterRoutes registers operational endpoints on the given router group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/status", GetStatus(deps))
	router.GET("/statistics", GetStatistics(deps))
}
