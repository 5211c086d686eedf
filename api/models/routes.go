package models

import (
	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// RegisterRoutes registers model discovery endpoints on the given router group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps))
}
