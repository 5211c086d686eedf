package files

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// Delete removes a stored file and its bytes on disk
// @Summary Delete a file
// @Description Removes the stored bytes and the record. Files referenced by jobs conflict unless force is set.
// @Tags files
// @Produce json
// @Param id path int true "File ID"
// @Param force query bool false "Delete even when jobs reference the file"
// @Success 200 {object} types.BaseResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/files/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		force := c.Query("force") == "true"
		if err := deps.FileService.DeleteFile(c.Request.Context(), id, force); err != nil {
			respondServiceError(c, "delete file", err)
			return
		}

		c.JSON(200, types.BaseResponse{
			Status:  types.StatusOK,
			Message: fmt.Sprintf("File %d deleted", id),
		})
	}
}
