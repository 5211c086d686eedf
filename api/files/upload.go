package files

import (
	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
)

// Upload stores an audio file for transcription
// @Summary Upload an audio file
// @Description Accepts a multipart upload and files it into content-addressed storage. Re-uploading identical bytes returns the already-stored file instead of a second copy.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file"
// @Success 200 {object} map[string]interface{} "Identical content was already stored"
// @Success 201 {object} map[string]interface{} "New file stored"
// @Failure 400 {object} types.ErrorResponse
// @Failure 413 {object} types.ErrorResponse
// @Failure 507 {object} types.ErrorResponse
// @Router /api/v1/files [post]
func Upload(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			types.SendBadRequest(c, "Multipart field 'file' is required")
			return
		}

		src, err := header.Open()
		if err != nil {
			types.SendInternalError(c, "Failed to read upload: "+err.Error())
			return
		}
		defer src.Close()

		stored, created, err := deps.FileService.StoreUpload(c.Request.Context(), src, header.Filename)
		if err != nil {
			respondServiceError(c, "store upload", err)
			return
		}

		status := 200
		message := "Identical content already stored, reusing file"
		if created {
			status = 201
			message = "File stored"
		}

		c.JSON(status, gin.H{
			"status":  types.StatusOK,
			"message": message,
			"file":    stored,
		})
	}
}
