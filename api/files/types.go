package files

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scribeworks/scribe-api/api/types"
	"github.com/scribeworks/scribe-api/internal/services/files"
)

// respondServiceError maps storage sentinels onto HTTP statuses. Size and
// quota violations get their own codes so clients can tell "this file" from
// "this server" problems.
func respondServiceError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, files.ErrFileNotFound):
		types.SendNotFound(c, "File not found")
	case errors.Is(err, files.ErrFileEmpty):
		types.SendBadRequest(c, err.Error())
	case errors.Is(err, files.ErrUnsupportedFormat):
		types.SendBadRequest(c, err.Error())
	case errors.Is(err, files.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{
			Status: types.StatusError,
			Error:  err.Error(),
		})
	case errors.Is(err, files.ErrQuotaExceeded):
		c.JSON(http.StatusInsufficientStorage, types.ErrorResponse{
			Status: types.StatusError,
			Error:  err.Error(),
		})
	case errors.Is(err, files.ErrFileInUse):
		types.SendConflict(c, err.Error()+" (pass ?force=true to delete anyway)")
	default:
		types.SendInternalError(c, fmt.Sprintf("Failed to %s: %v", action, err))
	}
}
