package types

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Shared helpers so every handler shapes errors the same way.

// ParseUintParam reads a numeric path parameter. On garbage input it
// writes the 400 itself and returns false.
func ParseUintParam(c *gin.Context, paramName string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid " + paramName,
		})
		return 0, false
	}
	return uint(value), true
}

// BindJSONOrError binds the request body, answering 400 with the
// validation detail when it does not fit the target struct.
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// SendConflict sends a standardized conflict response
func SendConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// SendInternalError sends a standardized internal server error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}
