package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trip-roster-api/internal/response"
)

// handleServiceError writes the error response for err and attaches err to
// the context so the request logger reports it. Details never reach the client.
func handleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *response.AppError
	switch {
	case errors.As(err, &appErr):
		response.SendError(c, appErr.Status(), appErr.Code, appErr.Message)
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
	case errors.Is(err, context.DeadlineExceeded):
		response.SendError(c, http.StatusGatewayTimeout, response.ErrCodeTimeout, "Request timed out")
	default:
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
	}
}
