package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trip-roster-api/internal/middleware"
	"trip-roster-api/internal/response"
	"trip-roster-api/internal/service"
)

// extractCaller reads the user that middleware.Auth stored on the context. On failure
// it writes a 401 response and returns false.
func extractCaller(c *gin.Context) (service.Caller, bool) {
	userID, exists := c.Get(middleware.ContextKeyUserID)
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return service.Caller{}, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return service.Caller{}, false
	}

	return service.Caller{
		UserID:   userUUID,
		FullName: c.GetString(middleware.ContextKeyUserName),
		Email:    c.GetString(middleware.ContextKeyUserEmail),
	}, true
}

// parseIDParam parses a UUID path parameter, writing a 400 response on failure
func parseIDParam(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, message)
		return uuid.Nil, false
	}
	return id, true
}
