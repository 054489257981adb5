package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coaching-backend/internal/middleware"
	"coaching-backend/internal/models"
)

// currentUserID reads the uid set by the auth middleware. It answers 401
// and returns false when the uid is missing.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return "", false
	}
	return userID, true
}

// identityFromContext rebuilds the caller's identity from verified token claims.
func identityFromContext(c *gin.Context) models.Identity {
	return models.Identity{
		UID:         c.GetString(middleware.ContextUserID),
		Email:       c.GetString(middleware.ContextUserEmail),
		DisplayName: c.GetString(middleware.ContextUserDisplayName),
		PhotoURL:    c.GetString(middleware.ContextUserPhotoURL),
	}
}
